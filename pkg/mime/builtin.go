package mime

type builtinEntry struct {
	ext   string
	types []string
}

var builtin = []builtinEntry{
	// images
	{"png", []string{"image/png"}},
	{"jpg", []string{"image/jpeg", "image/pjpeg"}},
	{"jpeg", []string{"image/jpeg", "image/pjpeg"}},
	{"jpe", []string{"image/jpeg"}},
	{"gif", []string{"image/gif"}},
	{"bmp", []string{"image/bmp", "image/x-ms-bmp"}},
	{"webp", []string{"image/webp"}},
	{"svg", []string{"image/svg+xml"}},
	{"ico", []string{"image/vnd.microsoft.icon", "image/x-icon"}},
	{"tif", []string{"image/tiff"}},
	{"tiff", []string{"image/tiff"}},
	{"avif", []string{"image/avif"}},
	{"heic", []string{"image/heic"}},

	// documents
	{"pdf", []string{"application/pdf"}},
	{"doc", []string{"application/msword"}},
	{"docx", []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}},
	{"xls", []string{"application/vnd.ms-excel"}},
	{"xlsx", []string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}},
	{"ppt", []string{"application/vnd.ms-powerpoint"}},
	{"pptx", []string{"application/vnd.openxmlformats-officedocument.presentationml.presentation"}},
	{"odt", []string{"application/vnd.oasis.opendocument.text"}},
	{"ods", []string{"application/vnd.oasis.opendocument.spreadsheet"}},
	{"rtf", []string{"application/rtf", "text/rtf"}},
	{"epub", []string{"application/epub+zip"}},

	// text and data
	{"txt", []string{"text/plain"}},
	{"csv", []string{"text/csv", "application/csv"}},
	{"tsv", []string{"text/tab-separated-values"}},
	{"htm", []string{"text/html"}},
	{"html", []string{"text/html"}},
	{"css", []string{"text/css"}},
	{"md", []string{"text/markdown"}},
	{"xml", []string{"application/xml", "text/xml"}},
	{"json", []string{"application/json"}},
	{"yaml", []string{"application/yaml", "application/x-yaml", "text/yaml"}},
	{"yml", []string{"application/yaml", "application/x-yaml", "text/yaml"}},
	{"js", []string{"text/javascript", "application/javascript"}},
	{"mjs", []string{"text/javascript"}},
	{"ics", []string{"text/calendar"}},

	// archives
	{"zip", []string{"application/zip", "application/x-zip-compressed"}},
	{"gz", []string{"application/gzip", "application/x-gzip"}},
	{"tar", []string{"application/x-tar"}},
	{"7z", []string{"application/x-7z-compressed"}},
	{"rar", []string{"application/vnd.rar", "application/x-rar-compressed"}},

	// audio
	{"mp3", []string{"audio/mpeg", "audio/mp3"}},
	{"wav", []string{"audio/wav", "audio/x-wav"}},
	{"ogg", []string{"audio/ogg"}},
	{"oga", []string{"audio/ogg"}},
	{"flac", []string{"audio/flac"}},
	{"aac", []string{"audio/aac"}},
	{"m4a", []string{"audio/mp4", "audio/x-m4a"}},
	{"weba", []string{"audio/webm"}},

	// video
	{"mp4", []string{"video/mp4"}},
	{"m4v", []string{"video/x-m4v", "video/mp4"}},
	{"mov", []string{"video/quicktime"}},
	{"avi", []string{"video/x-msvideo"}},
	{"webm", []string{"video/webm"}},
	{"mkv", []string{"video/x-matroska"}},
	{"mpeg", []string{"video/mpeg"}},
	{"ogv", []string{"video/ogg"}},

	// fonts
	{"woff", []string{"font/woff"}},
	{"woff2", []string{"font/woff2"}},
	{"ttf", []string{"font/ttf"}},
	{"otf", []string{"font/otf"}},

	// binaries
	{"exe", []string{"application/vnd.microsoft.portable-executable", "application/x-msdownload"}},
	{"bin", []string{OctetStream}},
	{"wasm", []string{"application/wasm"}},
}
