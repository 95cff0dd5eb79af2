// Package mime maps file extensions to MIME type strings. A Registry is an
// explicitly constructed value: create one with Default (built-in table) or
// NewRegistry (empty) and inject it where file uploads are validated. Reads
// and Add are synchronised, so the table may be extended at any time.
package mime
