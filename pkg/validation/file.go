package validation

import (
	"mime/multipart"
	"strings"

	"github.com/goliatone/go-formschema/pkg/mime"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// FileInfo describes an upload candidate for the fileType and maxSize rules.
type FileInfo interface {
	FileName() string
	ContentType() string
	// FileSize returns the size in bytes and whether it is known.
	FileSize() (int64, bool)
}

// File is a plain FileInfo value. A negative Size means unknown.
type File struct {
	Name string
	Type string
	Size int64
}

func (f File) FileName() string    { return f.Name }
func (f File) ContentType() string { return f.Type }

func (f File) FileSize() (int64, bool) {
	return f.Size, f.Size >= 0
}

type headerFile struct {
	header *multipart.FileHeader
}

func (f headerFile) FileName() string { return f.header.Filename }

func (f headerFile) ContentType() string {
	if f.header.Header == nil {
		return ""
	}
	return f.header.Header.Get("Content-Type")
}

func (f headerFile) FileSize() (int64, bool) { return f.header.Size, f.header.Size >= 0 }

type mapFile map[string]any

func (f mapFile) FileName() string {
	name, _ := toString(f["name"])
	return name
}

func (f mapFile) ContentType() string {
	kind, _ := toString(f["type"])
	return kind
}

func (f mapFile) FileSize() (int64, bool) {
	size, ok := toFloat(f["size"])
	if !ok || size < 0 {
		return 0, false
	}
	return int64(size), true
}

// fileFrom adapts the supported upload shapes: FileInfo implementations,
// *multipart.FileHeader and maps with name/type/size keys.
func fileFrom(value any) (FileInfo, bool) {
	switch v := value.(type) {
	case FileInfo:
		return v, true
	case *multipart.FileHeader:
		if v == nil {
			return nil, false
		}
		return headerFile{header: v}, true
	case map[string]any:
		if _, ok := v["name"]; !ok {
			return nil, false
		}
		return mapFile(v), true
	default:
		return nil, false
	}
}

// checkFileType accepts stored references (strings) as is. For uploads, a
// specific declared MIME type must be registered and accepted; an absent or
// generic type falls back to the MIME types registered for the extension.
func (v *Validator) checkFileType(field schema.Field, value any) bool {
	if len(field.FileTypes) == 0 {
		return true
	}
	if _, ok := toString(value); ok {
		return true
	}
	file, ok := fileFrom(value)
	if !ok {
		return false
	}

	accepted := v.mimes.Resolve(field.FileTypes...)
	declared := strings.ToLower(strings.TrimSpace(file.ContentType()))
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}

	if declared != "" && declared != mime.OctetStream {
		return v.mimes.IsValid(declared) && containsString(accepted, declared)
	}

	for _, candidate := range v.mimes.Lookup(mime.ExtensionOf(file.FileName())) {
		if containsString(accepted, candidate) {
			return true
		}
	}
	return false
}

// checkMaxSize skips stored references (strings), mirroring fileType. Uploads
// without a known size fail, as do unparsable limits.
func checkMaxSize(field schema.Field, value any) bool {
	if field.MaxSize == nil {
		return true
	}
	if _, ok := toString(value); ok {
		return true
	}
	file, ok := fileFrom(value)
	if !ok {
		return false
	}
	size, known := file.FileSize()
	if !known {
		return false
	}
	limit, err := schema.ParseSize(field.MaxSize)
	if err != nil {
		log.Warnf("field %s: %v", field.Name, err)
		return false
	}
	return size <= limit
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
