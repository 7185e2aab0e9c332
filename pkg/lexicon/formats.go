package lexicon

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// FileFormat identifies the encoding of a lexicon document.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // vocabulary.json, the widget's native format
	FormatYAML               // same shape, YAML encoded
)

// FormatInfo describes a supported document format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON lexicon document",
		Extensions:  []string{".json"},
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML lexicon document",
		Extensions:  []string{".yaml", ".yml"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFormat picks a format from the source name, falling back to sniffing
// the first non-blank byte of data: '{' means JSON, anything else YAML.
func DetectFormat(source string, data []byte) FileFormat {
	name := source
	if u, err := url.Parse(source); err == nil && u.Scheme != "" {
		name = u.Path
	}
	ext := strings.ToLower(filepath.Ext(name))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format
			}
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes data in the given format.
func Parse(data []byte, format FileFormat) (*Lexicon, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// ListSupportedFormats returns the formats Parse understands.
func ListSupportedFormats() []FormatInfo {
	return []FormatInfo{supportedFormats[FormatJSON], supportedFormats[FormatYAML]}
}
