package codec

import (
	"io"
	"path/filepath"
	"strings"

	"ipannotate/internal/domain"
)

// Importer interface for reading an annotation document
type Importer interface {
	Parse(r io.Reader) (*domain.Annotations, error)
	Format() string
}

// Exporter interface for writing an annotation document
type Exporter interface {
	Export(annotations *domain.Annotations, w io.Writer) error
	Format() string
}

// Codec reads and writes one document format
type Codec interface {
	Importer
	Exporter
}

// ForPath picks a codec from the file extension. Anything that is not
// YAML is treated as JSON.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLCodec()
	default:
		return NewJSONCodec()
	}
}
