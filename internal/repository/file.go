package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"ipannotate/internal/codec"
	"ipannotate/internal/domain"
)

// FileRepository stores the collection as a single document on disk
type FileRepository struct {
	path  string
	codec codec.Codec
}

// NewFileRepository creates a file repository using the codec matching
// the path's extension
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path:  path,
		codec: codec.ForPath(path),
	}
}

// Path returns the backing file path
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and parses the document
func (r *FileRepository) Load(ctx context.Context) (*domain.Annotations, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	annotations, err := r.codec.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return annotations, nil
}

// Save encodes the whole collection before touching the file, so an
// encoding error never truncates an existing document.
func (r *FileRepository) Save(ctx context.Context, annotations *domain.Annotations) error {
	var buf bytes.Buffer
	if err := r.codec.Export(annotations, &buf); err != nil {
		return err
	}

	if err := os.WriteFile(r.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}
