package repository

import (
	"context"
	"path/filepath"
	"strings"

	"ipannotate/internal/domain"
	"ipannotate/internal/repository/sqlite"
)

// Repository persists a whole annotation collection at one location.
//
// Load returns an error satisfying errors.Is(err, fs.ErrNotExist) when
// nothing has been saved there yet, so callers can tell "absent" apart
// from "unreadable".
type Repository interface {
	Load(ctx context.Context) (*domain.Annotations, error)
	Save(ctx context.Context, annotations *domain.Annotations) error
	Path() string
}

// Open returns the repository for path, chosen by file extension:
// SQLite databases for .db/.sqlite/.sqlite3, codec-backed files otherwise.
func Open(path string) Repository {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.New(path)
	default:
		return NewFileRepository(path)
	}
}
