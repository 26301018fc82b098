package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"ipannotate/internal/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS annotations (
	position INTEGER NOT NULL,
	ip TEXT PRIMARY KEY,
	data JSON NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_annotations_position ON annotations(position);
`

// Repository keeps a snapshot of the collection in a SQLite database.
// Each Save replaces the table contents; the position column keeps
// insertion order.
type Repository struct {
	path string
}

// New creates a repository for the database at path. The database is only
// opened (and created) when Save is called.
func New(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the database file path
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Load reads all annotations ordered by position
func (r *Repository) Load(ctx context.Context) (*domain.Annotations, error) {
	// Opening a missing file would create an empty database
	if _, err := os.Stat(r.path); err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}

	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT ip, data FROM annotations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query annotations: %w", err)
	}
	defer rows.Close()

	annotations := domain.NewAnnotations()
	for rows.Next() {
		var (
			ip   string
			data []byte
		)
		if err := rows.Scan(&ip, &data); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}

		var entry domain.Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal annotation %s: %w", ip, err)
		}
		annotations.Put(ip, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating annotations: %w", err)
	}

	return annotations, nil
}

// Save replaces the stored snapshot in a single transaction
func (r *Repository) Save(ctx context.Context, annotations *domain.Annotations) error {
	db, err := r.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM annotations`); err != nil {
		return fmt.Errorf("failed to clear annotations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO annotations (position, ip, data) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	position := 0
	var insertErr error
	annotations.Each(func(ip string, entry domain.Entry) {
		if insertErr != nil {
			return
		}
		data, err := entry.MarshalJSON()
		if err != nil {
			insertErr = fmt.Errorf("failed to marshal annotation %s: %w", ip, err)
			return
		}
		if _, err := stmt.ExecContext(ctx, position, ip, data); err != nil {
			insertErr = fmt.Errorf("failed to insert annotation %s: %w", ip, err)
			return
		}
		position++
	})
	if insertErr != nil {
		return insertErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit annotations: %w", err)
	}
	return nil
}
