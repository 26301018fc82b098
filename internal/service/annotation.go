package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"ipannotate/internal/domain"
	"ipannotate/internal/repository"

	"github.com/charmbracelet/log"
)

// AnnotationService owns the in-memory annotation store and its
// persistence. It is used from a single goroutine and does no locking.
type AnnotationService struct {
	annotations *domain.Annotations
	open        func(path string) repository.Repository
	logger      *log.Logger
}

// NewAnnotationService creates a service with an empty store
func NewAnnotationService(logger *log.Logger) *AnnotationService {
	if logger == nil {
		logger = log.Default()
	}
	return &AnnotationService{
		annotations: domain.NewAnnotations(),
		open:        repository.Open,
		logger:      logger,
	}
}

// AddEntry builds a fresh record for ip from defaults and fields and
// stores it, replacing any existing record. Fields left out of the partial
// return to their defaults.
func (s *AnnotationService) AddEntry(ip string, fields domain.Partial) error {
	rec, err := domain.NewRecord(ip, fields)
	if err != nil {
		return err
	}

	_, replaced := s.annotations.Get(ip)
	s.annotations.Set(ip, rec)

	s.logger.Debug("annotation stored", "ip", ip, "replaced", replaced, "risk", rec.RiskLevel)
	return nil
}

// AddFields is AddEntry for loosely typed input. Unknown field names are
// dropped without error.
func (s *AnnotationService) AddFields(ip string, fields map[string]any) error {
	return s.AddEntry(ip, domain.PartialFromFields(fields))
}

// RemoveEntry deletes the record for ip and reports whether one existed
func (s *AnnotationService) RemoveEntry(ip string) bool {
	removed := s.annotations.Delete(ip)
	if removed {
		s.logger.Debug("annotation removed", "ip", ip)
	}
	return removed
}

// ListKeys returns the stored addresses in insertion order
func (s *AnnotationService) ListKeys() []string {
	return s.annotations.Keys()
}

// GetEntry returns a copy of the entry for ip. Entries read from a file
// hold exactly the fields the file had.
func (s *AnnotationService) GetEntry(ip string) (domain.Entry, bool) {
	return s.annotations.Get(ip)
}

// Len returns the number of stored records
func (s *AnnotationService) Len() int {
	return s.annotations.Len()
}

// Save writes the whole store to path
func (s *AnnotationService) Save(ctx context.Context, path string) error {
	repo := s.open(path)
	if err := repo.Save(ctx, s.annotations); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFileWrite, err)
	}

	s.logger.Debug("annotations saved", "path", path, "count", s.annotations.Len())
	return nil
}

// Load replaces the store with the contents saved at path, record by
// record as written. A path that
// does not exist yet yields an empty store. On any other failure the
// current store is left untouched.
func (s *AnnotationService) Load(ctx context.Context, path string) error {
	repo := s.open(path)
	annotations, err := repo.Load(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.annotations = domain.NewAnnotations()
			s.logger.Debug("annotation file not found, starting empty", "path", path)
			return nil
		}
		return fmt.Errorf("%w: %w", domain.ErrFileRead, err)
	}

	s.annotations = annotations
	s.logger.Debug("annotations loaded", "path", path, "count", annotations.Len())
	return nil
}
