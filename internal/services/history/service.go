package history

import (
	"context"
	"fmt"

	"github.com/killallgit/scribe-api/internal/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new history service
func NewService(repository Repository) Service {
	return &ServiceImpl{repository: repository}
}

// Record validates and stores an entry
func (s *ServiceImpl) Record(ctx context.Context, entry *models.HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("history entry cannot be nil")
	}
	if !validKind(entry.Kind) {
		return fmt.Errorf("invalid history kind %q", entry.Kind)
	}
	return s.repository.Create(ctx, entry)
}

// Recent lists entries, clamping limit to [1, MaxLimit]
func (s *ServiceImpl) Recent(ctx context.Context, kind models.HistoryKind, limit int) ([]models.HistoryEntry, error) {
	if kind != "" && !validKind(kind) {
		return nil, fmt.Errorf("invalid history kind %q", kind)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.repository.List(ctx, kind, limit)
}

// Get retrieves an entry by ID
func (s *ServiceImpl) Get(ctx context.Context, id uint) (*models.HistoryEntry, error) {
	return s.repository.GetByID(ctx, id)
}

func validKind(k models.HistoryKind) bool {
	return k == models.HistoryKindTranscription || k == models.HistoryKindTranslation
}
