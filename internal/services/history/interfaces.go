package history

import (
	"context"

	"github.com/killallgit/scribe-api/internal/models"
)

// Repository defines the interface for history data access
type Repository interface {
	Create(ctx context.Context, entry *models.HistoryEntry) error
	List(ctx context.Context, kind models.HistoryKind, limit int) ([]models.HistoryEntry, error)
	GetByID(ctx context.Context, id uint) (*models.HistoryEntry, error)
}

// Service defines the interface for history business logic
type Service interface {
	// Record stores a completed result
	Record(ctx context.Context, entry *models.HistoryEntry) error

	// Recent returns the newest entries first; an empty kind matches both kinds
	Recent(ctx context.Context, kind models.HistoryKind, limit int) ([]models.HistoryEntry, error)

	// Get returns one entry by id
	Get(ctx context.Context, id uint) (*models.HistoryEntry, error)
}
