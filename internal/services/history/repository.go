package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/killallgit/scribe-api/internal/models"
)

// ErrNotFound is returned when no entry matches
var ErrNotFound = errors.New("history entry not found")

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new history repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// Create inserts a new entry
func (r *RepositoryImpl) Create(ctx context.Context, entry *models.HistoryEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("creating history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first
func (r *RepositoryImpl) List(ctx context.Context, kind models.HistoryKind, limit int) ([]models.HistoryEntry, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var entries []models.HistoryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing history entries: %w", err)
	}
	return entries, nil
}

// GetByID retrieves an entry by its ID
func (r *RepositoryImpl) GetByID(ctx context.Context, id uint) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting history entry: %w", err)
	}
	return &entry, nil
}
