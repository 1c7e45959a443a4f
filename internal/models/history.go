package models

import (
	"time"

	"gorm.io/gorm"
)

// HistoryKind distinguishes the two kinds of recorded results
type HistoryKind string

const (
	HistoryKindTranscription HistoryKind = "transcription"
	HistoryKindTranslation   HistoryKind = "translation"
)

// HistoryEntry is a completed transcription or translation kept for review.
// Only finished results are stored; in-flight jobs are never persisted.
type HistoryEntry struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Kind            HistoryKind    `gorm:"not null;index:idx_history_kind_created" json:"kind"`
	RunID           string         `gorm:"index" json:"run_id"`
	Source          string         `json:"source,omitempty"` // audio URL for transcriptions
	InputText       string         `gorm:"type:text" json:"input_text,omitempty"`
	OutputText      string         `gorm:"type:text" json:"output_text"`
	DurationSeconds *float64       `json:"duration,omitempty"`
	Segments        int            `json:"segments,omitempty"`
	FailedSegments  int            `json:"failed_segments,omitempty"`
	ElapsedMillis   int64          `json:"elapsed_ms"`
	CreatedAt       time.Time      `gorm:"index:idx_history_kind_created" json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (HistoryEntry) TableName() string {
	return "history_entries"
}
