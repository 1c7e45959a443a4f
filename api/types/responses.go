package types

import "github.com/killallgit/scribe-api/internal/models"

// Status constants for API responses
const (
	StatusOK        = "ok"
	StatusError     = "error"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error   string      `json:"error" example:"failed to create transcription job"`
	Code    string      `json:"code,omitempty" example:"PROVIDER_SUBMISSION"`
	Details interface{} `json:"details,omitempty"`
}

// TranscribeResponse for a completed transcription
type TranscribeResponse struct {
	Success  bool     `json:"success" example:"true"`
	Text     string   `json:"text" example:"你好，世界。"`
	Duration *float64 `json:"duration,omitempty" example:"42.5"`
	JobID    string   `json:"jobId,omitempty" example:"5551722-f677-48a6-9287-39c0aafd9ac1"`
}

// TranslateResponse for a finished translation. Translation may contain
// failure markers for segments that could not be translated.
type TranslateResponse struct {
	Success        bool                   `json:"success" example:"true"`
	Translation    string                 `json:"translation" example:"你好。"`
	Segments       int                    `json:"segments" example:"3"`
	FailedSegments int                    `json:"failedSegments" example:"0"`
	Details        []models.SegmentResult `json:"details,omitempty"`
}

// HistoryResponse lists recorded results, newest first
type HistoryResponse struct {
	Status  string                `json:"status" example:"ok"`
	Entries []models.HistoryEntry `json:"entries"`
	Count   int                   `json:"count" example:"2"`
}

// HealthResponse reports service and dependency status
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Timestamp string            `json:"timestamp" example:"2025-01-01T00:00:00Z"`
	Checks    map[string]string `json:"checks"`
}
