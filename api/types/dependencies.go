package types

import (
	"context"

	"github.com/killallgit/scribe-api/internal/database"
	"github.com/killallgit/scribe-api/internal/metrics"
	"github.com/killallgit/scribe-api/internal/models"
	"github.com/killallgit/scribe-api/internal/services/cache"
	"github.com/killallgit/scribe-api/internal/services/history"
)

// Pipeline is the orchestration facade used by the transcribe and translate handlers
type Pipeline interface {
	Transcribe(ctx context.Context, req models.TranscriptionRequest) (*models.TranscriptionResult, error)
	Translate(ctx context.Context, text string) (models.TranslationOutcome, error)
}

// CacheStats reports translation cache usage
type CacheStats interface {
	Stats() cache.Stats
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB       *database.DB
	Pipeline Pipeline
	History  history.Service // nil when no database is configured
	Cache    CacheStats      // nil when the translation cache is disabled
	Metrics  *metrics.Metrics
	Build    BuildInfo
}
