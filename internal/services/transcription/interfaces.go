package transcription

import (
	"context"

	"github.com/killallgit/scribe-api/internal/models"
)

// Submitter creates transcription jobs on the provider
type Submitter interface {
	// Submit creates a job for the request and returns its provider id
	Submit(ctx context.Context, req models.TranscriptionRequest) (string, error)
}

// StatusReader reads the current state of a provider job
type StatusReader interface {
	// Status performs exactly one remote read of the job
	Status(ctx context.Context, jobID string) (*models.TranscriptionJob, error)
}

// JobPoller waits for a submitted job to reach a terminal status
type JobPoller interface {
	Poll(ctx context.Context, jobID string) (*models.TranscriptionJob, error)
}
