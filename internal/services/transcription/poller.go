package transcription

import (
	"context"
	"log"
	"time"

	"github.com/killallgit/scribe-api/internal/metrics"
	"github.com/killallgit/scribe-api/internal/models"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultMaxAttempts  = 200
)

// PollerConfig bounds the wait for one job
type PollerConfig struct {
	Interval    time.Duration // Default: 3s
	MaxAttempts int           // Default: 200
}

// Poller drives a submitted job to a terminal status with a fixed interval
type Poller struct {
	reader  StatusReader
	config  PollerConfig
	metrics *metrics.Metrics
}

// NewPoller creates a poller reading job state through reader
func NewPoller(reader StatusReader, cfg PollerConfig, m *metrics.Metrics) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Poller{reader: reader, config: cfg, metrics: m}
}

// Poll waits one interval before every status read and stops at the first
// terminal status. Status reads never happen more often than the interval.
func (p *Poller) Poll(ctx context.Context, jobID string) (*models.TranscriptionJob, error) {
	job := &models.TranscriptionJob{ID: jobID, Status: models.JobStatusQueued}

	timer := time.NewTimer(p.config.Interval)
	defer timer.Stop()

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			timer.Reset(p.config.Interval)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		update, err := p.reader.Status(ctx, jobID)
		p.metrics.RecordPoll()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[ERROR] Polling job %s failed on attempt %d: %v", jobID, attempt, err)
			return nil, &ProviderError{JobID: jobID, Reason: ReasonStatusReadFailed, Message: "could not read job status: " + err.Error(), Err: err}
		}

		switch update.Status {
		case models.JobStatusQueued, models.JobStatusProcessing, models.JobStatusCompleted, models.JobStatusError:
			job.Apply(*update)
		default:
			log.Printf("[WARN] Job %s reported unknown status %q, continuing", jobID, update.Status)
			continue
		}

		log.Printf("[DEBUG] Poll %d/%d for job %s: %s", attempt, p.config.MaxAttempts, jobID, job.Status)

		switch job.Status {
		case models.JobStatusCompleted:
			return job, nil
		case models.JobStatusError:
			msg := job.ErrorMessage
			if msg == "" {
				msg = "transcription failed on the provider"
			}
			return nil, &ProviderError{JobID: jobID, Reason: ReasonJobFailed, Message: msg}
		}
	}

	return nil, &PollTimeoutError{JobID: jobID, Attempts: p.config.MaxAttempts, Interval: p.config.Interval}
}
