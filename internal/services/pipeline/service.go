package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/killallgit/scribe-api/internal/metrics"
	"github.com/killallgit/scribe-api/internal/models"
	"github.com/killallgit/scribe-api/internal/services/history"
	"github.com/killallgit/scribe-api/internal/services/transcription"
	"github.com/killallgit/scribe-api/internal/services/translation"
	"github.com/killallgit/scribe-api/pkg/audiourl"
	apperrors "github.com/killallgit/scribe-api/pkg/errors"
)

// Validator checks an audio URL before any job is created
type Validator interface {
	Validate(ctx context.Context, rawURL string) (*audiourl.Metadata, error)
}

// Dispatcher translates a batch of segments
type Dispatcher interface {
	DispatchAll(ctx context.Context, segments []models.Segment) models.TranslationOutcome
}

// Config holds facade-level settings
type Config struct {
	MaxSegmentLength    int
	TranslationDeadline time.Duration // Default: 300s
	EmptyText           string        // Reported for completed jobs without text
}

// Dependencies are the collaborators the facade orchestrates.
// History and Metrics are optional.
type Dependencies struct {
	Validator  Validator
	Submitter  transcription.Submitter
	Poller     transcription.JobPoller
	Dispatcher Dispatcher
	History    history.Service
	Metrics    *metrics.Metrics
}

// Service is the single entry point for transcription and translation
type Service struct {
	deps   Dependencies
	config Config
}

// NewService creates the orchestration facade
func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.MaxSegmentLength <= 0 {
		cfg.MaxSegmentLength = translation.DefaultMaxSegmentLength
	}
	if cfg.TranslationDeadline <= 0 {
		cfg.TranslationDeadline = 300 * time.Second
	}
	if cfg.EmptyText == "" {
		cfg.EmptyText = "(no speech detected)"
	}
	return &Service{deps: deps, config: cfg}
}

// Transcribe validates the audio URL, submits a job and waits for it.
// The first failure is returned as an AppError.
func (s *Service) Transcribe(ctx context.Context, req models.TranscriptionRequest) (*models.TranscriptionResult, error) {
	req.AudioURL = strings.TrimSpace(req.AudioURL)
	if req.AudioURL == "" {
		return nil, apperrors.MissingFieldError("audioUrl")
	}
	if req.Model != "" && !models.IsValidSpeechModel(req.Model) {
		return nil, apperrors.ValidationError("speechModel", "must be one of best, fast")
	}

	if s.deps.Validator != nil {
		if _, err := s.deps.Validator.Validate(ctx, req.AudioURL); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	jobID, err := s.deps.Submitter.Submit(ctx, req)
	s.deps.Metrics.RecordSubmission(err == nil)
	if err != nil {
		log.Printf("[ERROR] Transcription submission for %s failed: %v", req.AudioURL, err)
		return nil, submissionAppError(err)
	}

	job, err := s.deps.Poller.Poll(ctx, jobID)
	if err != nil {
		appErr := s.classifyPollError(jobID, err)
		s.deps.Metrics.RecordTranscription(string(appErr.Code), time.Since(start))
		log.Printf("[ERROR] Transcription job %s failed after %v: %v", jobID, time.Since(start), err)
		return nil, appErr
	}
	s.deps.Metrics.RecordTranscription(string(models.JobStatusCompleted), time.Since(start))

	text := ""
	if job.Text != nil {
		text = strings.TrimSpace(*job.Text)
	}
	if text == "" {
		text = s.config.EmptyText
	}

	result := &models.TranscriptionResult{JobID: jobID, Text: text, DurationSeconds: job.DurationSeconds}
	log.Printf("[INFO] Transcription job %s completed in %v", jobID, time.Since(start))

	s.record(ctx, &models.HistoryEntry{
		Kind:            models.HistoryKindTranscription,
		RunID:           jobID,
		Source:          req.AudioURL,
		OutputText:      text,
		DurationSeconds: job.DurationSeconds,
		ElapsedMillis:   time.Since(start).Milliseconds(),
	})

	return result, nil
}

// Translate segments text and translates every segment under the overall
// deadline. Only empty input is an error; segments that could not be
// translated appear in the joined text as the failure marker.
func (s *Service) Translate(ctx context.Context, text string) (models.TranslationOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return models.TranslationOutcome{}, apperrors.MissingFieldError("text")
	}

	runID := uuid.NewString()
	start := time.Now()

	segments := translation.Segment(text, s.config.MaxSegmentLength)
	log.Printf("[INFO] Translation %s: %d segment(s) from %d characters", runID, len(segments), len([]rune(text)))

	dctx, cancel := context.WithTimeout(ctx, s.config.TranslationDeadline)
	defer cancel()

	outcome := s.deps.Dispatcher.DispatchAll(dctx, segments)

	elapsed := time.Since(start)
	s.deps.Metrics.RecordTranslation(outcome.Degraded(), elapsed)
	if outcome.Degraded() {
		log.Printf("[WARN] Translation %s finished in %v with %d/%d failed segment(s)", runID, elapsed, outcome.Failed(), len(segments))
	} else {
		log.Printf("[INFO] Translation %s finished in %v", runID, elapsed)
	}

	s.record(ctx, &models.HistoryEntry{
		Kind:           models.HistoryKindTranslation,
		RunID:          runID,
		InputText:      text,
		OutputText:     outcome.JoinedText,
		Segments:       len(segments),
		FailedSegments: outcome.Failed(),
		ElapsedMillis:  elapsed.Milliseconds(),
	})

	return outcome, nil
}

func (s *Service) classifyPollError(jobID string, err error) *apperrors.AppError {
	var timeout *transcription.PollTimeoutError
	var provider *transcription.ProviderError

	switch {
	case errors.As(err, &timeout):
		return apperrors.Wrap(err, apperrors.ErrCodeProviderPollTimeout, "transcription timed out, please try again later").
			WithDetail("job_id", jobID).
			WithDetail("attempts", timeout.Attempts)
	case errors.As(err, &provider):
		return apperrors.Wrap(err, apperrors.ErrCodeProviderJobFailed, provider.Message).
			WithDetail("job_id", jobID).
			WithDetail("reason", provider.Reason)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "transcription was cancelled").
			WithDetail("job_id", jobID)
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeProviderJobFailed, "transcription failed").
			WithDetail("job_id", jobID)
	}
}

// submissionAppError surfaces the provider's own rejection text; transport failures stay generic
func submissionAppError(err error) *apperrors.AppError {
	var subErr *transcription.SubmissionError
	if errors.As(err, &subErr) && subErr.Cause == transcription.CauseProviderRejected && subErr.Message != "" {
		return apperrors.Wrap(err, apperrors.ErrCodeProviderSubmission, "transcription provider rejected the job: "+subErr.Message)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeProviderSubmission, "failed to create transcription job")
}

// record stores a finished result; failures are logged and never surface
func (s *Service) record(ctx context.Context, entry *models.HistoryEntry) {
	if s.deps.History == nil {
		return
	}
	if err := s.deps.History.Record(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("[WARN] Failed to record %s history for %s: %v", entry.Kind, entry.RunID, err)
	}
}
