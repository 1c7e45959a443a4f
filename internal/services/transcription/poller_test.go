package transcription

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/scribe-api/internal/models"
)

// scriptedReader replays statuses and records when each read happened
type scriptedReader struct {
	mu      sync.Mutex
	script  []models.TranscriptionJob
	errAt   map[int]error
	reads   []time.Time
	current int
}

func (r *scriptedReader) Status(_ context.Context, jobID string) (*models.TranscriptionJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reads = append(r.reads, time.Now())
	n := r.current
	r.current++
	if err, ok := r.errAt[n]; ok {
		return nil, err
	}
	if n >= len(r.script) {
		return &models.TranscriptionJob{ID: jobID, Status: models.JobStatusProcessing}, nil
	}
	job := r.script[n]
	job.ID = jobID
	return &job, nil
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestPoller_CompletesAfterNPolls(t *testing.T) {
	const interval = 15 * time.Millisecond
	reader := &scriptedReader{script: []models.TranscriptionJob{
		{Status: models.JobStatusQueued},
		{Status: models.JobStatusProcessing},
		{Status: models.JobStatusProcessing},
		{Status: models.JobStatusCompleted, Text: strPtr("hello"), DurationSeconds: floatPtr(12.5)},
	}}
	p := NewPoller(reader, PollerConfig{Interval: interval, MaxAttempts: 10}, nil)

	start := time.Now()
	job, err := p.Poll(context.Background(), "job-1")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, job.Status)
	require.NotNil(t, job.Text)
	assert.Equal(t, "hello", *job.Text)
	assert.Equal(t, 12.5, *job.DurationSeconds)

	require.Len(t, reader.reads, 4, "one read per tick until terminal")
	assert.GreaterOrEqual(t, elapsed, 3*interval)
	for i := 1; i < len(reader.reads); i++ {
		assert.GreaterOrEqual(t, reader.reads[i].Sub(reader.reads[i-1]), interval, "reads never faster than the interval")
	}
}

func TestPoller_ProviderError(t *testing.T) {
	reader := &scriptedReader{script: []models.TranscriptionJob{
		{Status: models.JobStatusProcessing},
		{Status: models.JobStatusError, ErrorMessage: "audio file could not be decoded"},
		{Status: models.JobStatusCompleted, Text: strPtr("never seen")},
	}}
	p := NewPoller(reader, PollerConfig{Interval: time.Millisecond, MaxAttempts: 10}, nil)

	job, err := p.Poll(context.Background(), "job-2")
	assert.Nil(t, job)

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ReasonJobFailed, pe.Reason)
	assert.Equal(t, "audio file could not be decoded", pe.Message)
	assert.Len(t, reader.reads, 2, "no reads after a terminal status")
}

func TestPoller_ErrorWithoutMessage(t *testing.T) {
	reader := &scriptedReader{script: []models.TranscriptionJob{{Status: models.JobStatusError}}}
	p := NewPoller(reader, PollerConfig{Interval: time.Millisecond, MaxAttempts: 3}, nil)

	_, err := p.Poll(context.Background(), "job-3")
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.NotEmpty(t, pe.Message)
}

func TestPoller_Timeout(t *testing.T) {
	reader := &scriptedReader{}
	p := NewPoller(reader, PollerConfig{Interval: time.Millisecond, MaxAttempts: 5}, nil)

	_, err := p.Poll(context.Background(), "job-4")

	var te *PollTimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 5, te.Attempts)
	assert.Equal(t, time.Millisecond, te.Interval)
	assert.Len(t, reader.reads, 5, "exactly MaxAttempts reads")
}

func TestPoller_StatusReadFailure(t *testing.T) {
	reader := &scriptedReader{errAt: map[int]error{1: errors.New("API returned status 502")}}
	p := NewPoller(reader, PollerConfig{Interval: time.Millisecond, MaxAttempts: 5}, nil)

	_, err := p.Poll(context.Background(), "job-5")

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ReasonStatusReadFailed, pe.Reason)
	assert.Len(t, reader.reads, 2)
}

func TestPoller_UnknownStatusIsNotTerminal(t *testing.T) {
	reader := &scriptedReader{script: []models.TranscriptionJob{
		{Status: "rescheduled"},
		{Status: models.JobStatusCompleted, Text: strPtr("ok")},
	}}
	p := NewPoller(reader, PollerConfig{Interval: time.Millisecond, MaxAttempts: 3}, nil)

	job, err := p.Poll(context.Background(), "job-6")
	require.NoError(t, err)
	assert.Equal(t, "ok", *job.Text)
}

func TestPoller_ContextCancelled(t *testing.T) {
	reader := &scriptedReader{}
	p := NewPoller(reader, PollerConfig{Interval: time.Hour, MaxAttempts: 3}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Poll(ctx, "job-7")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, reader.reads)
}

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller(&scriptedReader{}, PollerConfig{}, nil)
	assert.Equal(t, DefaultPollInterval, p.config.Interval)
	assert.Equal(t, DefaultMaxAttempts, p.config.MaxAttempts)
}

func TestTranscriptionJob_TerminalIsSticky(t *testing.T) {
	job := &models.TranscriptionJob{ID: "x", Status: models.JobStatusProcessing}
	assert.True(t, job.Apply(models.TranscriptionJob{Status: models.JobStatusCompleted, Text: strPtr("done")}))
	assert.False(t, job.Apply(models.TranscriptionJob{Status: models.JobStatusProcessing}))
	assert.Equal(t, models.JobStatusCompleted, job.Status)
}
