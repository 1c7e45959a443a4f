package transcription

import (
	"fmt"
	"time"
)

const (
	CauseHTTPError        = "http_error"
	CauseProviderRejected = "provider_rejected"

	ReasonJobFailed        = "job_failed"
	ReasonStatusReadFailed = "status_read_failed"
)

// SubmissionError is returned when the provider does not accept a job
type SubmissionError struct {
	Cause      string
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	msg := fmt.Sprintf("transcription submission failed (%s)", e.Cause)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ProviderError is returned when a job ends in error or its status cannot be read
type ProviderError struct {
	JobID   string
	Reason  string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("transcription job %s: %s", e.JobID, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PollTimeoutError is returned when the attempt budget runs out before a terminal status
type PollTimeoutError struct {
	JobID    string
	Attempts int
	Interval time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("transcription job %s not finished after %d polls every %v", e.JobID, e.Attempts, e.Interval)
}
