package models

// SpeechModel selects the provider's accuracy/speed trade-off
type SpeechModel string

const (
	SpeechModelBest SpeechModel = "best"
	SpeechModelFast SpeechModel = "fast"
)

// LanguageAuto asks the provider to detect the spoken language
const LanguageAuto = "auto"

// JobStatus represents the provider-side status of a transcription job
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusError      JobStatus = "error"
)

// IsTerminal returns true if no further transition can occur from this status
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

// TranscriptionRequest describes one audio resource to transcribe.
// It is passed by value and never mutated after submission.
type TranscriptionRequest struct {
	AudioURL string      `json:"audioUrl"`
	Model    SpeechModel `json:"speechModel,omitempty"`
	Language string      `json:"languageCode,omitempty"`
}

// IsValidSpeechModel reports whether the model hint is known
func IsValidSpeechModel(m SpeechModel) bool {
	return m == SpeechModelBest || m == SpeechModelFast
}

// TranscriptionJob is the local view of a provider transcription job
type TranscriptionJob struct {
	ID              string    `json:"id"`
	Status          JobStatus `json:"status"`
	Text            *string   `json:"text,omitempty"`
	DurationSeconds *float64  `json:"duration,omitempty"`
	ErrorMessage    string    `json:"error,omitempty"`
}

// IsTerminal returns true if the job has reached completed or error
func (j *TranscriptionJob) IsTerminal() bool {
	return j.Status.IsTerminal()
}

// Apply updates the job from a freshly read remote status.
// A terminal job ignores further updates. Returns false when ignored.
func (j *TranscriptionJob) Apply(update TranscriptionJob) bool {
	if j.IsTerminal() {
		return false
	}
	j.Status = update.Status
	j.Text = update.Text
	j.DurationSeconds = update.DurationSeconds
	j.ErrorMessage = update.ErrorMessage
	return true
}

// TranscriptionResult is what a successful transcription returns to callers
type TranscriptionResult struct {
	JobID           string   `json:"jobId"`
	Text            string   `json:"text"`
	DurationSeconds *float64 `json:"duration,omitempty"`
}
