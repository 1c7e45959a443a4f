package pipeline

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/scribe-api/internal/models"
	"github.com/killallgit/scribe-api/internal/services/transcription"
	"github.com/killallgit/scribe-api/internal/services/translation"
	"github.com/killallgit/scribe-api/pkg/audiourl"
	apperrors "github.com/killallgit/scribe-api/pkg/errors"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) Validate(ctx context.Context, rawURL string) (*audiourl.Metadata, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audiourl.Metadata), args.Error(1)
}

type MockSubmitter struct{ mock.Mock }

func (m *MockSubmitter) Submit(ctx context.Context, req models.TranscriptionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockPoller struct{ mock.Mock }

func (m *MockPoller) Poll(ctx context.Context, jobID string) (*models.TranscriptionJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TranscriptionJob), args.Error(1)
}

type MockHistory struct{ mock.Mock }

func (m *MockHistory) Record(ctx context.Context, entry *models.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistory) Recent(ctx context.Context, kind models.HistoryKind, limit int) ([]models.HistoryEntry, error) {
	args := m.Called(ctx, kind, limit)
	return args.Get(0).([]models.HistoryEntry), args.Error(1)
}

func (m *MockHistory) Get(ctx context.Context, id uint) (*models.HistoryEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.HistoryEntry), args.Error(1)
}

type upperTranslator struct{ fail map[string]bool }

func (u upperTranslator) Translate(_ context.Context, s string) (string, error) {
	if u.fail[s] {
		return "", &translation.TranslationError{Cause: translation.CauseUpstreamHTTP}
	}
	return strings.ToUpper(s), nil
}

const audioURL = "https://raw.githubusercontent.com/u/r/main/a.mp3"

func completedJob(text string) *models.TranscriptionJob {
	d := 12.0
	return &models.TranscriptionJob{ID: "tr_1", Status: models.JobStatusCompleted, Text: &text, DurationSeconds: &d}
}

func TestService_Transcribe(t *testing.T) {
	ctx := context.Background()
	req := models.TranscriptionRequest{AudioURL: audioURL, Model: models.SpeechModelBest, Language: "zh"}

	t.Run("success records history", func(t *testing.T) {
		v, sub, pol, hist := new(MockValidator), new(MockSubmitter), new(MockPoller), new(MockHistory)
		v.On("Validate", ctx, audioURL).Return(&audiourl.Metadata{Size: 10, ContentType: "audio/mpeg"}, nil)
		sub.On("Submit", ctx, req).Return("tr_1", nil)
		pol.On("Poll", ctx, "tr_1").Return(completedJob("  你好  "), nil)
		hist.On("Record", mock.Anything, mock.MatchedBy(func(e *models.HistoryEntry) bool {
			return e.Kind == models.HistoryKindTranscription && e.RunID == "tr_1" && e.OutputText == "你好"
		})).Return(nil)

		svc := NewService(Dependencies{Validator: v, Submitter: sub, Poller: pol, History: hist}, Config{})
		res, err := svc.Transcribe(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "你好", res.Text)
		assert.Equal(t, 12.0, *res.DurationSeconds)
		v.AssertExpectations(t)
		sub.AssertExpectations(t)
		pol.AssertExpectations(t)
		hist.AssertExpectations(t)
	})

	t.Run("empty transcript uses placeholder", func(t *testing.T) {
		sub, pol := new(MockSubmitter), new(MockPoller)
		sub.On("Submit", ctx, req).Return("tr_1", nil)
		pol.On("Poll", ctx, "tr_1").Return(completedJob(""), nil)

		svc := NewService(Dependencies{Submitter: sub, Poller: pol}, Config{EmptyText: "nothing"})
		res, err := svc.Transcribe(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "nothing", res.Text)
	})

	t.Run("validation failure stops before submission", func(t *testing.T) {
		v, sub := new(MockValidator), new(MockSubmitter)
		v.On("Validate", ctx, audioURL).Return(nil, apperrors.ForbiddenError("host not allowed"))

		svc := NewService(Dependencies{Validator: v, Submitter: sub}, Config{})
		_, err := svc.Transcribe(ctx, req)

		assert.Equal(t, http.StatusForbidden, apperrors.GetHTTPCode(err))
		sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("missing url", func(t *testing.T) {
		svc := NewService(Dependencies{}, Config{})
		_, err := svc.Transcribe(ctx, models.TranscriptionRequest{AudioURL: "  "})
		assert.Equal(t, http.StatusBadRequest, apperrors.GetHTTPCode(err))
	})

	t.Run("unknown model", func(t *testing.T) {
		svc := NewService(Dependencies{}, Config{})
		_, err := svc.Transcribe(ctx, models.TranscriptionRequest{AudioURL: audioURL, Model: "turbo"})
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	})
}

func TestService_TranscribeFailures(t *testing.T) {
	ctx := context.Background()
	req := models.TranscriptionRequest{AudioURL: audioURL}

	tests := []struct {
		name      string
		submitErr error
		pollErr   error
		wantCode  apperrors.ErrorCode
		wantMsg   string
	}{
		{
			name:      "submission rejected",
			submitErr: &transcription.SubmissionError{Cause: transcription.CauseHTTPError, StatusCode: 401},
			wantCode:  apperrors.ErrCodeProviderSubmission,
			wantMsg:   "failed to create transcription job",
		},
		{
			name:      "provider rejects inline",
			submitErr: &transcription.SubmissionError{Cause: transcription.CauseProviderRejected, StatusCode: 200, Message: "Invalid audio_url"},
			wantCode:  apperrors.ErrCodeProviderSubmission,
			wantMsg:   "transcription provider rejected the job: Invalid audio_url",
		},
		{
			name:     "provider error",
			pollErr:  &transcription.ProviderError{JobID: "tr_1", Reason: transcription.ReasonJobFailed, Message: "bad audio"},
			wantCode: apperrors.ErrCodeProviderJobFailed,
		},
		{
			name:     "poll timeout",
			pollErr:  &transcription.PollTimeoutError{JobID: "tr_1", Attempts: 200, Interval: 3 * time.Second},
			wantCode: apperrors.ErrCodeProviderPollTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, pol := new(MockSubmitter), new(MockPoller)
			if tt.submitErr != nil {
				sub.On("Submit", ctx, req).Return("", tt.submitErr)
			} else {
				sub.On("Submit", ctx, req).Return("tr_1", nil)
				pol.On("Poll", ctx, "tr_1").Return(nil, tt.pollErr)
			}

			svc := NewService(Dependencies{Submitter: sub, Poller: pol}, Config{})
			_, err := svc.Transcribe(ctx, req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
			if tt.wantMsg != "" {
				appErr, ok := apperrors.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantMsg, appErr.Message)
			}
			assert.Equal(t, http.StatusInternalServerError, apperrors.GetHTTPCode(err))
			assert.True(t, errors.Is(err, tt.submitErr) || errors.Is(err, tt.pollErr), "original error stays in the chain")
		})
	}
}

func TestService_Translate(t *testing.T) {
	ctx := context.Background()

	t.Run("end to end", func(t *testing.T) {
		hist := new(MockHistory)
		hist.On("Record", mock.Anything, mock.MatchedBy(func(e *models.HistoryEntry) bool {
			return e.Kind == models.HistoryKindTranslation && e.Segments == 3 && e.FailedSegments == 0 && e.RunID != ""
		})).Return(nil)

		d := translation.NewDispatcher(upperTranslator{}, translation.DispatcherConfig{}, nil)
		svc := NewService(Dependencies{Dispatcher: d, History: hist}, Config{MaxSegmentLength: 5})

		out, err := svc.Translate(ctx, "first one. second one! 第三句。")
		require.NoError(t, err)
		assert.Equal(t, "FIRST ONE.\n\nSECOND ONE!\n\n第三句。", out.JoinedText)
		hist.AssertExpectations(t)
	})

	t.Run("failed segments become markers", func(t *testing.T) {
		d := translation.NewDispatcher(upperTranslator{fail: map[string]bool{"bad one.": true}},
			translation.DispatcherConfig{FailureMarker: "[failed]"}, nil)
		svc := NewService(Dependencies{Dispatcher: d}, Config{MaxSegmentLength: 5})

		out, err := svc.Translate(ctx, "good one. bad one. last")
		require.NoError(t, err)
		assert.Equal(t, "GOOD ONE.\n\n[failed]\n\nLAST", out.JoinedText)
		assert.Equal(t, 1, out.Failed())
	})

	t.Run("history failure does not fail the request", func(t *testing.T) {
		hist := new(MockHistory)
		hist.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		d := translation.NewDispatcher(upperTranslator{}, translation.DispatcherConfig{}, nil)
		svc := NewService(Dependencies{Dispatcher: d, History: hist}, Config{})

		out, err := svc.Translate(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "HELLO", out.JoinedText)
	})

	t.Run("empty text", func(t *testing.T) {
		svc := NewService(Dependencies{}, Config{})
		_, err := svc.Translate(ctx, " \n ")
		assert.Equal(t, http.StatusBadRequest, apperrors.GetHTTPCode(err))
	})
}

type blockingTranslator struct{}

func (blockingTranslator) Translate(ctx context.Context, s string) (string, error) {
	if s == "fast." {
		return "FAST.", nil
	}
	<-ctx.Done()
	return "", ctx.Err()
}

func TestService_TranslateDeadlineKeepsPartialOutput(t *testing.T) {
	d := translation.NewDispatcher(blockingTranslator{}, translation.DispatcherConfig{FailureMarker: "[timeout]"}, nil)
	svc := NewService(Dependencies{Dispatcher: d}, Config{MaxSegmentLength: 3, TranslationDeadline: 30 * time.Millisecond})

	out, err := svc.Translate(context.Background(), "fast. slow.")
	require.NoError(t, err)
	assert.Equal(t, "FAST.\n\n[timeout]", out.JoinedText)
}
