package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ValidationError("audioUrl", "bad"), http.StatusBadRequest},
		{"missing field", MissingFieldError("text"), http.StatusBadRequest},
		{"forbidden", ForbiddenError("host not allowed"), http.StatusForbidden},
		{"provider submission", New(ErrCodeProviderSubmission, "x"), http.StatusInternalServerError},
		{"provider poll timeout", New(ErrCodeProviderPollTimeout, "x"), http.StatusInternalServerError},
		{"provider job failed", New(ErrCodeProviderJobFailed, "x"), http.StatusInternalServerError},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("outer: %w", ValidationError("f", "r")), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPCode(tt.err))
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, ErrCodeProviderSubmission, "could not create job")

	assert.Equal(t, "PROVIDER_SUBMISSION: could not create job (caused by: connection refused)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, ErrCodeProviderSubmission))
	assert.False(t, Is(err, ErrCodeValidation))
	assert.Equal(t, ErrCodeInternal, GetCode(cause))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeValidation, "bad").WithDetail("field", "audioUrl")
	assert.Equal(t, "audioUrl", err.Details["field"])
}
