package version

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/scribe-api/api/types"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		build          types.BuildInfo
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "reports build info",
			build:          types.BuildInfo{Version: "1.2.0", GitCommit: "abc123", BuildTime: "2025-01-01"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"name":       "Scribe API",
				"version":    "1.2.0",
				"git_commit": "abc123",
				"build_time": "2025-01-01",
				"status":     "running",
			},
		},
		{
			name:           "development build",
			build:          types.BuildInfo{Version: "dev"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"version":    "dev",
				"git_commit": "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Get(tt.build)(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			for key, expectedValue := range tt.expectedBody {
				assert.Equal(t, expectedValue, response[key], "Key: %s", key)
			}
		})
	}
}
