package transcription

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
	"github.com/killallgit/scribe-api/internal/models"
)

// Post transcribes a publicly reachable audio file
// @Summary      Transcribe audio
// @Description  Validates the audio URL (allowed origin, size and type), submits a speech-to-text job and
// @Description  waits until the provider finishes. The request stays open for the whole poll budget.
// @Tags         transcription
// @Accept       json
// @Produce      json
// @Param        request body types.TranscribeRequest true "Audio URL and options"
// @Success      200 {object} types.TranscribeResponse "Transcribed text"
// @Failure      400 {object} types.ErrorResponse "Invalid body, unreachable audio, too large or unsupported type"
// @Failure      403 {object} types.ErrorResponse "Audio host is not allowed"
// @Failure      500 {object} types.ErrorResponse "Provider submission failed, job failed or poll timed out"
// @Router       /api/transcribe [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TranscribeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		result, err := deps.Pipeline.Transcribe(c.Request.Context(), models.TranscriptionRequest{
			AudioURL: req.AudioURL,
			Model:    models.SpeechModel(strings.ToLower(req.SpeechModel)),
			Language: req.LanguageCode,
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.TranscribeResponse{
			Success:  true,
			Text:     result.Text,
			Duration: result.DurationSeconds,
			JobID:    result.JobID,
		})
	}
}
