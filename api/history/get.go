package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
	"github.com/killallgit/scribe-api/internal/models"
	historysvc "github.com/killallgit/scribe-api/internal/services/history"
)

// List returns recent transcriptions and translations
// @Summary      List history
// @Description  Returns completed results, newest first. Only available when a database is configured.
// @Tags         history
// @Produce      json
// @Param        kind  query string false "Filter by kind" Enums(transcription, translation)
// @Param        limit query int    false "Maximum entries (1-100)" default(20)
// @Success      200 {object} types.HistoryResponse
// @Failure      400 {object} types.ErrorResponse "Invalid kind or limit"
// @Failure      503 {object} types.ErrorResponse "History is not configured"
// @Router       /api/history [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.History == nil {
			types.SendServiceUnavailable(c, "History is not configured")
			return
		}

		kind := models.HistoryKind(c.Query("kind"))
		if kind != "" && kind != models.HistoryKindTranscription && kind != models.HistoryKindTranslation {
			types.SendBadRequest(c, "kind must be transcription or translation")
			return
		}

		limit := historysvc.DefaultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				types.SendBadRequest(c, "limit must be a positive integer")
				return
			}
			limit = n
		}

		entries, err := deps.History.Recent(c.Request.Context(), kind, limit)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.HistoryResponse{
			Status:  types.StatusOK,
			Entries: entries,
			Count:   len(entries),
		})
	}
}

// GetByID returns a single history entry
// @Summary      Get history entry
// @Tags         history
// @Produce      json
// @Param        id path int true "Entry ID"
// @Success      200 {object} models.HistoryEntry
// @Failure      400 {object} types.ErrorResponse "Invalid ID"
// @Failure      404 {object} types.ErrorResponse "Entry not found"
// @Failure      503 {object} types.ErrorResponse "History is not configured"
// @Router       /api/history/{id} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.History == nil {
			types.SendServiceUnavailable(c, "History is not configured")
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			types.SendBadRequest(c, "Invalid history ID")
			return
		}

		entry, err := deps.History.Get(c.Request.Context(), uint(id))
		if errors.Is(err, historysvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "History entry not found"})
			return
		}
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}
