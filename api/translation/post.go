package translation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
)

// Post translates text segment by segment
// @Summary      Translate text
// @Description  Splits text into bounded segments, translates them concurrently with retry and joins the
// @Description  results in order. Segments that could not be translated are replaced by a failure marker;
// @Description  this is still a successful response.
// @Tags         translation
// @Accept       json
// @Produce      json
// @Param        request body types.TranslateRequest true "Text to translate"
// @Success      200 {object} types.TranslateResponse "Joined translation"
// @Failure      400 {object} types.ErrorResponse "Missing text"
// @Router       /api/translate [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TranslateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		outcome, err := deps.Pipeline.Translate(c.Request.Context(), req.Text)
		if err != nil {
			types.SendError(c, err)
			return
		}

		resp := types.TranslateResponse{
			Success:        true,
			Translation:    outcome.JoinedText,
			Segments:       len(outcome.Segments),
			FailedSegments: outcome.Failed(),
		}
		if req.Details {
			resp.Details = outcome.Segments
		}
		c.JSON(http.StatusOK, resp)
	}
}
