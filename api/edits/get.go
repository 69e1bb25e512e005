package edits

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/authorityshow/editor-api/api/types"
)

// GetHistory handles edit history requests
// @Summary      List edit history
// @Description  Returns the caller's edit records, newest first
// @Tags         edits
// @Produce      json
// @Param        X-User-ID  header  string  true   "Caller identity"
// @Param        limit      query   int     false  "Maximum records to return (default 50)"
// @Success      200  {object}  types.EditHistoryResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /api/v1/edits [get]
func GetHistory(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := types.UserID(c)
		if !ok {
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				types.SendBadRequest(c, "limit must be a non-negative integer")
				return
			}
			limit = parsed
		}

		records, err := deps.Edits.History(c.Request.Context(), userID, limit)
		if err != nil {
			types.SendInternalError(c, "failed to read edit history")
			return
		}

		c.JSON(http.StatusOK, types.EditHistoryResponse{Edits: records, Count: len(records)})
	}
}
