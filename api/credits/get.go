package credits

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/authorityshow/editor-api/api/types"
)

// GetBalance handles credit balance requests
// @Summary      Get credit balance
// @Description  Returns the caller's current credit balance
// @Tags         credits
// @Produce      json
// @Param        X-User-ID  header  string  true  "Caller identity"
// @Success      200  {object}  types.BalanceResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /api/v1/credits/balance [get]
func GetBalance(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := types.UserID(c)
		if !ok {
			return
		}

		balance, err := deps.Credits.Balance(c.Request.Context(), userID)
		if err != nil {
			types.SendInternalError(c, "failed to read credit balance")
			return
		}

		c.JSON(http.StatusOK, types.BalanceResponse{UserID: userID, Balance: balance})
	}
}
