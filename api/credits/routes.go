package credits

import (
	"github.com/gin-gonic/gin"

	"github.com/authorityshow/editor-api/api/types"
)

// RegisterRoutes registers credit routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/balance", GetBalance(deps))
}
