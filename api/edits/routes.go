package edits

import (
	"github.com/gin-gonic/gin"

	"github.com/authorityshow/editor-api/api/types"
)

// RegisterRoutes registers edit history routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", GetHistory(deps))
}
