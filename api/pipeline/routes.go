package pipeline

import (
	"github.com/gin-gonic/gin"

	"github.com/authorityshow/editor-api/api/types"
)

// RegisterRoutes registers pipeline routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Post(deps))
}
