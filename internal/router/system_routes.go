package router

import (
	systemhandler "github.com/adromero/frame-sync/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

func registerSystemRoutes(api *gin.RouterGroup, h *systemhandler.Handler) {
	api.GET("/ping", h.Ping)
	api.GET("/stats", h.GetServerStats)
}
