package router

import (
	devicehandler "github.com/adromero/frame-sync/internal/modules/device/handler"
	displayhandler "github.com/adromero/frame-sync/internal/modules/display/handler"

	"github.com/gin-gonic/gin"
)

func registerDeviceRoutes(api *gin.RouterGroup, h *devicehandler.Handler, display *displayhandler.Handler) {
	devices := api.Group("/devices")
	{
		devices.POST("/register", h.Register)
		devices.GET("", h.List)
		devices.PATCH("/:id", h.Update)
		devices.DELETE("/:id", h.Delete)
		devices.POST("/:id/heartbeat", h.Heartbeat)

		// 设备端轮询
		devices.GET("/:id/images", display.DeviceImages)
		devices.GET("/:id/next", display.NextImage)
	}
}
