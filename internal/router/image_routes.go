package router

import (
	"github.com/adromero/frame-sync/internal/middleware"
	assignmenthandler "github.com/adromero/frame-sync/internal/modules/assignment/handler"
	imagehandler "github.com/adromero/frame-sync/internal/modules/image/handler"
	thumbnailhandler "github.com/adromero/frame-sync/internal/modules/thumbnail/handler"
	"github.com/adromero/frame-sync/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerImageRoutes(
	api *gin.RouterGroup,
	h *imagehandler.Handler,
	assignments *assignmenthandler.Handler,
	thumbnails *thumbnailhandler.Handler,
	appService *service.AppService,
) {
	api.POST("/upload", middleware.UploadBodyLimitMiddleware(appService), h.UploadImage)
	api.GET("/images", h.ListImages)
	api.DELETE("/images/:name", h.DeleteImage)
	api.POST("/images/:name/rotate", h.RotateImage)

	// 兼容旧客户端的删除入口
	api.DELETE("/delete/:name", h.DeleteImage)

	api.GET("/images/:name/devices", assignments.ListDevices)
	api.POST("/images/:name/devices", assignments.SetDevices)
	api.PUT("/images/:name/devices/:id", assignments.Assign)
	api.DELETE("/images/:name/devices/:id", assignments.Unassign)

	api.GET("/thumbnails/:name", middleware.StaticCacheMiddleware(appService), thumbnails.GetThumbnail)
}
