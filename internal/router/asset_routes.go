package router

import (
	"strings"

	"github.com/adromero/frame-sync/internal/middleware"
	imagehandler "github.com/adromero/frame-sync/internal/modules/image/handler"
	"github.com/adromero/frame-sync/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// registerAssetRoutes 以 upload.url_prefix 暴露原图，经由存储后端读取而非直接映射目录
func registerAssetRoutes(r *gin.Engine, globalLimiter gin.HandlerFunc, h *imagehandler.Handler, appService *service.AppService) {
	prefix := appService.Config().Upload.URLPrefix
	if prefix == "" {
		prefix = "/uploads/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	uploads := r.Group(prefix, globalLimiter, middleware.SafePathParams(), middleware.StaticCacheMiddleware(appService))
	uploads.GET(":name", h.ServeOriginal)
}
