package middleware

import (
	"net/http"

	"github.com/adromero/frame-sync/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware 为原图与缩略图添加 Cache-Control 头，取值来自 upload.cache_control
//
// 只有 200 与 304 响应带缓存头，错误响应不可被缓存。
func StaticCacheMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc := appService.Config().Upload.CacheControl; cc != "" {
			c.Writer = &cacheControlWriter{ResponseWriter: c.Writer, value: cc}
		}
		c.Next()
	}
}

type cacheControlWriter struct {
	gin.ResponseWriter
	value string
}

func (w *cacheControlWriter) WriteHeader(code int) {
	if code == http.StatusOK || code == http.StatusNotModified {
		w.Header().Set("Cache-Control", w.value)
	} else {
		w.Header().Del("Cache-Control")
	}
	w.ResponseWriter.WriteHeader(code)
}
