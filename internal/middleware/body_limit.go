package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/adromero/frame-sync/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// multipart 分隔符与表单字段的额外开销
const multipartOverhead = 64 * 1024

// BodyLimitMiddleware 限制请求体大小
func BodyLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 上传接口由 UploadBodyLimitMiddleware 单独限制
		if strings.HasSuffix(c.Request.URL.Path, "/upload") {
			c.Next()
			return
		}

		maxSizeMB := appService.Config().Server.MaxBodyMB
		if maxSizeMB <= 0 {
			maxSizeMB = 2
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制上传接口的请求体大小
func UploadBodyLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := appService.Config().Upload.MaxSizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = 16
		}
		maxBytes := int64(maxSizeMB)*1024*1024 + multipartOverhead

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB),
				"code":  service.ErrorCodeValidation,
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
