package middleware

import (
	"time"

	"github.com/adromero/frame-sync/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinZap 使用全局 zap 记录访问日志，5xx 记为 Error，4xx 记为 Warn
func GinZap() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.L.Error("http request", fields...)
		case status >= 400:
			logger.L.Warn("http request", fields...)
		default:
			logger.L.Info("http request", fields...)
		}
	}
}
