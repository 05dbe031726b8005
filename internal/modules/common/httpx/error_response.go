package httpx

import (
	"net/http"

	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/platform/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteServiceError 统一输出业务错误，未知错误使用兜底文案并记录日志
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		if serviceErr.Code == service.ErrorCodeInternal || serviceErr.Code == service.ErrorCodeStorageUnavailable {
			logger.L.Error("请求处理失败", zap.String("path", c.FullPath()), zap.Error(serviceErr.Unwrap()))
		}
		c.JSON(serviceErrorStatus(serviceErr.Code), gin.H{"error": serviceErr.Message, "code": serviceErr.Code})
		return
	}
	logger.L.Error("请求处理失败", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage, "code": service.ErrorCodeInternal})
}

// WriteValidationError 输出参数错误
func WriteValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": service.ErrorCodeValidation})
}

func serviceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation:
		return http.StatusBadRequest
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	case service.ErrorCodeConstraint:
		return http.StatusConflict
	case service.ErrorCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case service.ErrorCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
