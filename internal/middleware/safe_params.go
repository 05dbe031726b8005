package middleware

import (
	"github.com/adromero/frame-sync/internal/modules/common/httpx"
	"github.com/adromero/frame-sync/internal/utils"

	"github.com/gin-gonic/gin"
)

// SafePathParams 校验全部路径参数，拒绝可能穿越存储目录的文件名与设备 ID
func SafePathParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range c.Params {
			if !utils.IsSafeIdentifier(p.Value) {
				httpx.WriteValidationError(c, "非法的路径参数: "+p.Key)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
