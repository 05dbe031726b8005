package handler

import (
	"net/http"

	"github.com/adromero/frame-sync/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

// GetThumbnail 输出缩略图，生成失败时输出原图
func (h *Handler) GetThumbnail(c *gin.Context) {
	result, err := h.thumbnailService.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取缩略图失败")
		return
	}
	variant := "thumb"
	if result.Fallback {
		variant = "orig"
		c.Header("X-Thumbnail-Fallback", "1")
	}
	if httpx.NotModified(c, httpx.ImageETag(result.ImageID, result.Revision, variant)) {
		return
	}
	c.Data(http.StatusOK, result.MimeType, result.Data)
}
