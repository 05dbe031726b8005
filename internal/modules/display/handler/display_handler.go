package handler

import (
	"net/http"

	"github.com/adromero/frame-sync/internal/modules/common/httpx"
	moduledto "github.com/adromero/frame-sync/internal/modules/display/dto"

	"github.com/gin-gonic/gin"
)

// NextImage 设备轮询下一张图片，没有可见图片时返回 204
func (h *Handler) NextImage(c *gin.Context) {
	deviceID := c.Param("id")
	image, err := h.displayService.Next(c.Request.Context(), deviceID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取图片失败")
		return
	}
	if image == nil {
		c.Status(http.StatusNoContent)
		return
	}

	item := h.displayService.ToDisplayImage(*image)
	c.JSON(http.StatusOK, moduledto.NextImageResponse{
		DeviceID: deviceID,
		Image:    item,
		URL:      item.URL,
	})
}

func (h *Handler) DeviceImages(c *gin.Context) {
	resp, err := h.displayService.DeviceImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取设备图片失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}
