package handler

import (
	"net/http"

	moduledto "github.com/adromero/frame-sync/internal/modules/assignment/dto"
	"github.com/adromero/frame-sync/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

// ListDevices 查询图片的授权设备
func (h *Handler) ListDevices(c *gin.Context) {
	filename := c.Param("name")
	devices, err := h.assignmentService.DevicesFor(c.Request.Context(), filename)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取授权设备失败")
		return
	}
	c.JSON(http.StatusOK, moduledto.ImageDevicesResponse{Filename: filename, Devices: devices})
}

// SetDevices 整体替换图片的授权设备
func (h *Handler) SetDevices(c *gin.Context) {
	var req moduledto.SetDevicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteValidationError(c, "参数错误")
		return
	}
	ids := req.IDs()
	if ids == nil {
		httpx.WriteValidationError(c, "device_ids 不能为空，清空授权请传入 []")
		return
	}

	applied, err := h.assignmentService.SetDevices(c.Request.Context(), c.Param("name"), ids)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新授权失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "device_ids": applied})
}

func (h *Handler) Assign(c *gin.Context) {
	created, err := h.assignmentService.Assign(c.Request.Context(), c.Param("name"), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "授权失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "changed": created})
}

func (h *Handler) Unassign(c *gin.Context) {
	removed, err := h.assignmentService.Unassign(c.Request.Context(), c.Param("name"), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "取消授权失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "changed": removed})
}
