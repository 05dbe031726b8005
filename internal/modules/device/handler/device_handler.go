package handler

import (
	"net/http"

	"github.com/adromero/frame-sync/internal/modules/common/httpx"
	moduledto "github.com/adromero/frame-sync/internal/modules/device/dto"

	"github.com/gin-gonic/gin"
)

// Register 设备注册，重复注册时更新信息
func (h *Handler) Register(c *gin.Context) {
	var req moduledto.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteValidationError(c, "参数错误")
		return
	}

	device, isNew, err := h.deviceService.Register(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "设备注册失败")
		return
	}

	message := "设备信息已更新"
	if isNew {
		message = "设备注册成功"
	}
	c.JSON(http.StatusOK, moduledto.RegisterDeviceResponse{
		Success:  true,
		DeviceID: device.ID,
		IsNew:    isNew,
		Message:  message,
	})
}

func (h *Handler) List(c *gin.Context) {
	devices, err := h.deviceService.List(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取设备列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// Update 修改设备名称或类型
func (h *Handler) Update(c *gin.Context) {
	var req moduledto.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteValidationError(c, "参数错误")
		return
	}

	device, err := h.deviceService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新设备失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "device": device})
}

func (h *Handler) Heartbeat(c *gin.Context) {
	device, err := h.deviceService.Heartbeat(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "更新在线状态失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "last_seen": device.LastSeenAt})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.deviceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.WriteServiceError(c, err, "删除设备失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
