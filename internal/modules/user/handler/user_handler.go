package handler

import (
	"net/http"

	"github.com/adromero/frame-sync/internal/modules/common/httpx"
	moduledto "github.com/adromero/frame-sync/internal/modules/user/dto"

	"github.com/gin-gonic/gin"
)

// GetSelf 获取当前来源地址对应的名称
func (h *Handler) GetSelf(c *gin.Context) {
	address := c.ClientIP()
	name, err := h.userService.DisplayName(c.Request.Context(), address)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return
	}
	c.JSON(http.StatusOK, moduledto.UserInfoResponse{Address: address, Name: name})
}

// SetName 设置当前来源地址的显示名称
func (h *Handler) SetName(c *gin.Context) {
	var req moduledto.SetNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteValidationError(c, "参数错误")
		return
	}

	user, err := h.userService.SetName(c.Request.Context(), c.ClientIP(), req.Name)
	if err != nil {
		httpx.WriteServiceError(c, err, "设置名称失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "name": user.Name})
}

// ListUsers 列出全部用户
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
