package handler

import (
	"net/http"

	"github.com/adromero/frame-sync/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

// GetServerStats 获取服务概览统计信息
func (h *Handler) GetServerStats(c *gin.Context) {
	stats, err := h.systemService.GetServerStats(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "统计数据失败")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Ping(c *gin.Context) {
	if err := h.systemService.Ping(c.Request.Context()); err != nil {
		httpx.WriteServiceError(c, err, "数据库不可用")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
