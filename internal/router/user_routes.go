package router

import (
	userhandler "github.com/adromero/frame-sync/internal/modules/user/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, h *userhandler.Handler) {
	api.GET("/user", h.GetSelf)
	api.POST("/user/name", h.SetName)
	api.GET("/users", h.ListUsers)
}
