package router

import (
	"github.com/adromero/frame-sync/internal/middleware"
	"github.com/adromero/frame-sync/internal/modules"
	"github.com/adromero/frame-sync/internal/platform/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	modules *modules.AppModules
	service *service.AppService
	limiter *middleware.RateLimiter
}

func NewRouter(appModules *modules.AppModules, appService *service.AppService, limiter *middleware.RateLimiter) *Router {
	return &Router{
		modules: appModules,
		service: appService,
		limiter: limiter,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	// 注册全局安全标头与指标中间件
	r.Use(middleware.SecurityHeaders(), middleware.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 全局限额覆盖全部 API 与原图请求，读写分类只作用于 API
	globalLimiter := rt.limiter.Handler(middleware.ClassGlobal)

	api := r.Group("/api")
	api.Use(
		globalLimiter,
		rt.limiter.ByMethod(),
		middleware.SafePathParams(),
		middleware.BodyLimitMiddleware(rt.service),
	)

	registerSystemRoutes(api, rt.modules.System.Handler)
	registerUserRoutes(api, rt.modules.User.Handler)
	registerDeviceRoutes(api, rt.modules.Device.Handler, rt.modules.Display.Handler)
	registerImageRoutes(api, rt.modules.Image.Handler, rt.modules.Assignment.Handler, rt.modules.Thumbnail.Handler, rt.service)
	registerAssetRoutes(r, globalLimiter, rt.modules.Image.Handler, rt.service)
}
