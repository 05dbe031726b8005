package di

import (
	"time"

	"github.com/adromero/frame-sync/internal/middleware"
	"github.com/adromero/frame-sync/internal/modules"
	"github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/router"
)

type Application struct {
	Router  *router.Router
	Modules *modules.AppModules
	Service *service.AppService
}

func NewApplication(r *router.Router, m *modules.AppModules, s *service.AppService) *Application {
	return &Application{
		Router:  r,
		Modules: m,
		Service: s,
	}
}

// ProvideRateLimiter 使用系统时钟创建限流器
func ProvideRateLimiter(appService *service.AppService) *middleware.RateLimiter {
	return middleware.NewRateLimiter(appService, time.Now)
}
