package user

import (
	"github.com/adromero/frame-sync/internal/modules/user/handler"
	"github.com/adromero/frame-sync/internal/modules/user/repo"
	"github.com/adromero/frame-sync/internal/modules/user/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Module {
	moduleService := service.New(appService, userStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
