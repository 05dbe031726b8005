package system

import (
	"github.com/adromero/frame-sync/internal/modules/system/handler"
	"github.com/adromero/frame-sync/internal/modules/system/repo"
	"github.com/adromero/frame-sync/internal/modules/system/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, systemStore repo.SystemStore, sources service.Sources) *Module {
	moduleService := service.New(appService, systemStore, sources)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
