package device

import (
	"github.com/adromero/frame-sync/internal/modules/device/handler"
	"github.com/adromero/frame-sync/internal/modules/device/repo"
	"github.com/adromero/frame-sync/internal/modules/device/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, deviceStore repo.DeviceStore) *Module {
	moduleService := service.New(appService, deviceStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
