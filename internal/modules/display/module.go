package display

import (
	"github.com/adromero/frame-sync/internal/modules/display/handler"
	"github.com/adromero/frame-sync/internal/modules/display/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, devices service.DeviceTracker, images service.ImageLister) *Module {
	moduleService := service.New(appService, devices, images)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
