package image

import (
	"github.com/adromero/frame-sync/internal/modules/image/handler"
	"github.com/adromero/frame-sync/internal/modules/image/repo"
	"github.com/adromero/frame-sync/internal/modules/image/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(
	appService *platformservice.AppService,
	imageStore repo.ImageStore,
	assignments service.AssignmentReader,
	thumbnails service.ThumbnailCache,
	display service.DisplayState,
	assets storage.AssetStore,
) *Module {
	moduleService := service.New(appService, imageStore, assignments, thumbnails, display, assets)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
