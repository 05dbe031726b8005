package thumbnail

import (
	"github.com/adromero/frame-sync/internal/modules/thumbnail/handler"
	"github.com/adromero/frame-sync/internal/modules/thumbnail/repo"
	"github.com/adromero/frame-sync/internal/modules/thumbnail/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, thumbnailStore repo.ThumbnailStore, assets storage.AssetStore) *Module {
	moduleService := service.New(appService, thumbnailStore, assets)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
