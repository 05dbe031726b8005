package service

import (
	"github.com/adromero/frame-sync/internal/modules/thumbnail/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
)

type Service struct {
	*platformservice.AppService
	thumbnailStore repo.ThumbnailStore
	assets         storage.AssetStore
}

func New(appService *platformservice.AppService, thumbnailStore repo.ThumbnailStore, assets storage.AssetStore) *Service {
	return &Service{
		AppService:     appService,
		thumbnailStore: thumbnailStore,
		assets:         assets,
	}
}
