package service

import (
	"context"

	"github.com/adromero/frame-sync/internal/model"
	"github.com/adromero/frame-sync/internal/modules/image/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
)

// AssignmentReader 批量读取图片的授权设备
type AssignmentReader interface {
	DeviceIDsForImages(ctx context.Context, imageIDs []uint) (map[uint][]string, error)
}

// ThumbnailCache 缩略图缓存的生成与失效
type ThumbnailCache interface {
	Ensure(ctx context.Context, image *model.Image) error
	Invalidate(ctx context.Context, imageID uint) error
}

// DisplayState 读取进程内最近一次展示的图片
type DisplayState interface {
	CurrentImage() *string
}

type Service struct {
	*platformservice.AppService
	imageStore  repo.ImageStore
	assignments AssignmentReader
	thumbnails  ThumbnailCache
	display     DisplayState
	assets      storage.AssetStore
}

func New(
	appService *platformservice.AppService,
	imageStore repo.ImageStore,
	assignments AssignmentReader,
	thumbnails ThumbnailCache,
	display DisplayState,
	assets storage.AssetStore,
) *Service {
	return &Service{
		AppService:  appService,
		imageStore:  imageStore,
		assignments: assignments,
		thumbnails:  thumbnails,
		display:     display,
		assets:      assets,
	}
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.imageStore.CountAll(ctx)
}

func (s *Service) SumAllSize(ctx context.Context) (int64, error) {
	return s.imageStore.SumAllSize(ctx)
}
