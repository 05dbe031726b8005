package repo

import (
	"context"

	"github.com/adromero/frame-sync/internal/model"
)

// ListImagesParams 图库查询条件，Limit <= 0 表示不分页
type ListImagesParams struct {
	UserAddress string
	Offset      int
	Limit       int
}

// RotatedImage 旋转后需要写回的字段
type RotatedImage struct {
	Size   int64
	Width  int
	Height int
}

type ImageStore interface {
	CreateUpload(ctx context.Context, address string, image *model.Image, deviceIDs []string) (*model.User, []string, error)
	FindByFilename(ctx context.Context, filename string) (*model.Image, error)
	ListImages(ctx context.Context, params ListImagesParams) ([]model.Image, int64, error)
	DeleteByFilename(ctx context.Context, filename string) (*model.Image, error)
	UpdateRotated(ctx context.Context, imageID uint, rotated RotatedImage) error
	UpdateExif(ctx context.Context, imageID uint, updates map[string]any) error
	ListWithoutExif(ctx context.Context) ([]model.Image, error)
	CountAll(ctx context.Context) (int64, error)
	SumAllSize(ctx context.Context) (int64, error)
}
