package repo

import (
	"context"
	"errors"

	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
)

// ErrStaleSource 表示缩略图生成期间原图已被改写
var ErrStaleSource = errors.New("thumbnail source changed")

type ThumbnailStore interface {
	FindImage(ctx context.Context, filename string) (*model.Image, error)
	Find(ctx context.Context, imageID uint) (*model.Thumbnail, error)
	Upsert(ctx context.Context, thumbnail *model.Thumbnail) error
	Delete(ctx context.Context, imageID uint) error
	ListImagesWithoutThumbnail(ctx context.Context) ([]model.Image, error)
	CountAll(ctx context.Context) (int64, error)
}

func NewThumbnailRepository(db *gorm.DB) ThumbnailStore {
	return &ThumbnailRepository{db: db}
}
