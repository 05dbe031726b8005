package repo

import (
	"context"

	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
)

// UserWithCount 用户及其上传的图片数量
type UserWithCount struct {
	model.User
	ImageCount int64 `json:"image_count"`
}

type UserStore interface {
	Resolve(ctx context.Context, address string) (*model.User, error)
	FindByAddress(ctx context.Context, address string) (*model.User, error)
	SetName(ctx context.Context, address string, name string) (*model.User, error)
	ListWithImageCounts(ctx context.Context) ([]UserWithCount, error)
	CountAll(ctx context.Context) (int64, error)
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}
