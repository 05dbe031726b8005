package repo

import (
	"context"
	"time"

	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
)

// DeviceWithCount 设备及其被授权的图片数量
type DeviceWithCount struct {
	model.Device
	ImageCount int64 `json:"image_count"`
}

type DeviceStore interface {
	Register(ctx context.Context, device *model.Device) (bool, error)
	FindByID(ctx context.Context, id string) (*model.Device, error)
	List(ctx context.Context) ([]DeviceWithCount, error)
	Update(ctx context.Context, id string, updates map[string]any) (*model.Device, error)
	Touch(ctx context.Context, id string, at time.Time) (*model.Device, error)
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
}

func NewDeviceRepository(db *gorm.DB) DeviceStore {
	return &DeviceRepository{db: db}
}
