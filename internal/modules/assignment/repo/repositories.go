package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
)

// UnknownDevicesError 表示授权集合中包含未注册的设备
type UnknownDevicesError struct {
	IDs []string
}

func (e *UnknownDevicesError) Error() string {
	return fmt.Sprintf("unknown devices: %s", strings.Join(e.IDs, ", "))
}

type AssignmentStore interface {
	Assign(ctx context.Context, filename string, deviceID string) (bool, error)
	Unassign(ctx context.Context, filename string, deviceID string) (bool, error)
	SetDevices(ctx context.Context, filename string, deviceIDs []string) ([]string, error)
	DevicesFor(ctx context.Context, filename string) ([]model.Device, error)
	ImagesFor(ctx context.Context, deviceID string) ([]model.Image, error)
	DeviceIDsForImages(ctx context.Context, imageIDs []uint) (map[uint][]string, error)
	CountAll(ctx context.Context) (int64, error)
}

func NewAssignmentRepository(db *gorm.DB) AssignmentStore {
	return &AssignmentRepository{db: db}
}
