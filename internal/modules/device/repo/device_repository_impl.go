package repo

import (
	"context"
	"time"

	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
)

type DeviceRepository struct {
	db *gorm.DB
}

// Register 不存在时插入，存在时更新名称、类型与最后在线时间，返回是否为新设备
func (r *DeviceRepository) Register(ctx context.Context, device *model.Device) (bool, error) {
	isNew, err := r.register(ctx, device)
	if err != nil && db.IsConstraintError(err) {
		// 并发注册同一 ID 时插入方落败，改走更新
		return r.register(ctx, device)
	}
	return isNew, err
}

func (r *DeviceRepository) register(ctx context.Context, device *model.Device) (bool, error) {
	isNew := false
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		isNew = false
		var existing model.Device
		err := tx.Where("id = ?", device.ID).Take(&existing).Error
		if db.IsNotFound(err) {
			isNew = true
			return tx.Create(device).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]any{
			"name":         device.Name,
			"device_type":  device.DeviceType,
			"last_seen_at": device.LastSeenAt,
		}
		if device.Metadata.Data().Version > 0 {
			updates["metadata"] = device.Metadata
		} else {
			device.Metadata = existing.Metadata
		}
		device.RegisteredAt = existing.RegisteredAt
		return tx.Model(&model.Device{}).Where("id = ?", device.ID).Updates(updates).Error
	})
	return isNew, err
}

func (r *DeviceRepository) FindByID(ctx context.Context, id string) (*model.Device, error) {
	var device model.Device
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *DeviceRepository) List(ctx context.Context) ([]DeviceWithCount, error) {
	var devices []DeviceWithCount
	err := r.db.WithContext(ctx).Model(&model.Device{}).
		Select("devices.*, COUNT(assignments.id) AS image_count").
		Joins("LEFT JOIN assignments ON assignments.device_id = devices.id").
		Group("devices.id").
		Order("devices.name ASC, devices.id ASC").
		Scan(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// Update 修改设备字段，设备不存在时返回 ErrRecordNotFound
//
// MySQL 对值未变化的行返回 0 影响行数，因此以回读结果判断设备是否存在。
func (r *DeviceRepository) Update(ctx context.Context, id string, updates map[string]any) (*model.Device, error) {
	var device model.Device
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(&model.Device{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(&device).Error
	})
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// Touch 只更新最后在线时间，设备不存在时返回 ErrRecordNotFound
func (r *DeviceRepository) Touch(ctx context.Context, id string, at time.Time) (*model.Device, error) {
	return r.Update(ctx, id, map[string]any{"last_seen_at": at})
}

// Delete 删除设备及其授权记录，图片不受影响
func (r *DeviceRepository) Delete(ctx context.Context, id string) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", id).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Device{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *DeviceRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Device{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
