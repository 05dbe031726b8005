package repo

import (
	"context"
	"strings"
	"time"

	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	db *gorm.DB
}

// DedupeIDs 去除空白与重复的设备 ID，保留首次出现的顺序
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// FindImageTx 在调用方事务中按文件名查找图片
func FindImageTx(tx *gorm.DB, filename string) (*model.Image, error) {
	var image model.Image
	if err := tx.Where("filename = ?", filename).Take(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// ReplaceDevicesTx 在调用方事务中把图片的授权设备替换为 deviceIDs
//
// 任一设备未注册时返回 *UnknownDevicesError，且不写入任何行。
func ReplaceDevicesTx(tx *gorm.DB, imageID uint, deviceIDs []string) ([]string, error) {
	desired := DedupeIDs(deviceIDs)

	if len(desired) > 0 {
		var known []string
		if err := tx.Model(&model.Device{}).Where("id IN ?", desired).Pluck("id", &known).Error; err != nil {
			return nil, err
		}
		if len(known) != len(desired) {
			knownSet := make(map[string]struct{}, len(known))
			for _, id := range known {
				knownSet[id] = struct{}{}
			}
			var missing []string
			for _, id := range desired {
				if _, ok := knownSet[id]; !ok {
					missing = append(missing, id)
				}
			}
			return nil, &UnknownDevicesError{IDs: missing}
		}
	}

	var current []string
	if err := tx.Model(&model.Assignment{}).Where("image_id = ?", imageID).Pluck("device_id", &current).Error; err != nil {
		return nil, err
	}

	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}
	currentSet := make(map[string]struct{}, len(current))
	var removed []string
	for _, id := range current {
		currentSet[id] = struct{}{}
		if _, ok := desiredSet[id]; !ok {
			removed = append(removed, id)
		}
	}

	if len(removed) > 0 {
		if err := tx.Where("image_id = ? AND device_id IN ?", imageID, removed).Delete(&model.Assignment{}).Error; err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var added []model.Assignment
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			added = append(added, model.Assignment{ImageID: imageID, DeviceID: id, CreatedAt: now})
		}
	}
	if len(added) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&added).Error; err != nil {
			return nil, err
		}
	}
	return desired, nil
}

func (r *AssignmentRepository) Assign(ctx context.Context, filename string, deviceID string) (bool, error) {
	created := false
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		created = false
		image, err := FindImageTx(tx, filename)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", deviceID).Take(&model.Device{}).Error; err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&model.Assignment{
			ImageID:   image.ID,
			DeviceID:  deviceID,
			CreatedAt: time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	return created, err
}

func (r *AssignmentRepository) Unassign(ctx context.Context, filename string, deviceID string) (bool, error) {
	removed := false
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		removed = false
		image, err := FindImageTx(tx, filename)
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", deviceID).Take(&model.Device{}).Error; err != nil {
			return err
		}

		result := tx.Where("image_id = ? AND device_id = ?", image.ID, deviceID).Delete(&model.Assignment{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		return nil
	})
	return removed, err
}

func (r *AssignmentRepository) SetDevices(ctx context.Context, filename string, deviceIDs []string) ([]string, error) {
	var applied []string
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		image, err := FindImageTx(tx, filename)
		if err != nil {
			return err
		}
		applied, err = ReplaceDevicesTx(tx, image.ID, deviceIDs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// DevicesFor 按授权时间升序返回图片的授权设备
func (r *AssignmentRepository) DevicesFor(ctx context.Context, filename string) ([]model.Device, error) {
	image, err := FindImageTx(r.db.WithContext(ctx), filename)
	if err != nil {
		return nil, err
	}

	var devices []model.Device
	err = r.db.WithContext(ctx).
		Joins("JOIN assignments ON assignments.device_id = devices.id").
		Where("assignments.image_id = ?", image.ID).
		Order("assignments.created_at ASC, assignments.id ASC").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// ImagesFor 按上传时间倒序返回设备可见的图片，同一时间按文件名升序
func (r *AssignmentRepository) ImagesFor(ctx context.Context, deviceID string) ([]model.Image, error) {
	var images []model.Image
	err := r.db.WithContext(ctx).
		Joins("JOIN assignments ON assignments.image_id = images.id").
		Where("assignments.device_id = ?", deviceID).
		Preload("User").
		Order("images.uploaded_at DESC, images.filename ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// DeviceIDsForImages 批量查询图片的授权设备 ID
func (r *AssignmentRepository) DeviceIDsForImages(ctx context.Context, imageIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(imageIDs))
	if len(imageIDs) == 0 {
		return result, nil
	}

	var rows []model.Assignment
	err := r.db.WithContext(ctx).
		Select("image_id", "device_id").
		Where("image_id IN ?", imageIDs).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ImageID] = append(result[row.ImageID], row.DeviceID)
	}
	return result, nil
}

func (r *AssignmentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Assignment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
