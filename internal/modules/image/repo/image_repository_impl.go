package repo

import (
	"context"

	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/model"
	assignmentrepo "github.com/adromero/frame-sync/internal/modules/assignment/repo"
	userrepo "github.com/adromero/frame-sync/internal/modules/user/repo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ImageRepository struct {
	db *gorm.DB
}

// CreateUpload 在同一事务中解析上传者、写入图片并设置授权设备
func (r *ImageRepository) CreateUpload(ctx context.Context, address string, image *model.Image, deviceIDs []string) (*model.User, []string, error) {
	var (
		user    *model.User
		applied []string
	)
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		image.ID = 0
		resolved, err := userrepo.ResolveTx(tx, address)
		if err != nil {
			return err
		}
		image.UserID = resolved.ID
		if err := tx.Omit(clause.Associations).Create(image).Error; err != nil {
			return err
		}
		applied, err = assignmentrepo.ReplaceDevicesTx(tx, image.ID, deviceIDs)
		if err != nil {
			return err
		}
		user = resolved
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	image.User = *user
	return user, applied, nil
}

func (r *ImageRepository) FindByFilename(ctx context.Context, filename string) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).Preload("User").Where("filename = ?", filename).Take(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// ListImages 按上传时间倒序、文件名升序返回图片及总数
func (r *ImageRepository) ListImages(ctx context.Context, params ListImagesParams) ([]model.Image, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&model.Image{})
		if params.UserAddress != "" {
			query = query.Joins("JOIN users ON users.id = images.user_id").
				Where("users.address = ?", params.UserAddress)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base().Preload("User").Order("images.uploaded_at DESC, images.filename ASC")
	if params.Limit > 0 {
		query = query.Offset(params.Offset).Limit(params.Limit)
	}

	var images []model.Image
	if err := query.Find(&images).Error; err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

// DeleteByFilename 删除图片记录及其授权与缩略图，返回被删除的记录
func (r *ImageRepository) DeleteByFilename(ctx context.Context, filename string) (*model.Image, error) {
	var deleted *model.Image
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		image, err := assignmentrepo.FindImageTx(tx, filename)
		if err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", image.ID).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", image.ID).Delete(&model.Thumbnail{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(image).Error; err != nil {
			return err
		}
		deleted = image
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// UpdateRotated 写回旋转后的尺寸与大小，方向标记随之清除
func (r *ImageRepository) UpdateRotated(ctx context.Context, imageID uint, rotated RotatedImage) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&model.Image{}).Where("id = ?", imageID).Updates(map[string]any{
			"size":        rotated.Size,
			"width":       rotated.Width,
			"height":      rotated.Height,
			"orientation": nil,
			"revision":    gorm.Expr("revision + 1"),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ImageRepository) UpdateExif(ctx context.Context, imageID uint, updates map[string]any) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Model(&model.Image{}).Where("id = ?", imageID).Updates(updates).Error
	})
}

func (r *ImageRepository) ListWithoutExif(ctx context.Context) ([]model.Image, error) {
	var images []model.Image
	err := r.db.WithContext(ctx).
		Where("taken_at IS NULL AND camera_make IS NULL AND camera_model IS NULL").
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ImageRepository) SumAllSize(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).Select("COALESCE(SUM(size), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
