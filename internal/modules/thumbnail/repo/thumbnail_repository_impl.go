package repo

import (
	"context"
	"errors"

	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThumbnailRepository struct {
	db *gorm.DB
}

func (r *ThumbnailRepository) FindImage(ctx context.Context, filename string) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).Where("filename = ?", filename).Take(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ThumbnailRepository) Find(ctx context.Context, imageID uint) (*model.Thumbnail, error) {
	var thumbnail model.Thumbnail
	if err := r.db.WithContext(ctx).Where("image_id = ?", imageID).Take(&thumbnail).Error; err != nil {
		return nil, err
	}
	return &thumbnail, nil
}

// Upsert 写入或覆盖缩略图
//
// 图片已被删除时返回外键约束错误；原图版本与 SourceRevision 不一致时返回 ErrStaleSource 且不写入。
func (r *ThumbnailRepository) Upsert(ctx context.Context, thumbnail *model.Thumbnail) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		var image model.Image
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id", "revision").Where("id = ?", thumbnail.ImageID).Take(&image).Error
		if err == nil && image.Revision != thumbnail.SourceRevision {
			return ErrStaleSource
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "image_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"source_revision", "data", "mime_type", "width", "height", "created_at"}),
		}).Omit(clause.Associations).Create(thumbnail).Error
	})
}

func (r *ThumbnailRepository) Delete(ctx context.Context, imageID uint) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Where("image_id = ?", imageID).Delete(&model.Thumbnail{}).Error
	})
}

func (r *ThumbnailRepository) ListImagesWithoutThumbnail(ctx context.Context) ([]model.Image, error) {
	var images []model.Image
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN thumbnails ON thumbnails.image_id = images.id").
		Where("thumbnails.image_id IS NULL").
		Order("images.id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ThumbnailRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Thumbnail{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
