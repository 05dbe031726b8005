package repo

import (
	"context"

	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

// ResolveTx 在调用方事务中按地址查找用户，不存在时以地址作为名称创建
func ResolveTx(tx *gorm.DB, address string) (*model.User, error) {
	candidate := model.User{Address: address, Name: address}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&candidate).Error; err != nil {
		return nil, err
	}

	var user model.User
	if err := tx.Where("address = ?", address).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Resolve(ctx context.Context, address string) (*model.User, error) {
	var user *model.User
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		resolved, err := ResolveTx(tx, address)
		if err != nil {
			return err
		}
		user = resolved
		return nil
	})
	return user, err
}

func (r *UserRepository) FindByAddress(ctx context.Context, address string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("address = ?", address).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetName(ctx context.Context, address string, name string) (*model.User, error) {
	var user *model.User
	err := db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		resolved, err := ResolveTx(tx, address)
		if err != nil {
			return err
		}
		if err := tx.Model(resolved).Update("name", name).Error; err != nil {
			return err
		}
		resolved.Name = name
		user = resolved
		return nil
	})
	return user, err
}

func (r *UserRepository) ListWithImageCounts(ctx context.Context) ([]UserWithCount, error) {
	var users []UserWithCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*, COUNT(images.id) AS image_count").
		Joins("LEFT JOIN images ON images.user_id = users.id").
		Group("users.id").
		Order("users.name ASC, users.id ASC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
