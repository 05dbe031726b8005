package repo

import (
	"context"

	"gorm.io/gorm"
)

type SystemRepository struct {
	db *gorm.DB
}

// Ping 检查数据库连接是否可用
func (r *SystemRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
