package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adromero/frame-sync/internal/config"

	"gorm.io/gorm"
)

// ErrBusy 表示在有限次重试后数据库仍处于锁冲突或超时状态
var ErrBusy = errors.New("database busy")

const (
	defaultBusyBackoff = 20 * time.Millisecond
	defaultTxTimeout   = 5 * time.Second
)

// Transaction 在超时约束下执行事务，遇到锁冲突时指数退避重试
//
// fn 可能被执行多次，其中只能使用传入的 tx。
func Transaction(ctx context.Context, gdb *gorm.DB, fn func(tx *gorm.DB) error) error {
	cfg := config.Get().Database

	retries := cfg.BusyRetries
	if retries < 0 {
		retries = 0
	}
	backoff := time.Duration(cfg.BusyBackoffMS) * time.Millisecond
	if backoff <= 0 {
		backoff = defaultBusyBackoff
	}
	timeout := time.Duration(cfg.TxTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	for attempt := 0; ; attempt++ {
		err = gdb.WithContext(ctx).Transaction(fn)
		if err == nil || !IsBusyError(err) {
			return err
		}
		if attempt >= retries {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrBusy, ctx.Err())
		case <-time.After(backoff << attempt):
		}
	}
	return fmt.Errorf("%w: %v", ErrBusy, err)
}

// IsBusyError 判断是否为锁冲突或事务超时
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBusy) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "sqlite_busy") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "lock wait timeout")
}

// IsConstraintError 判断是否违反唯一约束或外键约束
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "foreign key constraint failed") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "violates foreign key constraint")
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
