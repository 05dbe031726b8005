package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/adromero/frame-sync/internal/config"
)

// ErrNotExist 表示资源不存在
var ErrNotExist = errors.New("asset not found")

// AssetStore 保存原图二进制内容，按文件名寻址
type AssetStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

// New 按配置创建存储后端
func New(ctx context.Context, cfg config.Config) (AssetStore, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		return NewLocalStore(cfg.Upload.Path)
	case "minio":
		return NewMinioStore(ctx, cfg.Storage)
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Storage.Driver)
	}
}

// ReadAll 读取资源的全部内容
func ReadAll(ctx context.Context, store AssetStore, name string) ([]byte, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
