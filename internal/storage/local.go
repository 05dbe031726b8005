package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adromero/frame-sync/internal/utils"
)

type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		root = "uploads"
	}
	if err := utils.EnsureNoSymlinkBetween(filepath.Dir(root), root); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("无法创建上传目录 '%s': %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

// Save 先写入临时文件再重命名，覆盖时不会读到半个文件
func (s *LocalStore) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	dst, err := utils.SecureJoin(s.root, name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("无法创建文件: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("文件保存失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("文件保存失败: %w", err)
	}
	return os.Rename(tmp.Name(), dst)
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path, err := utils.SecureJoin(s.root, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	return f, err
}

func (s *LocalStore) Remove(_ context.Context, name string) error {
	path, err := utils.SecureJoin(s.root, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
