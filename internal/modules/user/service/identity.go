package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/model"
	"github.com/adromero/frame-sync/internal/modules/user/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

const maxNameLength = 50

// Resolve 按来源地址获取用户，首次出现时创建
func (s *Service) Resolve(ctx context.Context, address string) (*model.User, error) {
	if strings.TrimSpace(address) == "" {
		return nil, platformservice.NewValidationError("无法识别来源地址")
	}
	user, err := s.userStore.Resolve(ctx, address)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "用户不存在")
	}
	return user, nil
}

// SetName 设置来源地址对应的显示名称
func (s *Service) SetName(ctx context.Context, address string, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, platformservice.NewValidationError("名称不能为空")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, platformservice.NewValidationError("名称不能超过 50 个字符")
	}
	if strings.TrimSpace(address) == "" {
		return nil, platformservice.NewValidationError("无法识别来源地址")
	}

	user, err := s.userStore.SetName(ctx, address, name)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "用户不存在")
	}
	return user, nil
}

// DisplayName 返回地址对应的名称，未登记时返回地址本身，不会创建用户
func (s *Service) DisplayName(ctx context.Context, address string) (string, error) {
	user, err := s.userStore.FindByAddress(ctx, address)
	if err != nil {
		if db.IsNotFound(err) {
			return address, nil
		}
		return "", platformservice.TranslateStorageError(err, "用户不存在")
	}
	return user.Name, nil
}

// List 列出全部用户及其图片数量
func (s *Service) List(ctx context.Context) ([]repo.UserWithCount, error) {
	users, err := s.userStore.ListWithImageCounts(ctx)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "用户不存在")
	}
	return users, nil
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.userStore.CountAll(ctx)
}
