package service

import (
	"errors"
	"strings"

	"github.com/adromero/frame-sync/internal/modules/assignment/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Service struct {
	*platformservice.AppService
	assignmentStore repo.AssignmentStore
}

func New(appService *platformservice.AppService, assignmentStore repo.AssignmentStore) *Service {
	return &Service{
		AppService:      appService,
		assignmentStore: assignmentStore,
	}
}

// TranslateError 在通用存储错误映射之前处理未注册设备
func TranslateError(err error, notFoundMessage string) error {
	var unknown *repo.UnknownDevicesError
	if errors.As(err, &unknown) {
		return &platformservice.ServiceError{
			Code:    platformservice.ErrorCodeNotFound,
			Message: "设备不存在: " + strings.Join(unknown.IDs, ", "),
			Err:     err,
		}
	}
	return platformservice.TranslateStorageError(err, notFoundMessage)
}
