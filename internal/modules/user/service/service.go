package service

import (
	"github.com/adromero/frame-sync/internal/modules/user/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Service struct {
	*platformservice.AppService
	userStore repo.UserStore
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
	}
}
