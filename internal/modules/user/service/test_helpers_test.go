package service

import (
	"testing"

	"github.com/adromero/frame-sync/internal/modules/user/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/testutils"

	"gorm.io/gorm"
)

var testService *Service

func setupTestDB(t *testing.T) *gorm.DB {
	gdb := testutils.SetupDB(t)
	testService = New(platformservice.NewAppService(), repo.NewUserRepository(gdb))
	return gdb
}
