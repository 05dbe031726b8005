//go:build wireinject
// +build wireinject

package di

import (
	"github.com/adromero/frame-sync/internal/modules"
	assignmentrepo "github.com/adromero/frame-sync/internal/modules/assignment/repo"
	devicerepo "github.com/adromero/frame-sync/internal/modules/device/repo"
	imagerepo "github.com/adromero/frame-sync/internal/modules/image/repo"
	systemrepo "github.com/adromero/frame-sync/internal/modules/system/repo"
	thumbnailrepo "github.com/adromero/frame-sync/internal/modules/thumbnail/repo"
	userrepo "github.com/adromero/frame-sync/internal/modules/user/repo"
	"github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/router"
	"github.com/adromero/frame-sync/internal/storage"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, assets storage.AssetStore) (*Application, error) {
	wire.Build(
		userrepo.NewUserRepository,
		devicerepo.NewDeviceRepository,
		assignmentrepo.NewAssignmentRepository,
		thumbnailrepo.NewThumbnailRepository,
		imagerepo.NewImageRepository,
		systemrepo.NewSystemRepository,
		service.NewAppService,
		modules.New,
		ProvideRateLimiter,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
