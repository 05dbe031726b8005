package modules

import (
	"github.com/adromero/frame-sync/internal/modules/assignment"
	assignmentrepo "github.com/adromero/frame-sync/internal/modules/assignment/repo"
	"github.com/adromero/frame-sync/internal/modules/device"
	devicerepo "github.com/adromero/frame-sync/internal/modules/device/repo"
	"github.com/adromero/frame-sync/internal/modules/display"
	"github.com/adromero/frame-sync/internal/modules/image"
	imagerepo "github.com/adromero/frame-sync/internal/modules/image/repo"
	"github.com/adromero/frame-sync/internal/modules/system"
	systemrepo "github.com/adromero/frame-sync/internal/modules/system/repo"
	systemservice "github.com/adromero/frame-sync/internal/modules/system/service"
	"github.com/adromero/frame-sync/internal/modules/thumbnail"
	thumbnailrepo "github.com/adromero/frame-sync/internal/modules/thumbnail/repo"
	"github.com/adromero/frame-sync/internal/modules/user"
	userrepo "github.com/adromero/frame-sync/internal/modules/user/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
)

type AppModules struct {
	User       *user.Module
	Device     *device.Module
	Assignment *assignment.Module
	Thumbnail  *thumbnail.Module
	Image      *image.Module
	Display    *display.Module
	System     *system.Module
}

func New(
	appService *platformservice.AppService,
	userStore userrepo.UserStore,
	deviceStore devicerepo.DeviceStore,
	assignmentStore assignmentrepo.AssignmentStore,
	thumbnailStore thumbnailrepo.ThumbnailStore,
	imageStore imagerepo.ImageStore,
	systemStore systemrepo.SystemStore,
	assets storage.AssetStore,
) *AppModules {
	userModule := user.New(appService, userStore)
	deviceModule := device.New(appService, deviceStore)
	assignmentModule := assignment.New(appService, assignmentStore)
	thumbnailModule := thumbnail.New(appService, thumbnailStore, assets)
	displayModule := display.New(appService, deviceModule.Service, assignmentModule.Service)
	imageModule := image.New(appService, imageStore, assignmentModule.Service, thumbnailModule.Service, displayModule.Service, assets)

	// 设备删除后清除其轮播状态
	deviceModule.Service.OnDelete(displayModule.Service.Forget)

	systemModule := system.New(appService, systemStore, systemservice.Sources{
		Users:       userModule.Service,
		Devices:     deviceModule.Service,
		Images:      imageModule.Service,
		Assignments: assignmentModule.Service,
		Thumbnails:  thumbnailModule.Service,
	})

	return &AppModules{
		User:       userModule,
		Device:     deviceModule,
		Assignment: assignmentModule,
		Thumbnail:  thumbnailModule,
		Image:      imageModule,
		Display:    displayModule,
		System:     systemModule,
	}
}
