package service

import (
	"testing"
	"time"

	"github.com/adromero/frame-sync/internal/model"
	assignmentrepo "github.com/adromero/frame-sync/internal/modules/assignment/repo"
	assignmentservice "github.com/adromero/frame-sync/internal/modules/assignment/service"
	devicerepo "github.com/adromero/frame-sync/internal/modules/device/repo"
	deviceservice "github.com/adromero/frame-sync/internal/modules/device/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/testutils"

	"gorm.io/gorm"
)

var testService *Service

func setupTestDB(t *testing.T) *gorm.DB {
	gdb := testutils.SetupDB(t)
	testutils.SetupConfig(t, nil)

	appService := platformservice.NewAppService()
	devices := deviceservice.New(appService, devicerepo.NewDeviceRepository(gdb))
	assignments := assignmentservice.New(appService, assignmentrepo.NewAssignmentRepository(gdb))
	testService = New(appService, devices, assignments)
	return gdb
}

func createDevice(t *testing.T, gdb *gorm.DB, id string) {
	t.Helper()
	now := time.Now().Add(-time.Minute)
	if err := gdb.Create(&model.Device{ID: id, Name: id, DeviceType: model.DeviceTypeFrame, RegisteredAt: now, LastSeenAt: now}).Error; err != nil {
		t.Fatalf("创建设备失败: %v", err)
	}
}

// assignImages 创建图片并授权给设备
func assignImages(t *testing.T, gdb *gorm.DB, deviceID string, names ...string) {
	t.Helper()
	var user model.User
	if err := gdb.Where(model.User{Address: "10.0.0.5"}).Attrs(model.User{Name: "Alice"}).FirstOrCreate(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	for _, name := range names {
		img := model.Image{Filename: name, UserID: user.ID, Size: 1, MimeType: "image/png", UploadedAt: time.Now()}
		if err := gdb.Omit("User").Create(&img).Error; err != nil {
			t.Fatalf("创建图片失败: %v", err)
		}
		if err := gdb.Omit("Image", "Device").Create(&model.Assignment{ImageID: img.ID, DeviceID: deviceID, CreatedAt: time.Now()}).Error; err != nil {
			t.Fatalf("创建授权失败: %v", err)
		}
	}
}
