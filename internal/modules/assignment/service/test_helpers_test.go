package service

import (
	"testing"
	"time"

	"github.com/adromero/frame-sync/internal/model"
	"github.com/adromero/frame-sync/internal/modules/assignment/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/testutils"

	"gorm.io/gorm"
)

var testService *Service

func setupTestDB(t *testing.T) *gorm.DB {
	gdb := testutils.SetupDB(t)
	testService = New(platformservice.NewAppService(), repo.NewAssignmentRepository(gdb))
	return gdb
}

func createDevices(t *testing.T, gdb *gorm.DB, ids ...string) {
	t.Helper()
	now := time.Now()
	for _, id := range ids {
		if err := gdb.Create(&model.Device{ID: id, Name: id, DeviceType: model.DeviceTypeDisplay, RegisteredAt: now, LastSeenAt: now}).Error; err != nil {
			t.Fatalf("创建设备失败: %v", err)
		}
	}
}

func createImage(t *testing.T, gdb *gorm.DB, filename string, uploadedAt time.Time) model.Image {
	t.Helper()
	var user model.User
	if err := gdb.Where(model.User{Address: "10.0.0.5"}).Attrs(model.User{Name: "10.0.0.5"}).FirstOrCreate(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	img := model.Image{
		Filename:     filename,
		OriginalName: filename,
		UserID:       user.ID,
		Size:         10,
		MimeType:     "image/png",
		Width:        1,
		Height:       1,
		UploadedAt:   uploadedAt,
	}
	if err := gdb.Omit("User").Create(&img).Error; err != nil {
		t.Fatalf("创建图片失败: %v", err)
	}
	return img
}

func deviceIDs(devices []model.Device) []string {
	ids := make([]string, 0, len(devices))
	for _, d := range devices {
		ids = append(ids, d.ID)
	}
	return ids
}
