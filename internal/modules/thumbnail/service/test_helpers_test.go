package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/adromero/frame-sync/internal/model"
	"github.com/adromero/frame-sync/internal/modules/thumbnail/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
	"github.com/adromero/frame-sync/internal/testutils"

	"gorm.io/gorm"
)

var (
	testService *Service
	testAssets  storage.AssetStore
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb := testutils.SetupDB(t)
	testutils.SetupConfig(t, nil)

	assets, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}
	testAssets = assets
	testService = New(platformservice.NewAppService(), repo.NewThumbnailRepository(gdb), assets)
	return gdb
}

// seedImage 写入原图与图片记录
func seedImage(t *testing.T, gdb *gorm.DB, filename string, data []byte) model.Image {
	t.Helper()
	if data != nil {
		if err := testAssets.Save(context.Background(), filename, bytes.NewReader(data), int64(len(data)), "image/png"); err != nil {
			t.Fatalf("保存原图失败: %v", err)
		}
	}

	var user model.User
	if err := gdb.Where(model.User{Address: "10.0.0.5"}).Attrs(model.User{Name: "10.0.0.5"}).FirstOrCreate(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	img := model.Image{
		Filename:   filename,
		UserID:     user.ID,
		Size:       int64(len(data)),
		MimeType:   "image/png",
		UploadedAt: time.Now(),
	}
	if err := gdb.Omit("User").Create(&img).Error; err != nil {
		t.Fatalf("创建图片失败: %v", err)
	}
	return img
}
