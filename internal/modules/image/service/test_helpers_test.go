package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/adromero/frame-sync/internal/model"
	assignmentrepo "github.com/adromero/frame-sync/internal/modules/assignment/repo"
	moduledto "github.com/adromero/frame-sync/internal/modules/image/dto"
	modulerepo "github.com/adromero/frame-sync/internal/modules/image/repo"
	thumbnailrepo "github.com/adromero/frame-sync/internal/modules/thumbnail/repo"
	thumbnailservice "github.com/adromero/frame-sync/internal/modules/thumbnail/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
	"github.com/adromero/frame-sync/internal/testutils"

	"gorm.io/gorm"
)

var (
	testService *Service
	testAssets  storage.AssetStore
	testDisplay *stubDisplay
	assetsDir   string
)

// stubDisplay 固定返回的当前展示图片
type stubDisplay struct {
	current *string
}

func (d *stubDisplay) CurrentImage() *string {
	return d.current
}

func setupTestDB(t *testing.T) *gorm.DB {
	gdb := testutils.SetupDB(t)
	testutils.SetupConfig(t, nil)

	assetsDir = t.TempDir()
	assets, err := storage.NewLocalStore(assetsDir)
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}
	testAssets = assets

	appService := platformservice.NewAppService()
	thumbnails := thumbnailservice.New(appService, thumbnailrepo.NewThumbnailRepository(gdb), assets)
	testDisplay = &stubDisplay{}
	testService = New(
		appService,
		modulerepo.NewImageRepository(gdb),
		assignmentrepo.NewAssignmentRepository(gdb),
		thumbnails,
		testDisplay,
		assets,
	)
	return gdb
}

// fileHeader 构造 multipart 上传文件
func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("创建表单文件失败: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("写入表单文件失败: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("关闭表单失败: %v", err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("解析表单失败: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
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

// seedImages 直接写入指定上传者与时间的图片记录
func seedImages(t *testing.T, gdb *gorm.DB, address string, names ...string) {
	t.Helper()
	var user model.User
	if err := gdb.Where(model.User{Address: address}).Attrs(model.User{Name: address}).FirstOrCreate(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		img := model.Image{
			Filename:   name,
			UserID:     user.ID,
			Size:       1,
			MimeType:   "image/png",
			UploadedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := gdb.Omit("User").Create(&img).Error; err != nil {
			t.Fatalf("创建图片失败: %v", err)
		}
	}
}

func galleryPage(page, pageSize int) moduledto.GalleryQuery {
	return moduledto.GalleryQuery{Paged: true, Page: page, PageSize: pageSize}
}

func galleryAll(address string) moduledto.GalleryQuery {
	return moduledto.GalleryQuery{UserAddress: address}
}

// pausingStore 第一次 Open 读完内容后暂停，直到 release 被关闭
type pausingStore struct {
	storage.AssetStore
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func newPausingStore(inner storage.AssetStore) *pausingStore {
	return &pausingStore{AssetStore: inner, read: make(chan struct{}), release: make(chan struct{})}
}

func (p *pausingStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	data, err := storage.ReadAll(ctx, p.AssetStore, name)
	if err != nil {
		return nil, err
	}
	p.once.Do(func() {
		close(p.read)
		<-p.release
	})
	return io.NopCloser(bytes.NewReader(data)), nil
}
