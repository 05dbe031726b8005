package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/adromero/frame-sync/internal/model"
	moduledto "github.com/adromero/frame-sync/internal/modules/device/dto"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"

	"gorm.io/gorm"
)

// 测试内容：验证重复注册同一设备不会报错，第二次返回 is_new=false 并更新名称，注册时间保持不变。
func TestRegister_IsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()

	first, isNew, err := testService.Register(ctx, moduledto.RegisterDeviceRequest{
		DeviceID: "d1",
		Name:     "Kitchen",
		Metadata: &model.DeviceMetadata{Resolution: "800x480"},
	})
	if err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	if !isNew {
		t.Fatalf("期望首次注册 is_new=true")
	}
	if first.DeviceType != model.DeviceTypeDisplay {
		t.Fatalf("期望默认类型 display，实际为 %q", first.DeviceType)
	}

	time.Sleep(5 * time.Millisecond)
	second, isNew, err := testService.Register(ctx, moduledto.RegisterDeviceRequest{
		DeviceID:   "d1",
		Name:       "Hallway",
		DeviceType: "epaper",
	})
	if err != nil {
		t.Fatalf("重复注册失败: %v", err)
	}
	if isNew {
		t.Fatalf("期望重复注册 is_new=false")
	}
	if !second.RegisteredAt.Equal(first.RegisteredAt) {
		t.Fatalf("期望注册时间保持不变")
	}

	stored, err := testService.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("查询设备失败: %v", err)
	}
	if stored.Name != "Hallway" || stored.DeviceType != "epaper" {
		t.Fatalf("非预期设备信息: %+v", stored)
	}
	if stored.Metadata.Data().Resolution != "800x480" {
		t.Fatalf("期望未上报 metadata 时保留原值，实际为 %+v", stored.Metadata.Data())
	}

	var count int64
	gdb.Model(&model.Device{}).Count(&count)
	if count != 1 {
		t.Fatalf("期望 1 台设备，实际为 %d", count)
	}
}

// 测试内容：验证非法设备 ID、空名称、超长名称与未知类型返回校验错误。
func TestRegister_Validation(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	cases := []moduledto.RegisterDeviceRequest{
		{DeviceID: "", Name: "x"},
		{DeviceID: "../etc", Name: "x"},
		{DeviceID: "has space", Name: "x"},
		{DeviceID: "d1", Name: "   "},
		{DeviceID: "d1", Name: strings.Repeat("n", 101)},
		{DeviceID: "d1", Name: "x", DeviceType: "toaster"},
	}
	for _, req := range cases {
		if _, _, err := testService.Register(ctx, req); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
			t.Fatalf("期望 %+v 返回 validation，实际为 %v", req, err)
		}
	}
}

// 测试内容：验证未知 metadata 字段会保存到 extensions 中。
func TestRegister_MetadataExtensions(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	var meta model.DeviceMetadata
	if err := meta.UnmarshalJSON([]byte(`{"resolution":"1920x1080","firmware":"1.2"}`)); err != nil {
		t.Fatalf("解析 metadata 失败: %v", err)
	}
	if _, _, err := testService.Register(ctx, moduledto.RegisterDeviceRequest{DeviceID: "tv", Name: "TV", Metadata: &meta}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	stored, err := testService.Get(ctx, "tv")
	if err != nil {
		t.Fatalf("查询设备失败: %v", err)
	}
	data := stored.Metadata.Data()
	if data.Version != model.DeviceMetadataVersion {
		t.Fatalf("期望 metadata 版本 %d，实际为 %d", model.DeviceMetadataVersion, data.Version)
	}
	if data.Extensions["firmware"] != "1.2" {
		t.Fatalf("期望 firmware 保存在 extensions，实际为 %+v", data.Extensions)
	}
}

// 测试内容：验证心跳刷新最后在线时间，未注册设备返回 not_found。
func TestHeartbeat(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	if _, err := testService.Heartbeat(ctx, "ghost"); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望 not_found，实际为 %v", err)
	}

	device, _, err := testService.Register(ctx, moduledto.RegisterDeviceRequest{DeviceID: "d1", Name: "Frame"})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	touched, err := testService.Heartbeat(ctx, "d1")
	if err != nil {
		t.Fatalf("心跳失败: %v", err)
	}
	if !touched.LastSeenAt.After(device.LastSeenAt) {
		t.Fatalf("期望 last_seen 前进，之前 %v 之后 %v", device.LastSeenAt, touched.LastSeenAt)
	}
}

// 测试内容：验证修改名称与类型，空请求返回校验错误，不存在的设备返回 not_found。
func TestUpdate(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	if _, _, err := testService.Register(ctx, moduledto.RegisterDeviceRequest{DeviceID: "d1", Name: "Frame"}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	name := "Living Room"
	device, err := testService.Update(ctx, "d1", moduledto.UpdateDeviceRequest{Name: &name})
	if err != nil {
		t.Fatalf("修改失败: %v", err)
	}
	if device.Name != name {
		t.Fatalf("期望名称 %q，实际为 %q", name, device.Name)
	}

	if _, err := testService.Update(ctx, "d1", moduledto.UpdateDeviceRequest{}); !platformservice.IsCode(err, platformservice.ErrorCodeValidation) {
		t.Fatalf("期望空请求返回 validation，实际为 %v", err)
	}
	if _, err := testService.Update(ctx, "ghost", moduledto.UpdateDeviceRequest{Name: &name}); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望 not_found，实际为 %v", err)
	}
}

// 测试内容：验证删除设备会级联删除授权但保留图片，并触发删除回调。
func TestDelete_CascadesAssignmentsAndRunsHooks(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()

	if _, _, err := testService.Register(ctx, moduledto.RegisterDeviceRequest{DeviceID: "d1", Name: "Frame"}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	user := model.User{Address: "10.0.0.5", Name: "10.0.0.5"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	img := model.Image{Filename: "a.png", OriginalName: "a.png", UserID: user.ID, Size: 1, MimeType: "image/png", UploadedAt: time.Now()}
	if err := gdb.Create(&img).Error; err != nil {
		t.Fatalf("创建图片失败: %v", err)
	}
	if err := gdb.Create(&model.Assignment{ImageID: img.ID, DeviceID: "d1", CreatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("创建授权失败: %v", err)
	}

	var forgotten []string
	testService.OnDelete(func(id string) { forgotten = append(forgotten, id) })

	if err := testService.Delete(ctx, "d1"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	var assignments, images int64
	gdb.Model(&model.Assignment{}).Count(&assignments)
	gdb.Model(&model.Image{}).Count(&images)
	if assignments != 0 || images != 1 {
		t.Fatalf("期望授权 0 图片 1，实际为 %d / %d", assignments, images)
	}
	if len(forgotten) != 1 || forgotten[0] != "d1" {
		t.Fatalf("期望触发删除回调，实际为 %v", forgotten)
	}

	if err := testService.Delete(ctx, "d1"); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望再次删除返回 not_found，实际为 %v", err)
	}
}

// 测试内容：验证设备列表包含授权图片数量并按名称排序。
func TestList_IncludesImageCounts(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	for _, req := range []moduledto.RegisterDeviceRequest{
		{DeviceID: "b", Name: "Bedroom"},
		{DeviceID: "a", Name: "Attic"},
	} {
		if _, _, err := testService.Register(ctx, req); err != nil {
			t.Fatalf("注册失败: %v", err)
		}
	}

	devices, err := testService.List(ctx)
	if err != nil {
		t.Fatalf("查询列表失败: %v", err)
	}
	if len(devices) != 2 || devices[0].ID != "a" || devices[1].ID != "b" {
		t.Fatalf("非预期设备列表: %+v", devices)
	}
	if devices[0].ImageCount != 0 {
		t.Fatalf("期望图片数 0，实际为 %d", devices[0].ImageCount)
	}
}

// 测试内容：验证数据库对未变化的行返回 0 影响行数时（MySQL 语义），同名更新与心跳仍然成功，不存在的设备仍返回 not_found。
func TestUpdate_UnchangedRowIsNotNotFound(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()

	if _, _, err := testService.Register(ctx, moduledto.RegisterDeviceRequest{DeviceID: "d1", Name: "Kitchen"}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 模拟只统计实际变化行数的驱动
	err := gdb.Callback().Update().After("gorm:update").Register("test:changed_rows_only", func(tx *gorm.DB) {
		tx.RowsAffected = 0
	})
	if err != nil {
		t.Fatalf("注册回调失败: %v", err)
	}

	name := "Kitchen"
	device, err := testService.Update(ctx, "d1", moduledto.UpdateDeviceRequest{Name: &name})
	if err != nil {
		t.Fatalf("同名更新期望成功，实际为 %v", err)
	}
	if device.Name != "Kitchen" {
		t.Fatalf("期望名称 Kitchen，实际为 %q", device.Name)
	}

	for i := 0; i < 2; i++ {
		if _, err := testService.Heartbeat(ctx, "d1"); err != nil {
			t.Fatalf("第 %d 次心跳期望成功，实际为 %v", i+1, err)
		}
	}

	if _, err := testService.Heartbeat(ctx, "ghost"); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望 not_found，实际为 %v", err)
	}
}
