package service

import (
	"context"
	"sync"
	"testing"

	"github.com/adromero/frame-sync/internal/model"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

// 测试内容：验证有两张候选图片时连续调用不会返回同一张图片。
func TestNext_NeverRepeatsWithTwoCandidates(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	createDevice(t, gdb, "d1")
	assignImages(t, gdb, "d1", "a.png", "b.png")

	prev := ""
	seen := map[string]int{}
	for i := 0; i < 50; i++ {
		img, err := testService.Next(ctx, "d1")
		if err != nil || img == nil {
			t.Fatalf("Next 失败: img=%v err=%v", img, err)
		}
		if img.Filename == prev {
			t.Fatalf("第 %d 次调用重复返回 %s", i, img.Filename)
		}
		prev = img.Filename
		seen[img.Filename]++
	}
	if seen["a.png"] != 25 || seen["b.png"] != 25 {
		t.Fatalf("期望两张图片交替出现，实际为 %v", seen)
	}
}

// 测试内容：验证只有一张候选图片时每次都返回该图片。
func TestNext_SingleCandidateAlwaysReturned(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	createDevice(t, gdb, "d1")
	assignImages(t, gdb, "d1", "a.png")

	for i := 0; i < 5; i++ {
		img, err := testService.Next(ctx, "d1")
		if err != nil || img == nil || img.Filename != "a.png" {
			t.Fatalf("期望返回 a.png，实际为 %v err=%v", img, err)
		}
	}
}

// 测试内容：验证多于两张候选时使用注入的随机函数，且排除上一次的图片。
func TestNext_UsesPickOverRemainingCandidates(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	createDevice(t, gdb, "d1")
	assignImages(t, gdb, "d1", "a.png", "b.png", "c.png")

	var sizes []int
	testService.pick = func(n int) int {
		sizes = append(sizes, n)
		return 0
	}

	first, _ := testService.Next(ctx, "d1")
	second, _ := testService.Next(ctx, "d1")
	if first.Filename == second.Filename {
		t.Fatalf("期望排除上一次的图片，两次均为 %s", first.Filename)
	}
	if len(sizes) != 2 || sizes[0] != 3 || sizes[1] != 2 {
		t.Fatalf("期望候选数量为 [3 2]，实际为 %v", sizes)
	}
}

// 测试内容：验证未注册设备返回 not_found，没有授权图片时返回 nil 且刷新在线时间。
func TestNext_UnknownDeviceAndEmptySet(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()

	if _, err := testService.Next(ctx, "ghost"); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望 not_found，实际为 %v", err)
	}

	createDevice(t, gdb, "d2")
	var before model.Device
	gdb.Where("id = ?", "d2").Take(&before)

	img, err := testService.Next(ctx, "d2")
	if err != nil || img != nil {
		t.Fatalf("期望无内容，实际为 %v err=%v", img, err)
	}

	var after model.Device
	gdb.Where("id = ?", "d2").Take(&after)
	if !after.LastSeenAt.After(before.LastSeenAt) {
		t.Fatalf("期望 last_seen 已刷新")
	}
}

// 测试内容：验证删除设备唯一的图片后 Next 返回无内容。
func TestNext_AfterOnlyImageDeleted(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	createDevice(t, gdb, "d1")
	assignImages(t, gdb, "d1", "a.png")

	if img, _ := testService.Next(ctx, "d1"); img == nil {
		t.Fatalf("期望返回 a.png")
	}
	if err := gdb.Where("filename = ?", "a.png").Delete(&model.Image{}).Error; err != nil {
		t.Fatalf("删除图片失败: %v", err)
	}
	img, err := testService.Next(ctx, "d1")
	if err != nil || img != nil {
		t.Fatalf("期望无内容，实际为 %v err=%v", img, err)
	}
}

// 测试内容：验证同一设备的并发请求安全，且 Forget 会清除轮播状态。
func TestNext_ConcurrentAndForget(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	createDevice(t, gdb, "d1")
	assignImages(t, gdb, "d1", "a.png", "b.png", "c.png")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := testService.Next(ctx, "d1"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("并发 Next 失败: %v", err)
	}

	if _, ok := testService.states.Load("d1"); !ok {
		t.Fatalf("期望记录轮播状态")
	}
	testService.Forget("d1")
	if _, ok := testService.states.Load("d1"); ok {
		t.Fatalf("期望 Forget 后状态被清除")
	}
}

// 测试内容：验证设备图片列表包含设备名称、数量与访问地址。
func TestDeviceImages(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	createDevice(t, gdb, "d1")
	assignImages(t, gdb, "d1", "a.png", "b.png")

	resp, err := testService.DeviceImages(ctx, "d1")
	if err != nil {
		t.Fatalf("DeviceImages 失败: %v", err)
	}
	if resp.DeviceName != "d1" || resp.Count != 2 || len(resp.Images) != 2 {
		t.Fatalf("非预期响应: %+v", resp)
	}
	if resp.Images[0].UploaderName != "Alice" || resp.Images[0].URL != "/uploads/"+resp.Images[0].Filename {
		t.Fatalf("非预期图片条目: %+v", resp.Images[0])
	}

	if _, err := testService.DeviceImages(ctx, "ghost"); !platformservice.IsCode(err, platformservice.ErrorCodeNotFound) {
		t.Fatalf("期望 not_found，实际为 %v", err)
	}
}

// 测试内容：验证 CurrentImage 记录最近一次分发给任意设备的图片，尚未分发时为 nil。
func TestCurrentImage_TracksLastServed(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	createDevice(t, gdb, "d1")
	createDevice(t, gdb, "d2")
	assignImages(t, gdb, "d1", "a.png")
	assignImages(t, gdb, "d2", "b.png")

	if got := testService.CurrentImage(); got != nil {
		t.Fatalf("期望 nil，实际为 %q", *got)
	}

	if _, err := testService.Next(ctx, "d1"); err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if got := testService.CurrentImage(); got == nil || *got != "a.png" {
		t.Fatalf("期望 a.png，实际为 %v", got)
	}

	if _, err := testService.Next(ctx, "d2"); err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if got := testService.CurrentImage(); got == nil || *got != "b.png" {
		t.Fatalf("期望 b.png，实际为 %v", got)
	}
}
