package model

import (
	"encoding/json"
	"testing"
)

// 测试内容：验证设备元数据中未知字段会归入 Extensions，已知字段正常解析。
func TestDeviceMetadata_UnmarshalKeepsUnknownKeys(t *testing.T) {
	var m DeviceMetadata
	raw := `{"version":1,"resolution":"800x480","panel":"7in","refresh":30}`
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if m.Resolution != "800x480" || m.Version != 1 {
		t.Fatalf("非预期已知字段: %+v", m)
	}
	if m.Extensions["panel"] != "7in" {
		t.Fatalf("期望 panel 进入 Extensions，实际为 %v", m.Extensions)
	}
	if _, ok := m.Extensions["resolution"]; ok {
		t.Fatalf("已知字段不应进入 Extensions")
	}
}

// 测试内容：验证设备类型校验只接受封闭集合中的值。
func TestIsValidDeviceType(t *testing.T) {
	for _, typ := range DeviceTypes {
		if !IsValidDeviceType(typ) {
			t.Fatalf("期望 %q 合法", typ)
		}
	}
	if IsValidDeviceType("toaster") {
		t.Fatalf("期望 toaster 非法")
	}
}
