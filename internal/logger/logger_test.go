package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

// 测试内容：验证日志级别可动态调整，非法级别不会覆盖当前值。
func TestSetLevel(t *testing.T) {
	prev := Level()
	t.Cleanup(func() { level.SetLevel(prev) })

	SetLevel("debug")
	if Level() != zapcore.DebugLevel {
		t.Fatalf("期望 debug，实际为 %v", Level())
	}

	SetLevel("not-a-level")
	if Level() != zapcore.DebugLevel {
		t.Fatalf("期望非法级别被忽略，实际为 %v", Level())
	}

	SetLevel(" warn ")
	if Level() != zapcore.WarnLevel {
		t.Fatalf("期望 warn，实际为 %v", Level())
	}
}
