package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SecureJoin 将资源名拼接到存储根目录下，返回绝对路径。
//
// 拒绝绝对路径与 ".." 越界，并检查根目录到目标之间不存在符号链接。
func SecureJoin(root, name string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}

	cleanName := filepath.Clean(name)
	if cleanName == "." {
		cleanName = ""
	}
	if filepath.IsAbs(cleanName) {
		return "", fmt.Errorf("非法路径: 不允许绝对路径")
	}

	target, err := filepath.Abs(filepath.Join(rootAbs, cleanName))
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}
	if err := EnsureNoSymlinkBetween(rootAbs, target); err != nil {
		return "", err
	}
	return target, nil
}

// EnsureNoSymlinkBetween 校验 target 位于 root 内，且沿途已存在的节点都不是符号链接。
// 不存在的节点不报错，便于在写入新文件前调用。
func EnsureNoSymlinkBetween(root, target string) error {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}
	if err := ensureWithinRoot(rootAbs, targetAbs); err != nil {
		return err
	}

	for current := targetAbs; ; {
		info, statErr := os.Lstat(current)
		if statErr == nil && info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("检测到符号链接穿透风险: %s", current)
		}
		if statErr != nil && !os.IsNotExist(statErr) {
			return fmt.Errorf("检查路径失败: %w", statErr)
		}
		if samePath(current, rootAbs) {
			return nil
		}

		parent := filepath.Dir(current)
		if samePath(parent, current) {
			return fmt.Errorf("非法路径: 无法定位到存储根目录")
		}
		current = parent
	}
}

func ensureWithinRoot(rootAbs, targetAbs string) error {
	rootVol := filepath.VolumeName(rootAbs)
	targetVol := filepath.VolumeName(targetAbs)
	if (rootVol != "" || targetVol != "") && !strings.EqualFold(rootVol, targetVol) {
		return fmt.Errorf("非法路径: 路径跨磁盘卷")
	}

	rel, err := filepath.Rel(rootAbs, targetAbs)
	if err != nil {
		return fmt.Errorf("非法路径: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("非法路径: 目标超出存储根目录")
	}
	return nil
}

func samePath(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
