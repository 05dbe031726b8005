package utils

import (
	"io"
	"net/http"
	"regexp"
	"strings"
)

var safeIdentifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,254}$`)

// IsSafeIdentifier 判断路径参数（文件名、设备 ID）是否可安全用于存储与文件系统
func IsSafeIdentifier(s string) bool {
	return safeIdentifierPattern.MatchString(s) && !strings.Contains(s, "..")
}

var allowedImageTypes = map[string]map[string]bool{
	"image/jpeg":     {".jpg": true, ".jpeg": true},
	"image/png":      {".png": true},
	"image/gif":      {".gif": true},
	"image/webp":     {".webp": true},
	"image/bmp":      {".bmp": true},
	"image/x-ms-bmp": {".bmp": true},
}

// ValidateImageContent 通过文件头判断真实类型是否与扩展名一致，返回检测到的类型
func ValidateImageContent(reader io.ReadSeeker, ext string) (string, bool, string) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", false, "读取文件内容失败"
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", false, "重置文件读取位置失败"
	}

	contentType := http.DetectContentType(buffer[:n])
	if exts, ok := allowedImageTypes[contentType]; ok && exts[strings.ToLower(ext)] {
		if contentType == "image/x-ms-bmp" {
			contentType = "image/bmp"
		}
		return contentType, true, ""
	}
	return contentType, false, "文件真实类型(" + contentType + ")与扩展名(" + ext + ")不匹配或不支持"
}
