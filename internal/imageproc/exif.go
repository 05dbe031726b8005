package imageproc

import (
	"bytes"
	"math"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifData 从图片中提取出的拍摄信息，缺失的字段为 nil
type ExifData struct {
	TakenAt     *time.Time
	CameraMake  *string
	CameraModel *string
	Latitude    *float64
	Longitude   *float64
	Altitude    *float64
	Orientation *int
	Tags        map[string]string
}

var extraTags = []exif.FieldName{
	exif.ExposureTime,
	exif.FNumber,
	exif.ISOSpeedRatings,
	exif.FocalLength,
	exif.Flash,
	exif.WhiteBalance,
	exif.FieldName("LensModel"),
}

// ExtractExif 解析 EXIF；图片不含 EXIF 时返回错误
func ExtractExif(data []byte) (*ExifData, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	out := &ExifData{Tags: map[string]string{}}
	if t, err := x.DateTime(); err == nil {
		out.TakenAt = &t
	}
	out.CameraMake = stringTag(x, exif.Make)
	out.CameraModel = stringTag(x, exif.Model)

	if lat, lon, err := x.LatLong(); err == nil && !math.IsNaN(lat) && !math.IsNaN(lon) {
		out.Latitude = &lat
		out.Longitude = &lon
	}
	if alt, ok := altitude(x); ok {
		out.Altitude = &alt
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if v, err := tag.Int(0); err == nil {
			out.Orientation = &v
		}
	}

	for _, name := range extraTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		if tag.Format() == tiff.StringVal {
			if s, err := tag.StringVal(); err == nil {
				out.Tags[string(name)] = cleanString(s)
			}
			continue
		}
		out.Tags[string(name)] = tag.String()
	}
	return out, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	s, err := tag.StringVal()
	if err != nil {
		return nil
	}
	s = cleanString(s)
	if s == "" {
		return nil
	}
	return &s
}

func altitude(x *exif.Exif) (float64, bool) {
	tag, err := x.Get(exif.GPSAltitude)
	if err != nil {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	alt := float64(num) / float64(den)
	// 参考值为 1 表示海平面以下
	if ref, err := x.Get(exif.GPSAltitudeRef); err == nil {
		if v, err := ref.Int(0); err == nil && v == 1 {
			alt = -alt
		}
	}
	return alt, true
}

func cleanString(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
