package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	// 注册解码器
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

var (
	// ErrUnsupportedFormat 表示该格式无法重新编码
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrTooLarge 表示头部声明的像素数超过上限
	ErrTooLarge = errors.New("image exceeds pixel limit")
)

// Info 图片头部信息
type Info struct {
	Width    int
	Height   int
	Format   string
	MimeType string
}

// Probe 只解析图片头部，获取尺寸与格式
//
// maxPixels > 0 时，宽高乘积超过上限返回 ErrTooLarge，调用方应在完整解码前调用。
func Probe(data []byte, maxPixels int64) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, err
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return Info{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	return Info{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		MimeType: "image/" + format,
	}, nil
}

// Thumbnail 缩略图结果
type Thumbnail struct {
	Data     []byte
	Width    int
	Height   int
	MimeType string
}

// MakeThumbnail 等比缩放到边界框内（不放大），透明区域铺白底后编码为 JPEG
func MakeThumbnail(data []byte, maxWidth, maxHeight, quality int) (*Thumbnail, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("invalid thumbnail box %dx%d", maxWidth, maxHeight)
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode source: %w", err)
	}

	sb := src.Bounds()
	w, h := fitWithin(sb.Dx(), sb.Dy(), maxWidth, maxHeight)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty source image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return &Thumbnail{Data: buf.Bytes(), Width: w, Height: h, MimeType: "image/jpeg"}, nil
}

func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	// 按较大的缩放比例收缩
	if w*maxH > h*maxW {
		nh := h * maxW / w
		if nh < 1 {
			nh = 1
		}
		return maxW, nh
	}
	nw := w * maxH / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxH
}

// Rotate 按角度旋转并以原格式重新编码，返回新内容与尺寸
func Rotate(data []byte, ext string, degrees int, clockwise bool) ([]byte, int, int, error) {
	format, err := imaging.FormatFromExtension(strings.ToLower(ext))
	if err != nil {
		return nil, 0, 0, ErrUnsupportedFormat
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode source: %w", err)
	}

	// imaging 的旋转方向为逆时针
	if clockwise {
		degrees = 360 - degrees
	}
	var out *image.NRGBA
	switch degrees % 360 {
	case 90:
		out = imaging.Rotate90(src)
	case 180:
		out = imaging.Rotate180(src)
	case 270:
		out = imaging.Rotate270(src)
	default:
		return nil, 0, 0, fmt.Errorf("invalid rotation %d", degrees)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, format, imaging.JPEGQuality(95)); err != nil {
		return nil, 0, 0, fmt.Errorf("encode rotated: %w", err)
	}
	b := out.Bounds()
	return buf.Bytes(), b.Dx(), b.Dy(), nil
}
