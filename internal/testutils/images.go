package testutils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// SamplePNG 生成指定尺寸的不透明 PNG，左半部分为红色，右半部分为蓝色。
func SamplePNG(w, h int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, sampleImage(w, h, 255))
	return buf.Bytes()
}

// SampleTransparentPNG 生成完全透明的 PNG，用于验证缩略图的白底合成。
func SampleTransparentPNG(w, h int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, sampleImage(w, h, 0))
	return buf.Bytes()
}

// SampleJPEG 生成指定尺寸的 JPEG。
func SampleJPEG(w, h int) []byte {
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, sampleImage(w, h, 255), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

// MinimalPNG 返回 1x1 的 PNG。
func MinimalPNG() []byte {
	return SamplePNG(1, 1)
}

func sampleImage(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 220, G: 20, B: 20, A: alpha}
			if x >= w/2 {
				c = color.NRGBA{R: 20, G: 20, B: 220, A: alpha}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
