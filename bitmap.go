package spritefont

import "github.com/gogpu/spritefont/face"

// imageFromBitmap unpacks a rasterizer bitmap into a tightly packed
// grayscale Image, dropping any row stride padding. One-bit rows are
// MSB first within each byte; set bits map to full coverage.
func imageFromBitmap(bm face.Bitmap) *Image {
	out := NewImage(bm.Width, bm.Height, 1)
	switch bm.Mode {
	case face.PixelModeMono:
		for y := 0; y < bm.Height; y++ {
			row := bm.Data[y*bm.Pitch:]
			dst := out.data[y*bm.Width:]
			for x := 0; x < bm.Width; x++ {
				if row[x>>3]&(0x80>>(x&7)) != 0 {
					dst[x] = 255
				}
			}
		}
	default:
		for y := 0; y < bm.Height; y++ {
			copy(out.data[y*bm.Width:(y+1)*bm.Width],
				bm.Data[y*bm.Pitch:y*bm.Pitch+bm.Width])
		}
	}
	return out
}
