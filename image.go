package spritefont

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Image is a dense, tightly packed pixel buffer with either one
// component per pixel (grayscale coverage) or four (straight, non
// premultiplied RGBA).
type Image struct {
	width      int
	height     int
	components int
	data       []uint8
}

// NewImage creates a zeroed image. components must be 1 or 4.
func NewImage(width, height, components int) *Image {
	return &Image{
		width:      width,
		height:     height,
		components: components,
		data:       make([]uint8, width*height*components),
	}
}

// Width returns the width of the image in pixels.
func (p *Image) Width() int { return p.width }

// Height returns the height of the image in pixels.
func (p *Image) Height() int { return p.height }

// Components returns the number of bytes per pixel (1 or 4).
func (p *Image) Components() int { return p.components }

// Data returns the raw pixel data.
func (p *Image) Data() []uint8 { return p.data }

// Paste copies src into p with its top-left corner at (x, y),
// clipping at the edges. Both images must have the same component
// count.
func (p *Image) Paste(src *Image, x, y int) {
	if src.components != p.components {
		return
	}
	c := p.components
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= p.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= p.width {
				continue
			}
			copy(p.data[(dy*p.width+dx)*c:(dy*p.width+dx)*c+c],
				src.data[(sy*src.width+sx)*c:(sy*src.width+sx)*c+c])
		}
	}
}

// Blur applies a separable triangular (Bartlett) blur of the given
// radius in place. Pixels outside the image count as zero, so callers
// wanting lossless blur must pad by radius on every side first. Only
// grayscale images are blurred; radius 0 is a no-op.
func (p *Image) Blur(radius int) {
	if radius <= 0 || p.components != 1 {
		return
	}
	w, h := p.width, p.height
	den := (radius + 1) * (radius + 1)
	tmp := make([]uint8, len(p.data))
	for y := 0; y < h; y++ {
		row := p.data[y*w : (y+1)*w]
		out := tmp[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			sum := 0
			for d := -radius; d <= radius; d++ {
				xx := x + d
				if xx < 0 || xx >= w {
					continue
				}
				sum += int(row[xx]) * weightAt(radius, d)
			}
			out[x] = uint8(sum / den)
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sum := 0
			for d := -radius; d <= radius; d++ {
				yy := y + d
				if yy < 0 || yy >= h {
					continue
				}
				sum += int(tmp[yy*w+x]) * weightAt(radius, d)
			}
			p.data[y*w+x] = uint8(sum / den)
		}
	}
}

func weightAt(radius, d int) int {
	if d < 0 {
		d = -d
	}
	return radius + 1 - d
}

// Colorized converts a grayscale image to RGBA: every pixel takes the
// given color's RGB, with alpha scaled by the pixel's intensity.
func (p *Image) Colorized(c color.RGBA) *Image {
	if p.components != 1 {
		return p
	}
	out := NewImage(p.width, p.height, 4)
	for i, v := range p.data {
		out.data[i*4+0] = c.R
		out.data[i*4+1] = c.G
		out.data[i*4+2] = c.B
		out.data[i*4+3] = uint8(int(v) * int(c.A) / 255)
	}
	return out
}

// ToImage converts the buffer to a standard library image:
// image.Gray for one component, image.NRGBA for four.
func (p *Image) ToImage() image.Image {
	if p.components == 1 {
		img := image.NewGray(image.Rect(0, 0, p.width, p.height))
		copy(img.Pix, p.data)
		return img
	}
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage converts a standard library image into a four-component
// Image with straight alpha.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := NewImage(width, height, 4)

	nrgba, ok := img.(*image.NRGBA)
	if ok && nrgba.Stride == width*4 {
		copy(out.data, nrgba.Pix)
		return out
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*width + x) * 4
			out.data[i+0] = c.R
			out.data[i+1] = c.G
			out.data[i+2] = c.B
			out.data[i+3] = c.A
		}
	}
	return out
}

// SavePNG saves the image to a PNG file.
func (p *Image) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.ToImage())
}

// LoadPNG loads a PNG file into a four-component Image.
func LoadPNG(path string) (*Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("spritefont: decoding %s: %w", path, err)
	}
	return FromImage(img), nil
}
