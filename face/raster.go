package face

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	geompath "seehuhn.de/go/geom/path"
	"seehuhn.de/go/sfnt/glyph"
)

// PixelMode identifies the storage format of a Bitmap.
type PixelMode uint8

const (
	// PixelModeGray is one byte per pixel, 0..255 coverage.
	PixelModeGray PixelMode = iota

	// PixelModeMono is one bit per pixel, MSB first within each byte,
	// rows padded to whole bytes (see Bitmap.Pitch).
	PixelModeMono
)

// RenderMode selects how glyph coverage is quantized.
type RenderMode uint8

const (
	// RenderModeNormal produces 8-bit anti-aliased bitmaps.
	RenderModeNormal RenderMode = iota

	// RenderModeMono thresholds coverage at 50% and produces 1-bit
	// packed bitmaps.
	RenderModeMono
)

// Bitmap is a rendered glyph image in the rasterizer's native layout.
// Pitch is the number of bytes per row and may exceed the bytes
// covered by Width.
type Bitmap struct {
	Width  int
	Height int
	Pitch  int
	Mode   PixelMode
	Data   []byte
}

// Glyph is one rasterized glyph. Left and Top give the bitmap origin
// relative to the pen position in whole pixels (Top is the distance
// from the baseline up to the first row). BearingX, BearingY and
// Advance are the exact 26.6 metrics of the rendered shape; for
// stroked renders the advance is always that of the plain glyph.
type Glyph struct {
	Bitmap   Bitmap
	Left     int
	Top      int
	BearingX fixed.Int26_6
	BearingY fixed.Int26_6
	Advance  fixed.Int26_6
}

// Rasterize renders the glyph for code point r at the configured
// pixel height. Code points the font does not map render as the
// font's .notdef glyph.
func (f *Face) Rasterize(r rune, mode RenderMode) (*Glyph, error) {
	gid, err := f.lookup(r)
	if err != nil {
		return nil, err
	}
	ops, b := f.outline(gid)
	adv := f.advanceOf(gid)
	if len(ops) == 0 || b.empty() {
		return &Glyph{Advance: adv}, nil
	}
	fr := frameOf(b)
	mask := renderOps(ops, fr)
	return &Glyph{
		Bitmap:   bitmapFromMask(mask, mode),
		Left:     fr.x0,
		Top:      -fr.y0,
		BearingX: floatToFixed(b.minX),
		BearingY: floatToFixed(-b.minY),
		Advance:  adv,
	}, nil
}

// RasterizeStroke renders only the stroked contour of the glyph: a
// ring of the given total width centered on the outline.
func (f *Face) RasterizeStroke(r rune, width float64, mode RenderMode) (*Glyph, error) {
	gid, err := f.lookup(r)
	if err != nil {
		return nil, err
	}
	ops, b := f.outline(gid)
	adv := f.advanceOf(gid)
	if len(ops) == 0 || b.empty() {
		return &Glyph{Advance: adv}, nil
	}
	hw := width / 2
	sb := b.expand(hw)
	fr := frameOf(sb)
	mask := renderOps(strokeOps(flattenOps(ops), hw), fr)
	return &Glyph{
		Bitmap:   bitmapFromMask(mask, mode),
		Left:     fr.x0,
		Top:      -fr.y0,
		BearingX: floatToFixed(sb.minX),
		BearingY: floatToFixed(-sb.minY),
		Advance:  adv,
	}, nil
}

// RasterizeBorder renders the glyph inflated by radius on every side:
// the union of the plain fill and a centered stroke of width 2·radius.
func (f *Face) RasterizeBorder(r rune, radius float64, mode RenderMode) (*Glyph, error) {
	gid, err := f.lookup(r)
	if err != nil {
		return nil, err
	}
	ops, b := f.outline(gid)
	adv := f.advanceOf(gid)
	if len(ops) == 0 || b.empty() {
		return &Glyph{Advance: adv}, nil
	}
	bb := b.expand(radius)
	fr := frameOf(bb)
	mask := renderOps(ops, fr)
	if radius > 0 {
		ring := renderOps(strokeOps(flattenOps(ops), radius), fr)
		combineMax(mask, ring)
	}
	return &Glyph{
		Bitmap:   bitmapFromMask(mask, mode),
		Left:     fr.x0,
		Top:      -fr.y0,
		BearingX: floatToFixed(bb.minX),
		BearingY: floatToFixed(-bb.minY),
		Advance:  adv,
	}, nil
}

func (f *Face) lookup(r rune) (glyph.ID, error) {
	if f.font == nil {
		return 0, ErrClosed
	}
	if f.height == 0 {
		return 0, ErrNotSized
	}
	return f.sub.Lookup(r), nil
}

func (f *Face) advanceOf(gid glyph.ID) fixed.Int26_6 {
	// GlyphWidthPDF reports the advance in thousandths of an em.
	w := f.font.GlyphWidthPDF(gid)
	return floatToFixed(w / 1000 * float64(f.height))
}

// penOp is one path command in pixel space (y grows downward, the
// baseline at y = 0).
type penOp struct {
	cmd byte
	pts [3]point
}

const (
	opMoveTo byte = iota
	opLineTo
	opQuadTo
	opCubeTo
	opClose
)

type point struct {
	x, y float64
}

// bounds is the control-point bounding box of an outline, a
// conservative cover of the rendered shape.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func emptyBounds() bounds {
	inf := math.Inf(1)
	return bounds{inf, inf, -inf, -inf}
}

func (b *bounds) add(p point) {
	b.minX = math.Min(b.minX, p.x)
	b.minY = math.Min(b.minY, p.y)
	b.maxX = math.Max(b.maxX, p.x)
	b.maxY = math.Max(b.maxY, p.y)
}

func (b bounds) empty() bool {
	return b.minX > b.maxX || b.minY > b.maxY
}

func (b bounds) expand(m float64) bounds {
	return bounds{b.minX - m, b.minY - m, b.maxX + m, b.maxY + m}
}

// frame is the integer pixel rectangle a glyph is rendered into.
type frame struct {
	x0, y0 int
	w, h   int
}

func frameOf(b bounds) frame {
	x0 := int(math.Floor(b.minX))
	y0 := int(math.Floor(b.minY))
	w := int(math.Ceil(b.maxX)) - x0
	h := int(math.Ceil(b.maxY)) - y0
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return frame{x0: x0, y0: y0, w: w, h: h}
}

// outline collects the glyph's path commands scaled to pixel space
// and the control-point bounds over all on- and off-curve points.
func (f *Face) outline(gid glyph.ID) ([]penOp, bounds) {
	var ops []penOp
	b := emptyBounds()
	for cmd, pts := range f.font.Outlines.Path(gid) {
		var op penOp
		switch cmd {
		case geompath.CmdMoveTo:
			op.cmd = opMoveTo
			op.pts[0] = f.toPixel(pts[0].X, pts[0].Y)
			b.add(op.pts[0])
		case geompath.CmdLineTo:
			op.cmd = opLineTo
			op.pts[0] = f.toPixel(pts[0].X, pts[0].Y)
			b.add(op.pts[0])
		case geompath.CmdQuadTo:
			op.cmd = opQuadTo
			op.pts[0] = f.toPixel(pts[0].X, pts[0].Y)
			op.pts[1] = f.toPixel(pts[1].X, pts[1].Y)
			b.add(op.pts[0])
			b.add(op.pts[1])
		case geompath.CmdCubeTo:
			op.cmd = opCubeTo
			op.pts[0] = f.toPixel(pts[0].X, pts[0].Y)
			op.pts[1] = f.toPixel(pts[1].X, pts[1].Y)
			op.pts[2] = f.toPixel(pts[2].X, pts[2].Y)
			b.add(op.pts[0])
			b.add(op.pts[1])
			b.add(op.pts[2])
		case geompath.CmdClose:
			op.cmd = opClose
		default:
			continue
		}
		ops = append(ops, op)
	}
	return ops, b
}

// toPixel maps font units (y up) to pixels (y down).
func (f *Face) toPixel(x, y float64) point {
	return point{x * f.scale, -y * f.scale}
}

// renderOps rasterizes path commands into an 8-bit coverage mask the
// size of the frame, translating by the frame origin.
func renderOps(ops []penOp, fr frame) *image.Alpha {
	ras := vector.NewRasterizer(fr.w, fr.h)
	ras.DrawOp = draw.Src
	x0 := float64(fr.x0)
	y0 := float64(fr.y0)
	for _, op := range ops {
		switch op.cmd {
		case opMoveTo:
			ras.MoveTo(float32(op.pts[0].x-x0), float32(op.pts[0].y-y0))
		case opLineTo:
			ras.LineTo(float32(op.pts[0].x-x0), float32(op.pts[0].y-y0))
		case opQuadTo:
			ras.QuadTo(
				float32(op.pts[0].x-x0), float32(op.pts[0].y-y0),
				float32(op.pts[1].x-x0), float32(op.pts[1].y-y0))
		case opCubeTo:
			ras.CubeTo(
				float32(op.pts[0].x-x0), float32(op.pts[0].y-y0),
				float32(op.pts[1].x-x0), float32(op.pts[1].y-y0),
				float32(op.pts[2].x-x0), float32(op.pts[2].y-y0))
		case opClose:
			ras.ClosePath()
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, fr.w, fr.h))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// combineMax merges src into dst, keeping the higher coverage per
// pixel. Both masks must have identical bounds.
func combineMax(dst, src *image.Alpha) {
	for i, v := range src.Pix {
		if v > dst.Pix[i] {
			dst.Pix[i] = v
		}
	}
}

// bitmapFromMask converts a coverage mask into a Bitmap, thresholding
// at 50% for mono renders.
func bitmapFromMask(mask *image.Alpha, mode RenderMode) Bitmap {
	w := mask.Rect.Dx()
	h := mask.Rect.Dy()
	if mode == RenderModeMono {
		pitch := (w + 7) / 8
		data := make([]byte, pitch*h)
		for y := 0; y < h; y++ {
			row := mask.Pix[y*mask.Stride:]
			out := data[y*pitch:]
			for x := 0; x < w; x++ {
				if row[x] >= 128 {
					out[x>>3] |= 0x80 >> (x & 7)
				}
			}
		}
		return Bitmap{Width: w, Height: h, Pitch: pitch, Mode: PixelModeMono, Data: data}
	}
	data := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(data[y*w:(y+1)*w], mask.Pix[y*mask.Stride:y*mask.Stride+w])
	}
	return Bitmap{Width: w, Height: h, Pitch: w, Mode: PixelModeGray, Data: data}
}
