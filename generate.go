package spritefont

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/gogpu/spritefont/face"
)

// Generate builds a font atlas in the config's style and registers
// every finished page with reg. A failed glyph is logged and skipped;
// failures to open, size or enumerate the font abort the whole call
// with a nil atlas.
func Generate(cfg Config, reg TextureRegistry) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	base := cfg.base()

	data, err := os.ReadFile(base.Source)
	if err != nil {
		return nil, fmt.Errorf("spritefont: reading font file: %w", err)
	}
	f, err := face.Open(data)
	if err != nil {
		return nil, fmt.Errorf("spritefont: opening %s: %w", base.Source, err)
	}
	defer f.Close()
	if err := f.SetPixelHeight(base.Height); err != nil {
		return nil, fmt.Errorf("spritefont: sizing %s: %w", base.Source, err)
	}

	mode := face.RenderModeNormal
	if !base.AntiAlias {
		mode = face.RenderModeMono
	}

	var render func(r rune) (*renderedGlyph, error)
	fill := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	lineHeight := face.RoundToPixels(f.LineHeight())
	switch c := cfg.(type) {
	case SimpleConfig:
		fill = c.Color
		render = func(r rune) (*renderedGlyph, error) {
			return renderSimple(f, r, mode, c.BlurRadius)
		}
	case ContourConfig:
		fill = c.Color
		// Stroked boxes grow by the thickness on every side.
		lineHeight += 2 * c.Thickness
		render = func(r rune) (*renderedGlyph, error) {
			return renderContour(f, r, mode, c.Thickness, c.BlurRadius)
		}
	case OutlinedConfig:
		lineHeight += 2 * c.OutlineThickness
		render = func(r rune) (*renderedGlyph, error) {
			return renderOutlined(f, r, mode, c)
		}
	default:
		return nil, fmt.Errorf("spritefont: unsupported config type %T", cfg)
	}

	var pk packer
	for r, ok := f.FirstChar(); ok; r, ok = f.NextChar(r) {
		g, err := render(r)
		if err != nil {
			// Skipping must not stall the enumeration; NextChar above
			// advances regardless.
			Logger().Warn("skipping glyph", "code", r, "error", err)
			continue
		}
		pk.add(g)
	}

	pages, err := pk.pack(base.PageSize)
	if err != nil {
		return nil, err
	}

	atlas := &Atlas{
		FaceName:   f.Name(),
		Size:       base.Height,
		LineHeight: lineHeight,
		Glyphs:     make(map[rune]Glyph, len(pk.glyphs)),
	}
	for i, page := range pages {
		if page.Components() == 1 {
			page = page.Colorized(fill)
		}
		name := fmt.Sprintf("%s_%d_%d", atlas.FaceName, base.Height, i)
		atlas.Pages = append(atlas.Pages, reg.Add(name, page))
	}
	for _, g := range pk.glyphs {
		atlas.Glyphs[g.code] = Glyph{
			Rect:     g.rect,
			Offset:   g.offset,
			AdvanceX: g.advance,
			Page:     g.page,
		}
	}
	Logger().Debug("generated font atlas",
		"face", atlas.FaceName,
		"glyphs", len(atlas.Glyphs),
		"pages", len(atlas.Pages),
		"duration", time.Since(start))
	return atlas, nil
}

// GenerateSimple builds a plain-style atlas.
func GenerateSimple(cfg SimpleConfig, reg TextureRegistry) (*Atlas, error) {
	return Generate(cfg, reg)
}

// GenerateContour builds a stroked-contour atlas.
func GenerateContour(cfg ContourConfig, reg TextureRegistry) (*Atlas, error) {
	return Generate(cfg, reg)
}

// GenerateOutlined builds a two-color outlined atlas.
func GenerateOutlined(cfg OutlinedConfig, reg TextureRegistry) (*Atlas, error) {
	return Generate(cfg, reg)
}

func renderSimple(f *face.Face, r rune, mode face.RenderMode, blurRadius int) (*renderedGlyph, error) {
	g, err := f.Rasterize(r, mode)
	if err != nil {
		return nil, err
	}
	rg := &renderedGlyph{
		code:    r,
		image:   imageFromBitmap(g.Bitmap),
		offset:  glyphOffset(f, g),
		advance: face.RoundToPixels(g.Advance),
		page:    -1,
	}
	blurGlyph(rg, blurRadius)
	return rg, nil
}

func renderContour(f *face.Face, r rune, mode face.RenderMode, thickness, blurRadius int) (*renderedGlyph, error) {
	g, err := f.RasterizeStroke(r, float64(thickness), mode)
	if err != nil {
		return nil, err
	}
	rg := &renderedGlyph{
		code:    r,
		image:   imageFromBitmap(g.Bitmap),
		offset:  glyphOffset(f, g),
		advance: face.RoundToPixels(g.Advance) + thickness,
		page:    -1,
	}
	blurGlyph(rg, blurRadius)
	return rg, nil
}

func renderOutlined(f *face.Face, r rune, mode face.RenderMode, cfg OutlinedConfig) (*renderedGlyph, error) {
	inner, err := f.Rasterize(r, mode)
	if err != nil {
		return nil, err
	}
	outer, err := f.RasterizeBorder(r, float64(cfg.OutlineThickness), mode)
	if err != nil {
		return nil, err
	}

	// Measure the actual bearing difference between the two renders;
	// inflation is not always symmetric.
	deltaX := inner.Left - outer.Left
	deltaY := outer.Top - inner.Top

	outerImg := imageFromBitmap(outer.Bitmap)
	offset := glyphOffset(f, outer)
	advance := face.RoundToPixels(inner.Advance) + 2*cfg.OutlineThickness

	if cfg.OutlineBlurRadius > 0 {
		br := cfg.OutlineBlurRadius
		padded := NewImage(outerImg.Width()+2*br, outerImg.Height()+2*br, 1)
		padded.Paste(outerImg, br, br)
		padded.Blur(br)
		outerImg = padded
		deltaX += br
		deltaY += br
		offset.X -= br
		offset.Y -= br
	}

	rgba := outerImg.Colorized(cfg.OutlineColor)
	// When both colors match the composite cannot change a pixel.
	if cfg.MainColor != cfg.OutlineColor {
		compositeMask(rgba, imageFromBitmap(inner.Bitmap), cfg.MainColor, deltaX, deltaY)
	}
	return &renderedGlyph{
		code:    r,
		image:   rgba,
		offset:  offset,
		advance: advance,
		page:    -1,
	}, nil
}

// glyphOffset converts a glyph's 26.6 bearings into the pen-to-bitmap
// pixel offset: x right of the pen, y down from the top of the line.
func glyphOffset(f *face.Face, g *face.Glyph) image.Point {
	return image.Pt(
		face.RoundToPixels(g.BearingX),
		face.RoundToPixels(f.Ascent()-g.BearingY))
}

// blurGlyph grows the glyph bitmap by the blur radius on every side,
// blurs it and shifts the offset so the glyph stays visually in
// place. A zero radius leaves the glyph untouched.
func blurGlyph(g *renderedGlyph, radius int) {
	if radius <= 0 {
		return
	}
	padded := NewImage(g.image.Width()+2*radius, g.image.Height()+2*radius, 1)
	padded.Paste(g.image, radius, radius)
	padded.Blur(radius)
	g.image = padded
	g.offset.X -= radius
	g.offset.Y -= radius
}

// compositeMask blends the fill color into dst wherever mask has
// coverage, at (deltaX, deltaY). Each channel, alpha included, is a
// linear interpolation weighted by the mask intensity with the
// division truncating, matching the classic integer blend.
func compositeMask(dst *Image, mask *Image, fill color.RGBA, deltaX, deltaY int) {
	front := [4]int{int(fill.R), int(fill.G), int(fill.B), int(fill.A)}
	for y := 0; y < mask.height; y++ {
		ty := y + deltaY
		if ty < 0 || ty >= dst.height {
			continue
		}
		for x := 0; x < mask.width; x++ {
			tx := x + deltaX
			if tx < 0 || tx >= dst.width {
				continue
			}
			m := int(mask.data[y*mask.width+x])
			i := (ty*dst.width + tx) * 4
			for ch := 0; ch < 4; ch++ {
				back := int(dst.data[i+ch])
				dst.data[i+ch] = uint8((front[ch]*m + back*(255-m)) / 255)
			}
		}
	}
}
