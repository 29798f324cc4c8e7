package spritefont

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/spritefont/face"
)

func writeTestFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("writing test font: %v", err)
	}
	return path
}

func checkAtlas(t *testing.T, atlas *Atlas, pageSize int) {
	t.Helper()
	if atlas.FaceName == "" {
		t.Error("FaceName is empty")
	}
	if atlas.LineHeight <= 0 {
		t.Errorf("LineHeight = %d, want > 0", atlas.LineHeight)
	}
	if len(atlas.Pages) == 0 {
		t.Fatal("no pages")
	}
	bounds := image.Rect(0, 0, pageSize, pageSize)
	for r, g := range atlas.Glyphs {
		if g.Page < 0 || g.Page >= len(atlas.Pages) {
			t.Fatalf("glyph %U page = %d with %d pages", r, g.Page, len(atlas.Pages))
		}
		if !g.Rect.In(bounds) {
			t.Fatalf("glyph %U rect %v outside page bounds", r, g.Rect)
		}
	}
	for i, p := range atlas.Pages {
		if p.Image == nil {
			t.Fatalf("page %d has no image", i)
		}
		if p.Image.Width() != pageSize || p.Image.Height() != pageSize {
			t.Fatalf("page %d is %dx%d, want %dx%d",
				i, p.Image.Width(), p.Image.Height(), pageSize, pageSize)
		}
		if p.Image.Components() != 4 {
			t.Fatalf("page %d has %d components, want 4", i, p.Image.Components())
		}
	}
}

func TestGenerateSimple(t *testing.T) {
	cfg := DefaultSimpleConfig(writeTestFont(t))
	cfg.Height = 20
	cfg.PageSize = 256

	cache := NewTextureCache()
	atlas, err := GenerateSimple(cfg, cache)
	if err != nil {
		t.Fatalf("GenerateSimple: %v", err)
	}
	checkAtlas(t, atlas, 256)

	if atlas.Size != 20 {
		t.Errorf("Size = %d, want 20", atlas.Size)
	}
	if atlas.LineHeight < 20 {
		t.Errorf("LineHeight = %d, want >= nominal height", atlas.LineHeight)
	}
	for _, want := range []rune{'A', 'z', ' ', '0'} {
		if _, ok := atlas.Glyphs[want]; !ok {
			t.Errorf("atlas missing glyph %q", want)
		}
	}
	a := atlas.Glyphs['A']
	if a.AdvanceX <= 0 {
		t.Errorf("advance of 'A' = %d, want > 0", a.AdvanceX)
	}
	if a.Rect.Dx() <= 0 || a.Rect.Dy() <= 0 {
		t.Errorf("rect of 'A' = %v, want non-empty", a.Rect)
	}
	if sp := atlas.Glyphs[' ']; sp.AdvanceX <= 0 {
		t.Errorf("advance of space = %d, want > 0", sp.AdvanceX)
	}

	// Pages are registered with the cache under their own names.
	for _, p := range atlas.Pages {
		got, ok := cache.Get(p.Name)
		if !ok || got != p {
			t.Errorf("page %q not registered with the cache", p.Name)
		}
	}
}

func TestGenerateMono(t *testing.T) {
	cfg := DefaultSimpleConfig(writeTestFont(t))
	cfg.Height = 20
	cfg.PageSize = 256
	cfg.AntiAlias = false

	atlas, err := Generate(cfg, NewTextureCache())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	checkAtlas(t, atlas, 256)

	// Hard 1-bit rendering yields only fully opaque or fully
	// transparent page pixels.
	for _, p := range atlas.Pages {
		for i := 3; i < len(p.Image.Data()); i += 4 {
			if a := p.Image.Data()[i]; a != 0 && a != 255 {
				t.Fatalf("mono page has intermediate alpha %d", a)
			}
		}
	}
}

func TestGenerateContour(t *testing.T) {
	src := writeTestFont(t)

	plainCfg := DefaultSimpleConfig(src)
	plainCfg.Height = 20
	plainCfg.PageSize = 256
	plain, err := Generate(plainCfg, NewTextureCache())
	if err != nil {
		t.Fatalf("Generate simple: %v", err)
	}

	cfg := DefaultContourConfig(src)
	cfg.Height = 20
	cfg.PageSize = 256
	cfg.Thickness = 2
	atlas, err := GenerateContour(cfg, NewTextureCache())
	if err != nil {
		t.Fatalf("GenerateContour: %v", err)
	}
	checkAtlas(t, atlas, 256)

	if got, want := atlas.LineHeight, plain.LineHeight+2*cfg.Thickness; got != want {
		t.Errorf("LineHeight = %d, want %d", got, want)
	}
	if got, want := atlas.Glyphs['A'].AdvanceX, plain.Glyphs['A'].AdvanceX+cfg.Thickness; got != want {
		t.Errorf("advance of 'A' = %d, want %d", got, want)
	}
}

func TestGenerateOutlined(t *testing.T) {
	src := writeTestFont(t)

	plainCfg := DefaultSimpleConfig(src)
	plainCfg.Height = 20
	plainCfg.PageSize = 256
	plain, err := Generate(plainCfg, NewTextureCache())
	if err != nil {
		t.Fatalf("Generate simple: %v", err)
	}

	cfg := DefaultOutlinedConfig(src)
	cfg.Height = 20
	cfg.PageSize = 256
	atlas, err := GenerateOutlined(cfg, NewTextureCache())
	if err != nil {
		t.Fatalf("GenerateOutlined: %v", err)
	}
	checkAtlas(t, atlas, 256)

	if got, want := atlas.LineHeight, plain.LineHeight+2*cfg.OutlineThickness; got != want {
		t.Errorf("LineHeight = %d, want %d", got, want)
	}
	ga, pa := atlas.Glyphs['A'], plain.Glyphs['A']
	if got, want := ga.AdvanceX, pa.AdvanceX+2*cfg.OutlineThickness; got != want {
		t.Errorf("advance of 'A' = %d, want %d", got, want)
	}
	// Inflating by the outline thickness grows the bitmap by one
	// pixel per side.
	if got, want := ga.Rect.Dx(), pa.Rect.Dx()+2; got != want {
		t.Errorf("width of 'A' = %d, want %d", got, want)
	}
	if got, want := ga.Rect.Dy(), pa.Rect.Dy()+2; got != want {
		t.Errorf("height of 'A' = %d, want %d", got, want)
	}
}

func TestGenerateBlurGrowsGlyphs(t *testing.T) {
	src := writeTestFont(t)

	sharpCfg := DefaultSimpleConfig(src)
	sharpCfg.Height = 20
	sharpCfg.PageSize = 256
	sharp, err := Generate(sharpCfg, NewTextureCache())
	if err != nil {
		t.Fatalf("Generate sharp: %v", err)
	}

	softCfg := sharpCfg
	softCfg.BlurRadius = 2
	soft, err := Generate(softCfg, NewTextureCache())
	if err != nil {
		t.Fatalf("Generate soft: %v", err)
	}

	sg, bg := sharp.Glyphs['A'], soft.Glyphs['A']
	if got, want := bg.Rect.Dx(), sg.Rect.Dx()+4; got != want {
		t.Errorf("blurred width = %d, want %d", got, want)
	}
	if got, want := bg.Rect.Dy(), sg.Rect.Dy()+4; got != want {
		t.Errorf("blurred height = %d, want %d", got, want)
	}
	if got, want := bg.Offset.X, sg.Offset.X-2; got != want {
		t.Errorf("blurred offset.X = %d, want %d", got, want)
	}
	if got, want := bg.Offset.Y, sg.Offset.Y-2; got != want {
		t.Errorf("blurred offset.Y = %d, want %d", got, want)
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultSimpleConfig("")
		var cfgErr *ConfigError
		if _, err := Generate(cfg, NewTextureCache()); !errors.As(err, &cfgErr) {
			t.Errorf("err = %v, want ConfigError", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultSimpleConfig(filepath.Join(t.TempDir(), "nope.ttf"))
		if _, err := Generate(cfg, NewTextureCache()); err == nil {
			t.Error("Generate succeeded with a missing font file")
		}
	})

	t.Run("corrupt font", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.ttf")
		if err := os.WriteFile(path, []byte("definitely not a font"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Generate(DefaultSimpleConfig(path), NewTextureCache()); err == nil {
			t.Error("Generate succeeded with a corrupt font file")
		}
	})
}

func TestBlurGlyph(t *testing.T) {
	fresh := func() *renderedGlyph {
		g := testGlyph('x', 3, 3)
		g.image.data[4] = 255
		g.offset = image.Pt(5, 7)
		return g
	}

	g := fresh()
	blurGlyph(g, 0)
	if g.image.Width() != 3 || g.image.Height() != 3 || g.offset != image.Pt(5, 7) {
		t.Error("blurGlyph(0) modified the glyph")
	}

	g = fresh()
	blurGlyph(g, 2)
	if g.image.Width() != 7 || g.image.Height() != 7 {
		t.Errorf("blurred size %dx%d, want 7x7", g.image.Width(), g.image.Height())
	}
	if g.offset != image.Pt(3, 5) {
		t.Errorf("blurred offset %v, want (3,5)", g.offset)
	}
}

func TestOutlinedSameColorKeepsOutline(t *testing.T) {
	f, err := face.Open(goregular.TTF)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	if err := f.SetPixelHeight(24); err != nil {
		t.Fatalf("SetPixelHeight: %v", err)
	}

	cfg := DefaultOutlinedConfig("unused")
	cfg.MainColor = cfg.OutlineColor

	got, err := renderOutlined(f, 'A', face.RenderModeNormal, cfg)
	if err != nil {
		t.Fatalf("renderOutlined: %v", err)
	}

	// With identical colors the composite must be skipped: the result
	// is exactly the colorized outer bitmap.
	outer, err := f.RasterizeBorder('A', float64(cfg.OutlineThickness), face.RenderModeNormal)
	if err != nil {
		t.Fatalf("RasterizeBorder: %v", err)
	}
	want := imageFromBitmap(outer.Bitmap).Colorized(cfg.OutlineColor)
	if !bytes.Equal(got.image.Data(), want.Data()) {
		t.Error("same-color outlined glyph differs from the colorized outline")
	}
}
