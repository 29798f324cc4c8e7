// Command fontgen generates a bitmap font atlas from a vector font
// and saves it as a .fnt descriptor plus PNG pages.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/spritefont"
)

func main() {
	var (
		font      = flag.String("font", "", "path to the TrueType/OpenType font file")
		out       = flag.String("out", "font.fnt", "output descriptor path (.fnt)")
		style     = flag.String("style", "simple", "generation style: simple, contour or outlined")
		height    = flag.Int("height", 16, "glyph height in pixels")
		pageSize  = flag.Int("page", 512, "texture page size in pixels")
		noAA      = flag.Bool("no-aa", false, "disable anti-aliasing (1-bit glyphs)")
		blur      = flag.Int("blur", 0, "blur radius (simple and contour styles)")
		thickness = flag.Int("thickness", 1, "stroke/outline thickness in pixels")
		fill      = flag.String("color", "#ffffff", "fill color (simple and contour styles)")
		mainCol   = flag.String("main", "#ffffff", "glyph color (outlined style)")
		outline   = flag.String("outline", "#000000", "outline color (outlined style)")
		outBlur   = flag.Int("outline-blur", 0, "outline blur radius (outlined style)")
		list      = flag.Bool("list", false, "list covered code points with their names")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *font == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		spritefont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := buildConfig(*style, *font, *height, *pageSize, !*noAA,
		*blur, *thickness, *fill, *mainCol, *outline, *outBlur)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	cache := spritefont.NewTextureCache()
	start := time.Now()
	atlas, err := spritefont.Generate(cfg, cache)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	log.Printf("Generated %q: %d glyphs on %d page(s) in %v",
		atlas.FaceName, len(atlas.Glyphs), len(atlas.Pages), time.Since(start).Round(time.Millisecond))

	if *list {
		listGlyphs(atlas)
	}

	if err := atlas.Save(*out); err != nil {
		log.Fatalf("Save failed: %v", err)
	}
	log.Printf("Saved atlas to %s", *out)
}

func buildConfig(style, font string, height, pageSize int, antiAlias bool,
	blur, thickness int, fill, mainCol, outline string, outBlur int) (spritefont.Config, error) {
	base := spritefont.BaseConfig{
		Source:    font,
		Height:    height,
		AntiAlias: antiAlias,
		PageSize:  pageSize,
	}
	switch style {
	case "simple":
		c, err := parseColor(fill)
		if err != nil {
			return nil, err
		}
		return spritefont.SimpleConfig{BaseConfig: base, BlurRadius: blur, Color: c}, nil
	case "contour":
		c, err := parseColor(fill)
		if err != nil {
			return nil, err
		}
		return spritefont.ContourConfig{BaseConfig: base, Thickness: thickness, BlurRadius: blur, Color: c}, nil
	case "outlined":
		mc, err := parseColor(mainCol)
		if err != nil {
			return nil, err
		}
		oc, err := parseColor(outline)
		if err != nil {
			return nil, err
		}
		return spritefont.OutlinedConfig{
			BaseConfig:        base,
			MainColor:         mc,
			OutlineColor:      oc,
			OutlineThickness:  thickness,
			OutlineBlurRadius: outBlur,
		}, nil
	default:
		return nil, fmt.Errorf("unknown style %q", style)
	}
}

// parseColor accepts #rgb, #rrggbb and #rrggbbaa.
func parseColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	var err error
	switch len(s) {
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("bad length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

func listGlyphs(atlas *spritefont.Atlas) {
	codes := make([]rune, 0, len(atlas.Glyphs))
	for r := range atlas.Glyphs {
		codes = append(codes, r)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, r := range codes {
		g := atlas.Glyphs[r]
		fmt.Printf("%U  %-40s page %d rect %v advance %d\n",
			r, runenames.Name(r), g.Page, g.Rect, g.AdvanceX)
	}
}
