// Package spritefont generates bitmap font atlases from vector fonts.
//
// # Overview
//
// A generation call rasterizes every glyph a font defines at a fixed
// pixel height, optionally post-processes the bitmaps (soft blur,
// stroked contour, two-color outline), packs them into one or more
// fixed-size texture pages and returns an [Atlas]: the pages plus a
// code-point to [Glyph] metrics map. Atlases persist as a BMFont-style
// XML descriptor with PNG pages.
//
// # Quick Start
//
//	import "github.com/gogpu/spritefont"
//
//	cache := spritefont.NewTextureCache()
//	cfg := spritefont.DefaultSimpleConfig("fonts/Anonymous Pro.ttf")
//	cfg.Height = 24
//
//	atlas, err := spritefont.Generate(cfg, cache)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := atlas.Save("fonts/anonymous_pro_24.fnt"); err != nil {
//		log.Fatal(err)
//	}
//
// Three generation styles are supported, selected by the config type
// passed to [Generate]: [SimpleConfig] renders plain glyphs with an
// optional drop-shadow blur, [ContourConfig] renders only the stroked
// outline of each glyph, and [OutlinedConfig] composites a colored
// glyph over a differently colored outline.
//
// The package produces no log output by default; pass a [log/slog]
// logger to [SetLogger] to see generation diagnostics.
package spritefont
