package spritefont

import "image/color"

// Config selects a generation style and carries its parameters.
// The three implementations are [SimpleConfig], [ContourConfig] and
// [OutlinedConfig]. Configs are read-only during generation; mutating
// one after passing it to [Generate] has no effect on the running
// call.
type Config interface {
	// Validate checks the configuration and returns an error
	// describing the first invalid field, if any.
	Validate() error

	base() BaseConfig
}

// BaseConfig holds the parameters shared by every generation style.
type BaseConfig struct {
	// Source is the path of the TrueType/OpenType font file.
	Source string

	// Height is the nominal glyph height in pixels.
	// Default: 16
	Height int

	// AntiAlias selects 8-bit anti-aliased glyph rendering. When
	// false, glyphs render as hard 1-bit coverage.
	// Default: true
	AntiAlias bool

	// PageSize is the width and height of each texture page in
	// pixels. Every glyph, padded, must fit one page.
	// Default: 512
	PageSize int
}

func defaultBase(source string) BaseConfig {
	return BaseConfig{
		Source:    source,
		Height:    16,
		AntiAlias: true,
		PageSize:  512,
	}
}

func (c BaseConfig) base() BaseConfig { return c }

func (c BaseConfig) validateBase() error {
	if c.Source == "" {
		return &ConfigError{Field: "Source", Reason: "must not be empty"}
	}
	if c.Height < 1 {
		return &ConfigError{Field: "Height", Reason: "must be positive"}
	}
	if c.Height > 1024 {
		return &ConfigError{Field: "Height", Reason: "must be at most 1024"}
	}
	if c.PageSize < 64 {
		return &ConfigError{Field: "PageSize", Reason: "must be at least 64"}
	}
	if c.PageSize > 4096 {
		return &ConfigError{Field: "PageSize", Reason: "must be at most 4096"}
	}
	return nil
}

// SimpleConfig generates plain glyphs with an optional soft blur,
// suitable for drop shadows.
type SimpleConfig struct {
	BaseConfig

	// BlurRadius softens glyphs with a triangular blur of the given
	// radius; 0 disables blurring.
	BlurRadius int

	// Color is the fill color applied to the finished pages.
	Color color.RGBA
}

// DefaultSimpleConfig returns a simple-style config with default
// parameters for the given font file.
func DefaultSimpleConfig(source string) SimpleConfig {
	return SimpleConfig{
		BaseConfig: defaultBase(source),
		Color:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate checks the configuration and returns an error describing
// the first invalid field, if any.
func (c SimpleConfig) Validate() error {
	if err := c.validateBase(); err != nil {
		return err
	}
	if c.BlurRadius < 0 {
		return &ConfigError{Field: "BlurRadius", Reason: "must not be negative"}
	}
	return nil
}

// ContourConfig generates only the stroked outline of each glyph.
type ContourConfig struct {
	BaseConfig

	// Thickness is the stroke width of the contour in pixels.
	// Default: 1
	Thickness int

	// BlurRadius softens the contour; 0 disables blurring.
	BlurRadius int

	// Color is the fill color applied to the finished pages.
	Color color.RGBA
}

// DefaultContourConfig returns a contour-style config with default
// parameters for the given font file.
func DefaultContourConfig(source string) ContourConfig {
	return ContourConfig{
		BaseConfig: defaultBase(source),
		Thickness:  1,
		Color:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate checks the configuration and returns an error describing
// the first invalid field, if any.
func (c ContourConfig) Validate() error {
	if err := c.validateBase(); err != nil {
		return err
	}
	if c.Thickness < 1 {
		return &ConfigError{Field: "Thickness", Reason: "must be positive"}
	}
	if c.BlurRadius < 0 {
		return &ConfigError{Field: "BlurRadius", Reason: "must not be negative"}
	}
	return nil
}

// OutlinedConfig composites each glyph over an inflated, differently
// colored copy of itself.
type OutlinedConfig struct {
	BaseConfig

	// MainColor fills the glyph itself.
	MainColor color.RGBA

	// OutlineColor fills the outline behind the glyph.
	OutlineColor color.RGBA

	// OutlineThickness is how far the outline extends beyond the
	// glyph on every side, in pixels.
	// Default: 1
	OutlineThickness int

	// OutlineBlurRadius softens the outline before compositing; 0
	// disables blurring.
	OutlineBlurRadius int
}

// DefaultOutlinedConfig returns an outlined-style config with default
// parameters for the given font file.
func DefaultOutlinedConfig(source string) OutlinedConfig {
	return OutlinedConfig{
		BaseConfig:       defaultBase(source),
		MainColor:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		OutlineColor:     color.RGBA{A: 255},
		OutlineThickness: 1,
	}
}

// Validate checks the configuration and returns an error describing
// the first invalid field, if any.
func (c OutlinedConfig) Validate() error {
	if err := c.validateBase(); err != nil {
		return err
	}
	if c.OutlineThickness < 1 {
		return &ConfigError{Field: "OutlineThickness", Reason: "must be positive"}
	}
	if c.OutlineBlurRadius < 0 {
		return &ConfigError{Field: "OutlineBlurRadius", Reason: "must not be negative"}
	}
	return nil
}
