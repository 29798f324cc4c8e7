package spritefont

import (
	"errors"
	"fmt"
)

// Sentinel errors for the spritefont package.
var (
	// ErrNoGlyphs is returned when packing is attempted with no
	// glyphs added.
	ErrNoGlyphs = errors.New("spritefont: no glyphs to pack")

	// ErrPackerReused is returned when a packer's pack method is
	// called a second time.
	ErrPackerReused = errors.New("spritefont: packer is single-use")

	// ErrMissingPages is returned when a descriptor carries no pages
	// element.
	ErrMissingPages = errors.New("spritefont: descriptor has no pages element")

	// ErrPageData is returned on save when a page texture has no
	// decodable image data.
	ErrPageData = errors.New("spritefont: page texture has no image data")
)

// ConfigError reports an invalid generation config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "spritefont: invalid config." + e.Field + ": " + e.Reason
}

// GlyphSizeError reports a glyph whose padded bitmap cannot fit a
// single page, which would make packing loop forever.
type GlyphSizeError struct {
	CodePoint rune
	Width     int
	Height    int
	PageSize  int
}

func (e *GlyphSizeError) Error() string {
	return fmt.Sprintf("spritefont: glyph %U (%dx%d px padded) exceeds page size %d",
		e.CodePoint, e.Width, e.Height, e.PageSize)
}
