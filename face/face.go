// Package face adapts a parsed TrueType/OpenType font into the small
// rasterizer surface the atlas generator needs: code-point
// enumeration, pixel-sized metrics and per-glyph alpha bitmaps.
package face

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
)

// Sentinel errors for the face package.
var (
	// ErrNoOutlines is returned when the font carries no glyph outlines.
	ErrNoOutlines = errors.New("face: font has no glyph outlines")

	// ErrNotSized is returned when a glyph is requested before
	// SetPixelHeight has been called.
	ErrNotSized = errors.New("face: pixel height not set")

	// ErrClosed is returned when the face has been closed.
	ErrClosed = errors.New("face: closed")
)

// Face is an exclusively-owned handle to one font. It is not safe for
// concurrent use and must not be copied; release it with Close.
type Face struct {
	font *sfnt.Font
	sub  cmap.Subtable
	data []byte // backing bytes, kept alive for the font's lifetime

	height int     // requested pixel height (ppem)
	scale  float64 // font units to pixels
}

// Open parses font data and selects its best Unicode character map.
// The returned face holds on to data until Close.
func Open(data []byte) (*Face, error) {
	font, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("face: parsing font: %w", err)
	}
	if font.Outlines == nil {
		return nil, ErrNoOutlines
	}
	sub, err := font.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("face: selecting unicode cmap: %w", err)
	}
	return &Face{font: font, sub: sub, data: data}, nil
}

// Close releases the face. Any further use fails with ErrClosed.
func (f *Face) Close() {
	f.font = nil
	f.sub = nil
	f.data = nil
	f.height = 0
	f.scale = 0
}

// SetPixelHeight sets the nominal glyph height in pixels. All metrics
// and bitmaps are scaled so that one em maps to height pixels.
func (f *Face) SetPixelHeight(height int) error {
	if f.font == nil {
		return ErrClosed
	}
	if height <= 0 {
		return fmt.Errorf("face: invalid pixel height %d", height)
	}
	f.height = height
	f.scale = float64(height) / float64(f.font.UnitsPerEm)
	return nil
}

// Name returns the font's family name.
func (f *Face) Name() string {
	if f.font == nil {
		return ""
	}
	return f.font.FamilyName
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Face) NumGlyphs() int {
	if f.font == nil {
		return 0
	}
	return f.font.NumGlyphs()
}

// Ascent returns the scaled ascender in 26.6 fixed point.
func (f *Face) Ascent() fixed.Int26_6 {
	return floatToFixed(float64(f.font.Ascent) * f.scale)
}

// LineHeight returns the scaled baseline-to-baseline distance in 26.6
// fixed point.
func (f *Face) LineHeight() fixed.Int26_6 {
	d := float64(f.font.Ascent-f.font.Descent+f.font.LineGap) * f.scale
	return floatToFixed(d)
}

// FirstChar returns the lowest code point the font maps to a glyph.
// ok is false when the character map is empty.
func (f *Face) FirstChar() (r rune, ok bool) {
	if f.sub == nil {
		return 0, false
	}
	low, _ := f.sub.CodeRange()
	return f.scanFrom(low)
}

// NextChar returns the lowest mapped code point greater than r, so
// that repeated calls starting from FirstChar enumerate every mapped
// code point in ascending order.
func (f *Face) NextChar(r rune) (next rune, ok bool) {
	if f.sub == nil {
		return 0, false
	}
	return f.scanFrom(r + 1)
}

func (f *Face) scanFrom(start rune) (rune, bool) {
	low, high := f.sub.CodeRange()
	if start < low {
		start = low
	}
	for r := start; r <= high; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			r = 0xDFFF
			continue
		}
		if r > unicode.MaxRune {
			break
		}
		if f.sub.Lookup(r) != 0 {
			return r, true
		}
	}
	return 0, false
}
