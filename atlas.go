package spritefont

// Atlas is a generated or loaded bitmap font: fixed-size texture
// pages plus per-code-point placement metrics. An atlas is immutable
// once produced, except through explicit Save.
type Atlas struct {
	// FaceName is the font's family name.
	FaceName string

	// Size is the nominal glyph height in pixels the atlas was
	// generated at.
	Size int

	// LineHeight is the baseline-to-baseline distance in pixels.
	LineHeight int

	// Pages are the texture pages, shared with the registry that
	// produced or loaded them.
	Pages []*Texture

	// Glyphs maps each covered code point to its packed glyph.
	Glyphs map[rune]Glyph
}
