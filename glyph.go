package spritefont

import "image"

// Glyph describes one packed glyph in a font atlas.
type Glyph struct {
	// Rect is the glyph's sub-rectangle within its page texture.
	Rect image.Rectangle

	// Offset is the bearing from the pen position to the top-left
	// corner of the glyph bitmap, in pixels. Positive y is downward.
	Offset image.Point

	// AdvanceX is the horizontal pen advance in pixels.
	AdvanceX int

	// Page is the index of the atlas page holding Rect.
	Page int
}

// renderedGlyph is one rasterized, post-processed glyph on its way
// into the packer. page and rect stay unset until packing.
type renderedGlyph struct {
	code    rune
	image   *Image
	offset  image.Point
	advance int
	page    int
	rect    image.Rectangle
}
