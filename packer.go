package spritefont

import (
	"errors"
	"image"
	"sort"
)

// glyphPadding is the reserved border around each packed glyph. It
// keeps bilinear texture filtering from bleeding between neighboring
// glyphs on the same page.
const glyphPadding = 2

var errPackStalled = errors.New("spritefont: packing made no progress")

// packer collects rendered glyphs and packs them into page-sized
// images. A packer is single-use: pack may only be called once.
type packer struct {
	glyphs []*renderedGlyph
	packed bool
}

func (p *packer) add(g *renderedGlyph) {
	p.glyphs = append(p.glyphs, g)
}

// pack places every added glyph into as many pageSize×pageSize pages
// as needed, writes the final page index and rectangle back into each
// glyph and returns the page images. Every glyph's padded bounds must
// fit a single page; this is checked up front so packing cannot loop
// forever.
func (p *packer) pack(pageSize int) ([]*Image, error) {
	if p.packed {
		return nil, ErrPackerReused
	}
	p.packed = true
	if len(p.glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	for _, g := range p.glyphs {
		w := g.image.Width() + 2*glyphPadding
		h := g.image.Height() + 2*glyphPadding
		if w > pageSize || h > pageSize {
			return nil, &GlyphSizeError{
				CodePoint: g.code,
				Width:     w,
				Height:    h,
				PageSize:  pageSize,
			}
		}
	}

	remaining := make([]*renderedGlyph, len(p.glyphs))
	copy(remaining, p.glyphs)
	// Tallest first keeps shelves dense; ties break on code point so
	// page layout is deterministic.
	sort.SliceStable(remaining, func(i, j int) bool {
		hi := remaining[i].image.Height()
		hj := remaining[j].image.Height()
		if hi != hj {
			return hi > hj
		}
		return remaining[i].code < remaining[j].code
	})

	comps := remaining[0].image.Components()
	alloc := newShelfAllocator(pageSize, pageSize)
	var pages []*Image
	for len(remaining) > 0 {
		page := NewImage(pageSize, pageSize, comps)
		alloc.reset()
		var left []*renderedGlyph
		placed := 0
		for _, g := range remaining {
			w := g.image.Width() + 2*glyphPadding
			h := g.image.Height() + 2*glyphPadding
			x, y, ok := alloc.allocate(w, h)
			if !ok {
				left = append(left, g)
				continue
			}
			page.Paste(g.image, x+glyphPadding, y+glyphPadding)
			g.page = len(pages)
			g.rect = image.Rect(
				x+glyphPadding,
				y+glyphPadding,
				x+glyphPadding+g.image.Width(),
				y+glyphPadding+g.image.Height())
			placed++
		}
		if placed == 0 {
			return nil, errPackStalled
		}
		Logger().Debug("packed atlas page",
			"page", len(pages),
			"glyphs", placed,
			"shelves", alloc.shelfCount(),
			"utilization", alloc.utilization())
		pages = append(pages, page)
		remaining = left
	}
	return pages, nil
}
