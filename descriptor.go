package spritefont

import (
	"encoding/xml"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// descriptorExt is the file extension of atlas descriptors.
const descriptorExt = ".fnt"

// The descriptor is a BMFont-compatible XML tree. Pages is a pointer
// so a descriptor without a pages element can be told apart from one
// with an empty list.
type xmlFont struct {
	XMLName xml.Name  `xml:"font"`
	Info    xmlInfo   `xml:"info"`
	Common  xmlCommon `xml:"common"`
	Pages   *xmlPages `xml:"pages"`
	Chars   xmlChars  `xml:"chars"`
}

type xmlInfo struct {
	Face string `xml:"face,attr"`
	Size int    `xml:"size,attr"`
}

type xmlCommon struct {
	LineHeight int `xml:"lineHeight,attr"`
	Pages      int `xml:"pages,attr"`
}

type xmlPages struct {
	Pages []xmlPage `xml:"page"`
}

type xmlPage struct {
	ID   int    `xml:"id,attr"`
	File string `xml:"file,attr"`
}

type xmlChars struct {
	Count int       `xml:"count,attr"`
	Chars []xmlChar `xml:"char"`
}

type xmlChar struct {
	ID       int `xml:"id,attr"`
	X        int `xml:"x,attr"`
	Y        int `xml:"y,attr"`
	Width    int `xml:"width,attr"`
	Height   int `xml:"height,attr"`
	XOffset  int `xml:"xoffset,attr"`
	YOffset  int `xml:"yoffset,attr"`
	AdvanceX int `xml:"advance_x,attr"`
	Page     int `xml:"page,attr"`
}

// Save writes the atlas descriptor to path and each page to
// <basename>_<index>.png next to it. The path must carry the .fnt
// extension (one is appended when missing) and every page must hold
// image data; both are checked before anything is written.
func (a *Atlas) Save(path string) error {
	switch ext := filepath.Ext(path); ext {
	case "":
		path += descriptorExt
	case descriptorExt:
	default:
		return fmt.Errorf("spritefont: descriptor extension must be %s, got %s", descriptorExt, ext)
	}
	for i, t := range a.Pages {
		if t == nil || t.Image == nil {
			return fmt.Errorf("%w: page %d", ErrPageData, i)
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), descriptorExt)
	dir := filepath.Dir(path)

	doc := xmlFont{
		Info:   xmlInfo{Face: a.FaceName, Size: a.Size},
		Common: xmlCommon{LineHeight: a.LineHeight, Pages: len(a.Pages)},
		Pages:  &xmlPages{},
	}
	for i := range a.Pages {
		doc.Pages.Pages = append(doc.Pages.Pages, xmlPage{
			ID:   i,
			File: fmt.Sprintf("%s_%d.png", base, i),
		})
	}

	codes := make([]rune, 0, len(a.Glyphs))
	for r := range a.Glyphs {
		codes = append(codes, r)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	doc.Chars.Count = len(codes)
	for _, r := range codes {
		g := a.Glyphs[r]
		doc.Chars.Chars = append(doc.Chars.Chars, xmlChar{
			ID:       int(r),
			X:        g.Rect.Min.X,
			Y:        g.Rect.Min.Y,
			Width:    g.Rect.Dx(),
			Height:   g.Rect.Dy(),
			XOffset:  g.Offset.X,
			YOffset:  g.Offset.Y,
			AdvanceX: g.AdvanceX,
			Page:     g.Page,
		})
	}

	out, err := xml.MarshalIndent(&doc, "", "\t")
	if err != nil {
		return fmt.Errorf("spritefont: encoding descriptor: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(xml.Header), out...), 0o644); err != nil {
		return fmt.Errorf("spritefont: writing descriptor: %w", err)
	}
	for i, t := range a.Pages {
		file := filepath.Join(dir, doc.Pages.Pages[i].File)
		if err := t.Image.SavePNG(file); err != nil {
			return fmt.Errorf("spritefont: writing page %d: %w", i, err)
		}
	}
	Logger().Debug("saved font atlas",
		"path", path,
		"glyphs", len(a.Glyphs),
		"pages", len(a.Pages))
	return nil
}

// LoadAtlas reads an atlas descriptor and its page images, serving
// the pages through reg. The descriptor is validated before the
// registry is touched, so a malformed file loads nothing. Kerning
// data in the descriptor is ignored.
func LoadAtlas(path string, reg TextureRegistry) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spritefont: reading descriptor: %w", err)
	}
	var doc xmlFont
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("spritefont: parsing descriptor %s: %w", path, err)
	}
	if doc.Pages == nil || len(doc.Pages.Pages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingPages, path)
	}

	pages := make([]xmlPage, len(doc.Pages.Pages))
	copy(pages, doc.Pages.Pages)
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })

	atlas := &Atlas{
		FaceName:   doc.Info.Face,
		Size:       doc.Info.Size,
		LineHeight: doc.Common.LineHeight,
		Glyphs:     make(map[rune]Glyph, len(doc.Chars.Chars)),
	}
	dir := filepath.Dir(path)
	for _, p := range pages {
		t, err := reg.Load(filepath.Join(dir, p.File))
		if err != nil {
			return nil, fmt.Errorf("spritefont: loading page %d: %w", p.ID, err)
		}
		atlas.Pages = append(atlas.Pages, t)
	}
	for _, c := range doc.Chars.Chars {
		if c.Page < 0 || c.Page >= len(atlas.Pages) {
			return nil, fmt.Errorf("spritefont: char %U references invalid page %d", rune(c.ID), c.Page)
		}
		atlas.Glyphs[rune(c.ID)] = Glyph{
			Rect:     image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height),
			Offset:   image.Pt(c.XOffset, c.YOffset),
			AdvanceX: c.AdvanceX,
			Page:     c.Page,
		}
	}
	Logger().Debug("loaded font atlas",
		"path", path,
		"face", atlas.FaceName,
		"glyphs", len(atlas.Glyphs),
		"pages", len(atlas.Pages))
	return atlas, nil
}
