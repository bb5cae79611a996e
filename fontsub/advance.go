/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package fontsub

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/unidoc/freetype/truetype"

	"github.com/quillpdf/quill/perr"
)

// WidthsArray returns the subset's per-glyph advance widths scaled to
// PDF's 1000-unit em, in subset order — exactly the operand list a
// CIDFontType2 dictionary's /W array needs when every glyph gets its own
// entry (spec.md §4.5: "Font dictionary emission ... W array from hmtx
// advances").
func (s *Subset) WidthsArray() []int {
	upm := int(s.UnitsPerEm())
	if upm == 0 {
		upm = 1000
	}
	widths := s.hmtxWidths()
	out := make([]int, len(widths))
	for i, w := range widths {
		out[i] = int(w) * 1000 / upm
	}
	return out
}

// AdvanceFreetype computes a glyph's advance width via a second,
// independent code path built on github.com/unidoc/freetype/truetype
// rather than the subsetter's own cached hmtx table. This exists purely to
// resolve the spec's Open Question about two overlapping text-width
// paths: the subsetter's cache (used internally by utf8_text_width and by
// WidthsArray) is authoritative for anything quill itself emits, while
// AdvanceFreetype is exposed for callers that want to cross-check a width
// against an independent glyph rasterizer before trusting a font's hmtx
// table — it is never called from inside this package.
func AdvanceFreetype(fontData []byte, r rune, pointSize float64) (float64, error) {
	fnt, err := truetype.Parse(fontData)
	if err != nil {
		return 0, perr.Wrap(perr.MalformedFontFile, err, "parsing font for freetype advance lookup")
	}
	idx := fnt.Index(r)
	if idx == 0 {
		return 0, perr.Errorf(perr.MissingGlyph, "no glyph mapped for codepoint U+%04X", r)
	}
	opts := truetype.Options{Size: pointSize}
	face := truetype.NewFace(fnt, &opts)
	defer face.Close()

	advance, ok := face.GlyphAdvance(idx)
	if !ok {
		return 0, perr.Errorf(perr.MissingGlyph, "no advance available for glyph %d", idx)
	}
	return float64(advance) / 64, nil
}

// AdvanceSfnt computes a glyph's advance width via golang.org/x/image/
// font/sfnt, a third independent path alongside the subsetter's own cached
// hmtx table and AdvanceFreetype — the "fall through to the font's
// built-in table" alternate entry point named in SPEC_FULL.md's DOMAIN
// STACK. Like AdvanceFreetype, it is never called internally by
// utf8_text_width/glyph_advance (Open Question decision #1: the
// subsetter's own cache is authoritative for anything quill itself
// emits); it exists for callers that want to query a font's advance table
// before any subset exists.
func AdvanceSfnt(fontData []byte, r rune, pointSize float64) (float64, error) {
	f, err := sfnt.Parse(fontData)
	if err != nil {
		return 0, perr.Wrap(perr.MalformedFontFile, err, "parsing font for sfnt advance lookup")
	}
	var buf sfnt.Buffer
	idx, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return 0, perr.Wrap(perr.MissingGlyph, err, "resolving glyph index")
	}
	if idx == 0 {
		return 0, perr.Errorf(perr.MissingGlyph, "no glyph mapped for codepoint U+%04X", r)
	}
	adv, err := f.GlyphAdvance(&buf, idx, fixed.I(int(pointSize)), font.HintingNone)
	if err != nil {
		return 0, perr.Wrap(perr.MissingGlyph, err, "reading glyph advance")
	}
	return float64(adv) / 64, nil
}
