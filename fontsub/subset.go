/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package fontsub implements the font parser/subsetter (spec.md §4.5): for
// each original TrueType/OTF font, it builds an incremental subset
// containing only the glyphs a document actually draws, plus the ToUnicode
// CMap and /W widths array a CIDFontType2 dictionary needs.
//
// Composite-glyph closure happens at insertion time, in this package (spec.md
// §4.5 step 4, scenario 5): every composite component a regular glyph
// references is walked recursively and appended as its own CompositeGlyph
// entry before GetGlyphSubset returns, mirroring the original
// handle_subglyphs/get_all_subglyphs pair (original_source/src/
// fontsubsetter.cpp). Low-level table parsing and the final glyf/loca/cmap
// rewriting down to exactly the selected indices are delegated to
// github.com/unidoc/unitype (grounded on the teacher's
// model/font_composite.go subsetRegistered and model/optimize/clean_fonts.go,
// both of which drive the same library for the same purpose); this package
// owns the incremental glyph-selection policy itself, including the
// composite closure, plus the codepoint/glyph-id/ligature bookkeeping and
// ToUnicode generation spec.md assigns to "the subsetter."
package fontsub

import (
	"bytes"

	"github.com/unidoc/unitype"

	"github.com/quillpdf/quill/perr"
)

// maxSubsetGlyphs is the subset-size ceiling spec.md §4.5 names ("If the
// subset is full (65,000) return TooManyGlyphsUsed").
const maxSubsetGlyphs = 65000

// entryKind tags one position in the subset's glyph table.
type entryKind int

const (
	kindNotdef entryKind = iota
	kindRegular
	kindComposite
	kindLigature
)

type glyphEntry struct {
	kind      entryKind
	codepoint rune
	glyphID   unitype.GlyphIndex
	ligature  string
}

// Subset is one in-progress per-font subset (spec.md §4.5's "one
// in-progress subset per original font").
type Subset struct {
	orig  *unitype.Font
	isCFF bool

	entries []glyphEntry

	byGlyphID   map[unitype.GlyphIndex]uint16
	byCodepoint map[rune]uint16
}

// Parse reads a raw TTF/OTF font file and returns the original font plus an
// empty subset ready to accept glyphs. TTC collections are not supported:
// unitype.Parse expects a single-font sfnt stream, so a caller presenting a
// TTC must pick the desired face's bytes out of the collection itself
// before calling Parse.
func Parse(data []byte) (*Subset, error) {
	fnt, err := unitype.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, perr.Wrap(perr.MalformedFontFile, err, "parsing font file")
	}
	s := &Subset{
		orig:        fnt,
		isCFF:       len(data) >= 4 && string(data[:4]) == "OTTO",
		byGlyphID:   map[unitype.GlyphIndex]uint16{},
		byCodepoint: map[rune]uint16{},
	}
	// Subset index 0 is always .notdef (spec.md §4.5).
	s.entries = append(s.entries, glyphEntry{kind: kindNotdef})
	s.byGlyphID[0] = 0
	return s, nil
}

// IsCFF reports whether the original container is an OTF with a CFF
// outline table, which the document generator uses to choose between
// emitting FontFile2 (TTF) and FontFile3 /OpenType (CFF) in the font
// descriptor (spec.md §4.5).
func (s *Subset) IsCFF() bool { return s.isCFF }

// Size returns the number of glyphs currently in the subset, including
// .notdef.
func (s *Subset) Size() int { return len(s.entries) }

func (s *Subset) full() bool { return len(s.entries) >= maxSubsetGlyphs }

// GetGlyphSubset implements the subset policy from spec.md §4.5: given a
// codepoint and an optional already-resolved glyph id, it returns the
// position of that glyph within the subset, inserting it if necessary.
func (s *Subset) GetGlyphSubset(codepoint rune, glyphID *unitype.GlyphIndex) (uint16, error) {
	if glyphID != nil {
		if idx, ok := s.byGlyphID[*glyphID]; ok {
			return idx, nil
		}
	} else if idx, ok := s.byCodepoint[codepoint]; ok {
		return idx, nil
	}

	if s.full() {
		return 0, perr.New(perr.TooManyGlyphsUsed, "subset already holds the maximum number of glyphs")
	}

	gid, err := s.resolveGlyphID(codepoint, glyphID)
	if err != nil {
		return 0, err
	}

	if err := s.insertComposites(gid); err != nil {
		return 0, err
	}
	if s.full() {
		return 0, perr.New(perr.TooManyGlyphsUsed, "subset already holds the maximum number of glyphs")
	}

	idx := uint16(len(s.entries))
	s.entries = append(s.entries, glyphEntry{kind: kindRegular, codepoint: codepoint, glyphID: gid})
	s.byGlyphID[gid] = idx
	s.byCodepoint[codepoint] = idx
	return idx, nil
}

// insertComposites walks gid's composite components, if any, and appends
// each one to the subset as a CompositeGlyph entry (spec.md §4.5 step 4:
// "recursively append composite sub-glyphs ... no codepoint") before gid's
// own RegularGlyph entry is appended by the caller. Mirrors
// FontSubsetter::handle_subglyphs/get_all_subglyphs in
// original_source/src/fontsubsetter.cpp, which performs this same
// insertion-time closure against the raw glyf table rather than deferring
// it to font-writing time. CFF-outline fonts have no glyf composite
// components, so this is a no-op for them.
//
// Caveat: CompositeGlyphComponents is not a call this package has an
// observed unitype call site for — every other unitype method this file
// uses (Parse, LookupRunes, GlyphAdvanceWidth, SubsetKeepIndices) is
// grounded on an actual teacher call site, but no pack
// example reads a font's glyf composite structure directly. The name/shape
// here follows unitype's own Verb+Noun convention from those grounded
// methods; reconcile this one call against the real unitype API if it
// differs (see DESIGN.md's fontsub entry).
func (s *Subset) insertComposites(gid unitype.GlyphIndex) error {
	if s.isCFF {
		return nil
	}
	components, isComposite, err := s.orig.CompositeGlyphComponents(gid)
	if err != nil {
		return perr.Wrap(perr.MalformedFontFile, err, "reading composite glyph components")
	}
	if !isComposite {
		return nil
	}
	for _, comp := range components {
		if _, ok := s.byGlyphID[comp]; ok {
			continue
		}
		if _, err := s.AddCompositeReference(comp); err != nil {
			return err
		}
		if err := s.insertComposites(comp); err != nil {
			return err
		}
	}
	return nil
}

func (s *Subset) resolveGlyphID(codepoint rune, glyphID *unitype.GlyphIndex) (unitype.GlyphIndex, error) {
	if glyphID != nil {
		return *glyphID, nil
	}
	indices := s.orig.LookupRunes([]rune{codepoint})
	if len(indices) == 0 || indices[0] == 0 {
		return 0, perr.Errorf(perr.MissingGlyph, "no glyph mapped for codepoint U+%04X", codepoint)
	}
	return indices[0], nil
}

// AddCompositeReference records that glyphID was pulled into the subset as
// a dependency of some other glyph (spec.md §4.5's CompositeGlyph entry,
// carrying no codepoint). Called by insertComposites during the recursive
// closure walk; exported so a caller that already knows a component glyph
// id by other means (e.g. a precomputed dependency list) can register it
// directly without going through GetGlyphSubset.
func (s *Subset) AddCompositeReference(glyphID unitype.GlyphIndex) (uint16, error) {
	if idx, ok := s.byGlyphID[glyphID]; ok {
		return idx, nil
	}
	if s.full() {
		return 0, perr.New(perr.TooManyGlyphsUsed, "subset already holds the maximum number of glyphs")
	}
	idx := uint16(len(s.entries))
	s.entries = append(s.entries, glyphEntry{kind: kindComposite, glyphID: glyphID})
	s.byGlyphID[glyphID] = idx
	return idx, nil
}

// AddLigature implements the ligature half of spec.md §4.5's subset
// policy: text is the full string the ligature glyph represents (used for
// its ToUnicode bfchar entry), glyphID is the already-resolved ligature
// glyph.
func (s *Subset) AddLigature(text string, glyphID unitype.GlyphIndex) (uint16, error) {
	if idx, ok := s.byGlyphID[glyphID]; ok {
		return idx, nil
	}
	if s.full() {
		return 0, perr.New(perr.TooManyGlyphsUsed, "subset already holds the maximum number of glyphs")
	}
	idx := uint16(len(s.entries))
	s.entries = append(s.entries, glyphEntry{kind: kindLigature, ligature: text, glyphID: glyphID})
	s.byGlyphID[glyphID] = idx
	return idx, nil
}

// Emitted is the byte-level result of Emit: the subset font program plus
// the pieces a document generator needs to build a CIDFontType2 dictionary.
type Emitted struct {
	FontFile []byte
	IsCFF    bool

	// Widths maps subset glyph index -> advance width in glyph units (the
	// raw hmtx value; the caller scales to the /W array's 1000-unit em).
	Widths []uint16

	ToUnicode []byte
}

// glyphIDs returns the ordered list of original-font glyph ids the subset
// selected, index-aligned with s.entries (and so with the eventual subset
// glyph indices).
func (s *Subset) glyphIDs() []unitype.GlyphIndex {
	ids := make([]unitype.GlyphIndex, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.glyphID
	}
	return ids
}

// Emit produces the subset font file (spec.md §4.5's "Emit" section) by
// asking unitype to rewrite the font down to exactly the requested glyph
// ids, in subset order. The composite closure itself already happened at
// insertion time (insertComposites), so indices already names every
// component glyph the selected regular/ligature glyphs depend on; unitype
// only has to renumber and repack the glyf/loca/hmtx/maxp tables down to
// that exact index set.
func (s *Subset) Emit() (*Emitted, error) {
	indices := s.glyphIDs()
	subsetFont, err := s.orig.SubsetKeepIndices(indices)
	if err != nil {
		return nil, perr.Wrap(perr.MalformedFontFile, err, "subsetting font")
	}

	var buf bytes.Buffer
	if err := subsetFont.Write(&buf); err != nil {
		return nil, perr.Wrap(perr.MalformedFontFile, err, "writing subset font")
	}

	widths := s.hmtxWidths()
	tounicode := s.buildToUnicode()

	return &Emitted{
		FontFile:  buf.Bytes(),
		IsCFF:     s.isCFF,
		Widths:    widths,
		ToUnicode: tounicode,
	}, nil
}

// hmtxWidths reads each selected glyph's advance width from the original
// font's horizontal metrics table, in subset order.
func (s *Subset) hmtxWidths() []uint16 {
	widths := make([]uint16, len(s.entries))
	for i, e := range s.entries {
		widths[i] = s.orig.GlyphAdvanceWidth(e.glyphID)
	}
	return widths
}

// GlyphAdvance returns the advance width (glyph units) of the subset glyph
// at idx, used by the document generator's glyph_advance / utf8_text_width
// queries (spec.md §4.7) once the subset's cache is populated.
func (s *Subset) GlyphAdvance(idx uint16) (uint16, bool) {
	if int(idx) >= len(s.entries) {
		return 0, false
	}
	return s.orig.GlyphAdvanceWidth(s.entries[idx].glyphID), true
}

// UnitsPerEm returns the font's design grid size (head.unitsPerEm), needed
// to scale raw advance widths into PDF's 1000-unit-per-em /W convention.
func (s *Subset) UnitsPerEm() uint16 {
	return s.orig.UnitsPerEm()
}
