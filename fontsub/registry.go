/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package fontsub

import (
	"github.com/unidoc/unitype"

	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/perr"
)

// Registry holds one Subset per loaded font and implements
// pagedraw.GlyphFeeder, so a document generator can hand it straight to
// every DrawContext it creates (spec.md §4.7: "subsetter is lazily
// populated as glyphs are requested").
type Registry struct {
	subsets map[handles.FontId]*Subset
}

// NewRegistry returns an empty font registry.
func NewRegistry() *Registry {
	return &Registry{subsets: map[handles.FontId]*Subset{}}
}

// Register associates a parsed font's Subset with a font handle. Called
// once per load_font.
func (r *Registry) Register(id handles.FontId, subset *Subset) {
	r.subsets[id] = subset
}

// Subset returns the Subset registered for id, if any.
func (r *Registry) Subset(id handles.FontId) (*Subset, bool) {
	s, ok := r.subsets[id]
	return s, ok
}

func (r *Registry) lookup(font handles.FontId) (*Subset, error) {
	s, ok := r.subsets[font]
	if !ok {
		return nil, perr.Errorf(perr.FontNotSpecified, "no font registered for handle %d", int(font))
	}
	return s, nil
}

// Feed implements pagedraw.GlyphFeeder: maps a codepoint through font's
// subset via the cmap-driven resolution path.
func (r *Registry) Feed(font handles.FontId, codepoint rune) (uint16, error) {
	s, err := r.lookup(font)
	if err != nil {
		return 0, err
	}
	return s.GetGlyphSubset(codepoint, nil)
}

// FeedGlyph implements pagedraw.GlyphFeeder: maps an explicit glyph id
// (e.g. from a caller that already resolved shaping) through font's
// subset, keyed by that glyph id rather than by cmap lookup.
func (r *Registry) FeedGlyph(font handles.FontId, glyphID uint16, codepoint rune) (uint16, error) {
	s, err := r.lookup(font)
	if err != nil {
		return 0, err
	}
	gid := unitype.GlyphIndex(glyphID)
	return s.GetGlyphSubset(codepoint, &gid)
}

// FeedLigature implements pagedraw.GlyphFeeder: registers a ligature glyph
// under the full text string it represents.
func (r *Registry) FeedLigature(font handles.FontId, glyphID uint16, text string) (uint16, error) {
	s, err := r.lookup(font)
	if err != nil {
		return 0, err
	}
	return s.AddLigature(text, unitype.GlyphIndex(glyphID))
}
