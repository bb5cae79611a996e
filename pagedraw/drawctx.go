/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package pagedraw is the caller-visible builder for one page, form
// XObject, pattern, or transparency group (spec.md §4.3): it accumulates a
// content stream through the ~70 public operations and tracks which
// resources it referenced, so the owning generator can assemble the page's
// (or XObject's) /Resources dictionary without the draw context itself
// knowing about object numbers.
//
// The per-operator method names and the cm-based transform helpers are
// grounded on the teacher's contentstream/creator.go ContentCreator;
// generalized here to validate arguments (clamped colors, rejected
// negative widths, flatness range) the way the teacher's edit-oriented
// creator never needed to, since it only ever appended to operand lists a
// caller already trusted.
package pagedraw

import (
	"fmt"

	"github.com/quillpdf/quill/content"
	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/pcolor"
	"github.com/quillpdf/quill/perr"
)

// Kind distinguishes the four things a DrawContext can build.
type Kind int

// The four draw-context kinds spec.md §4.3 names.
const (
	KindPage Kind = iota
	KindFormXObject
	KindPattern
	KindTransparencyGroup
)

// ResourceUsage is the set of handles a DrawContext referenced while
// accumulating its content stream. The owning generator consults this when
// committing the page/XObject to build the exact, minimal /Resources
// dictionary spec.md §8 requires ("lists exactly the subsets referenced by
// the page's content stream, and nothing else").
type ResourceUsage struct {
	Fonts           []handles.FontId
	XObjects        []handles.XObjectRef
	GraphicsStates  []handles.GraphicsStateId
	Shadings        []handles.ShadingId
	Patterns        []handles.PatternId
	ICCProfiles     []handles.ICCProfileId
	Labs            []handles.LabId
	Separations     []handles.SeparationId
	OptionalContent []handles.OptionalContentGroupId
}

func (u *ResourceUsage) addFont(id handles.FontId) {
	for _, f := range u.Fonts {
		if f == id {
			return
		}
	}
	u.Fonts = append(u.Fonts, id)
}

func (u *ResourceUsage) addXObject(ref handles.XObjectRef) {
	for _, x := range u.XObjects {
		if x == ref {
			return
		}
	}
	u.XObjects = append(u.XObjects, ref)
}

func (u *ResourceUsage) addGS(id handles.GraphicsStateId) {
	for _, g := range u.GraphicsStates {
		if g == id {
			return
		}
	}
	u.GraphicsStates = append(u.GraphicsStates, id)
}

func (u *ResourceUsage) addShading(id handles.ShadingId) {
	for _, s := range u.Shadings {
		if s == id {
			return
		}
	}
	u.Shadings = append(u.Shadings, id)
}

func (u *ResourceUsage) addPattern(id handles.PatternId) {
	for _, p := range u.Patterns {
		if p == id {
			return
		}
	}
	u.Patterns = append(u.Patterns, id)
}

func (u *ResourceUsage) addICC(id handles.ICCProfileId) {
	for _, p := range u.ICCProfiles {
		if p == id {
			return
		}
	}
	u.ICCProfiles = append(u.ICCProfiles, id)
}

func (u *ResourceUsage) addLab(id handles.LabId) {
	for _, p := range u.Labs {
		if p == id {
			return
		}
	}
	u.Labs = append(u.Labs, id)
}

func (u *ResourceUsage) addSeparation(id handles.SeparationId) {
	for _, p := range u.Separations {
		if p == id {
			return
		}
	}
	u.Separations = append(u.Separations, id)
}

func (u *ResourceUsage) addOCG(id handles.OptionalContentGroupId) {
	for _, p := range u.OptionalContent {
		if p == id {
			return
		}
	}
	u.OptionalContent = append(u.OptionalContent, id)
}

// AnnotationUse records that the page referenced a given annotation or
// widget handle; spec.md §4.3 requires each handle be used at most once.
type annotationUse struct {
	annotations []handles.AnnotationId
	widgets     []handles.FormWidgetId
}

// GlyphFeeder is implemented by the font subsetter: every show-text event
// the text builder emits is fed through it so the subsetter can assign
// subset glyph indices incrementally as the page is drawn (spec.md §4.4).
type GlyphFeeder interface {
	// Feed maps one codepoint through font id's subset, returning the
	// subset index to encode in the content stream.
	Feed(font handles.FontId, codepoint rune) (subsetIndex uint16, err error)
	// FeedGlyph maps an explicit glyph id (optionally with its codepoint or
	// ligature text) through the subset.
	FeedGlyph(font handles.FontId, glyphID uint16, codepoint rune) (subsetIndex uint16, err error)
	FeedLigature(font handles.FontId, glyphID uint16, text string) (subsetIndex uint16, err error)
}

// DrawContext is the builder for one page / form XObject / pattern /
// transparency group's content stream.
type DrawContext struct {
	kind  Kind
	caps  handles.Capabilities
	feed  GlyphFeeder
	cs    *content.Formatter
	usage ResourceUsage
	annos annotationUse

	bbox [4]float64 // form XObject / pattern / transparency-group bbox

	finalized bool
}

// New creates a DrawContext of the given kind. caps is consulted for
// document-level prerequisite checks (e.g. NoCmykProfile); feed may be nil
// for contexts that never call text operators in tests, but a real
// generator always supplies its font subsetter.
func New(kind Kind, caps handles.Capabilities, feed GlyphFeeder) *DrawContext {
	return &DrawContext{
		kind: kind,
		caps: caps,
		feed: feed,
		cs:   content.New(),
	}
}

// Kind returns which of the four context kinds this is.
func (d *DrawContext) Kind() Kind { return d.kind }

// SetBBox sets the bounding box used when this context is serialized as an
// XObject (form, pattern, or transparency group). It is stored for every
// kind; pdfdoc.AddPage does not use it for KindPage.
func (d *DrawContext) SetBBox(x0, y0, x1, y1 float64) {
	d.bbox = [4]float64{x0, y0, x1, y1}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func fnum(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	return s
}

// requireCMYKProfile enforces "For CMYK operators, the document must have a
// CMYK output profile declared, otherwise NoCmykProfile" (spec.md §4.3).
func (d *DrawContext) requireCMYKProfile() error {
	if d.caps != nil && !d.caps.HasCMYKProfile() {
		return perr.New(perr.NoCmykProfile, "CMYK operator used without a declared CMYK output profile")
	}
	return nil
}
