/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

import (
	"fmt"
	"strings"

	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/pcolor"
	"github.com/quillpdf/quill/perr"
)

// textEventKind tags one entry in a TextBuilder's event list (spec.md §4.4).
type textEventKind int

const (
	evFont textEventKind = iota
	evTd
	evTD
	evTm
	evTL
	evTstar
	evTr
	evTs
	evTz
	evTc
	evTw
	evTj
	evTJ
	evColor
	evLineWidth
	evDash
	evGState
	evBeginStructure
	evEndStructure
)

type textEvent struct {
	kind textEventKind

	font handles.FontId
	size float64

	x, y       float64
	a, b, c, d float64 // Tm matrix (e, f reuse x, y above)

	leading float64
	mode    int
	rise    float64
	hscale  float64
	charSp  float64
	wordSp  float64

	text  []rune
	atoms []TJAtom

	color  pcolor.Color
	stroke bool

	lineWidth float64
	dashArray []float64
	dashPhase float64

	gstate handles.GraphicsStateId

	structTag string
	structID  handles.StructureItemId
}

// TJAtomKind tags one element of a TJ payload (spec.md §4.4).
type TJAtomKind int

// The five TJ atom kinds.
const (
	AtomCodepoint TJAtomKind = iota
	AtomGlyphCodepoint
	AtomGlyphLigature
	AtomKerning
	AtomActualText
)

// TJAtom is one element of a TJ show-positioned-sequence payload.
type TJAtom struct {
	Kind TJAtomKind

	Codepoint rune
	GlyphID   uint16
	Ligature  string

	// KerningThousandths is the adjustment in thousandths of an em
	// (AtomKerning): positive moves left (per PDF's reversed-sign TJ
	// convention), applied directly as the numeric array entry.
	KerningThousandths float64

	// ActualTextOpen distinguishes an opening bracket from a closing one
	// when Kind == AtomActualText.
	ActualTextOpen bool
	ActualText     string
}

// TextBuilder accumulates the typed event sequence of one BT…ET text object
// (spec.md §4.4); DrawContext.Text opens one, renders it, and closes the
// enclosing BT/ET pair.
type TextBuilder struct {
	font  handles.FontId
	feed  GlyphFeeder
	caps  handles.Capabilities
	usage *ResourceUsage

	events []textEvent

	actualTextDepth int
}

func newTextBuilder(feed GlyphFeeder, caps handles.Capabilities, usage *ResourceUsage) *TextBuilder {
	return &TextBuilder{feed: feed, caps: caps, usage: usage}
}

// SetFont records `Tf`, also marking the font as a resource use.
func (t *TextBuilder) SetFont(id handles.FontId, size float64) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid font handle")
	}
	t.font = id
	t.usage.addFont(id)
	t.events = append(t.events, textEvent{kind: evFont, font: id, size: size})
	return nil
}

// MoveLine records `Td`: move to the start of the next line, offset by
// (tx, ty) from the start of the current line.
func (t *TextBuilder) MoveLine(tx, ty float64) {
	t.events = append(t.events, textEvent{kind: evTd, x: tx, y: ty})
}

// MoveLineSetLeading records `TD`: like Td, but also sets the leading to -ty.
func (t *TextBuilder) MoveLineSetLeading(tx, ty float64) {
	t.events = append(t.events, textEvent{kind: evTD, x: tx, y: ty})
}

// SetMatrix records `Tm`: set the text line and text line matrices directly.
func (t *TextBuilder) SetMatrix(a, b, c, d, e, f float64) {
	t.events = append(t.events, textEvent{kind: evTm, a: a, b: b, c: c, d: d, x: e, y: f})
}

// SetLeading records `TL`.
func (t *TextBuilder) SetLeading(leading float64) {
	t.events = append(t.events, textEvent{kind: evTL, leading: leading})
}

// NextLine records `T*`: move to the start of the next line using the
// current leading.
func (t *TextBuilder) NextLine() {
	t.events = append(t.events, textEvent{kind: evTstar})
}

// TextRenderMode enumerates the eight `Tr` render modes.
type TextRenderMode int

// The eight PDF text rendering modes.
const (
	RenderFill TextRenderMode = iota
	RenderStroke
	RenderFillStroke
	RenderInvisible
	RenderFillClip
	RenderStrokeClip
	RenderFillStrokeClip
	RenderClipOnly
)

// SetRenderMode records `Tr`. Rejects out-of-range enum values.
func (t *TextBuilder) SetRenderMode(mode TextRenderMode) error {
	if mode < RenderFill || mode > RenderClipOnly {
		return perr.Errorf(perr.BadEnum, "invalid text render mode %d", mode)
	}
	t.events = append(t.events, textEvent{kind: evTr, mode: int(mode)})
	return nil
}

// SetRise records `Ts`.
func (t *TextBuilder) SetRise(rise float64) {
	t.events = append(t.events, textEvent{kind: evTs, rise: rise})
}

// SetHorizontalScaling records `Tz` (percent, PDF-native units, default 100).
func (t *TextBuilder) SetHorizontalScaling(percent float64) {
	t.events = append(t.events, textEvent{kind: evTz, hscale: percent})
}

// SetCharSpacing records `Tc`.
func (t *TextBuilder) SetCharSpacing(spacing float64) {
	t.events = append(t.events, textEvent{kind: evTc, charSp: spacing})
}

// SetWordSpacing records `Tw`.
func (t *TextBuilder) SetWordSpacing(spacing float64) {
	t.events = append(t.events, textEvent{kind: evTw, wordSp: spacing})
}

// ShowText records `Tj`: show a plain Unicode string, each rune mapped
// through the font's subset at render time.
func (t *TextBuilder) ShowText(s string) {
	t.events = append(t.events, textEvent{kind: evTj, text: []rune(s)})
}

// ShowTextAtoms records `TJ`: a positioned sequence of atoms (codepoints,
// explicit glyph ids, ligatures, kerning adjustments, ActualText brackets).
// Unbalanced ActualText brackets are rejected at render time, matching
// spec.md §4.4's "unbalanced brackets are DrawStateEndMismatch."
func (t *TextBuilder) ShowTextAtoms(atoms []TJAtom) {
	t.events = append(t.events, textEvent{kind: evTJ, atoms: atoms})
}

// SetColor records a Tj-scoped stroke/fill color change, applied inline
// within the text object rather than requiring the caller to break out of
// BT/ET.
func (t *TextBuilder) SetColor(c pcolor.Color, stroke bool) {
	t.events = append(t.events, textEvent{kind: evColor, color: c, stroke: stroke})
}

// SetLineWidth records an in-text `w` (used by stroke/fill-stroke render
// modes). Rejects negative widths.
func (t *TextBuilder) SetLineWidth(width float64) error {
	if width < 0 {
		return perr.Errorf(perr.BadEnum, "negative line width %v", width)
	}
	t.events = append(t.events, textEvent{kind: evLineWidth, lineWidth: width})
	return nil
}

// SetDash records an in-text `d`. Rejects negative dash array entries.
func (t *TextBuilder) SetDash(array []float64, phase float64) error {
	for _, v := range array {
		if v < 0 {
			return perr.Errorf(perr.BadEnum, "negative dash array entry %v", v)
		}
	}
	t.events = append(t.events, textEvent{kind: evDash, dashArray: array, dashPhase: phase})
	return nil
}

// ApplyGraphicsState records an in-text `gs`, registering the handle.
func (t *TextBuilder) ApplyGraphicsState(id handles.GraphicsStateId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid graphics state handle")
	}
	t.usage.addGS(id)
	t.events = append(t.events, textEvent{kind: evGState, gstate: id})
	return nil
}

// BeginStructure records a structure-tagged BDC inside the text object.
func (t *TextBuilder) BeginStructure(tag string, id handles.StructureItemId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid structure item handle")
	}
	t.events = append(t.events, textEvent{kind: evBeginStructure, structTag: tag, structID: id})
	return nil
}

// EndStructure records the matching EMC.
func (t *TextBuilder) EndStructure() {
	t.events = append(t.events, textEvent{kind: evEndStructure})
}

// render walks the event list, feeding codepoints/glyph ids to the glyph
// feeder and writing the resulting command stream. It does not itself
// emit BT/ET; the caller wraps render in a DrawContext.cs.BT()/ET() pair.
func (t *TextBuilder) render(append func(string)) error {
	for _, ev := range t.events {
		switch ev.kind {
		case evFont:
			append(fmt.Sprintf("/F%d %s Tf", int(ev.font), fnum(ev.size)))
		case evTd:
			append(fmt.Sprintf("%s %s Td", fnum(ev.x), fnum(ev.y)))
		case evTD:
			append(fmt.Sprintf("%s %s TD", fnum(ev.x), fnum(ev.y)))
		case evTm:
			append(fmt.Sprintf("%s %s %s %s %s %s Tm", fnum(ev.a), fnum(ev.b), fnum(ev.c), fnum(ev.d), fnum(ev.x), fnum(ev.y)))
		case evTL:
			append(fmt.Sprintf("%s TL", fnum(ev.leading)))
		case evTstar:
			append("T*")
		case evTr:
			append(fmt.Sprintf("%d Tr", ev.mode))
		case evTs:
			append(fmt.Sprintf("%s Ts", fnum(ev.rise)))
		case evTz:
			append(fmt.Sprintf("%s Tz", fnum(ev.hscale)))
		case evTc:
			append(fmt.Sprintf("%s Tc", fnum(ev.charSp)))
		case evTw:
			append(fmt.Sprintf("%s Tw", fnum(ev.wordSp)))
		case evTj:
			hex, err := t.encodeRunes(ev.text)
			if err != nil {
				return err
			}
			append(fmt.Sprintf("%s Tj", hex))
		case evTJ:
			line, err := t.encodeAtoms(ev.atoms)
			if err != nil {
				return err
			}
			append(line)
		case evColor:
			if err := t.renderColor(ev.color, ev.stroke, append); err != nil {
				return err
			}
		case evLineWidth:
			append(fmt.Sprintf("%s w", fnum(ev.lineWidth)))
		case evDash:
			append(formatDash(ev.dashArray, ev.dashPhase))
		case evGState:
			append(fmt.Sprintf("/GS%d gs", int(ev.gstate)))
		case evBeginStructure:
			append(fmt.Sprintf("/%s /MC%d BDC", ev.structTag, int(ev.structID)))
		case evEndStructure:
			append("EMC")
		}
	}
	return nil
}

func formatDash(array []float64, phase float64) string {
	s := "["
	for i, v := range array {
		if i > 0 {
			s += " "
		}
		s += fnum(v)
	}
	return s + fmt.Sprintf("] %s d", fnum(phase))
}

func (t *TextBuilder) renderColor(c pcolor.Color, stroke bool, append func(string)) error {
	switch c.Space {
	case pcolor.DeviceGray:
		op := "g"
		if stroke {
			op = "G"
		}
		append(fmt.Sprintf("%s %s", fnum(clamp01(c.Gray)), op))
	case pcolor.DeviceRGB:
		op := "rg"
		if stroke {
			op = "RG"
		}
		append(fmt.Sprintf("%s %s %s %s", fnum(clamp01(c.R)), fnum(clamp01(c.G)), fnum(clamp01(c.B)), op))
	case pcolor.DeviceCMYK:
		if t.caps != nil && !t.caps.HasCMYKProfile() {
			return perr.New(perr.NoCmykProfile, "CMYK operator used without a declared CMYK output profile")
		}
		op := "k"
		if stroke {
			op = "K"
		}
		append(fmt.Sprintf("%s %s %s %s %s", fnum(clamp01(c.C)), fnum(clamp01(c.M)), fnum(clamp01(c.Y)), fnum(clamp01(c.K)), op))
	default:
		return perr.New(perr.BadEnum, "only device colors may be set inline within a text object")
	}
	return nil
}

// encodeRunes maps each rune through the glyph feeder and returns a PDF
// hexstring over the resulting subset glyph indices.
func (t *TextBuilder) encodeRunes(runes []rune) (string, error) {
	indices := make([]uint16, 0, len(runes))
	for _, r := range runes {
		idx, err := t.feed.Feed(t.font, r)
		if err != nil {
			return "", err
		}
		indices = append(indices, idx)
	}
	return hexGlyphs(indices), nil
}

// encodeAtoms walks a TJ atom sequence, mapping codepoints/glyph ids/
// ligatures through the glyph feeder and interleaving kerning numbers,
// producing one `[ (hex) (hex) num (hex) ] TJ` line. ActualText brackets
// are tracked but do not themselves contribute glyph data; spec.md leaves
// their PDF encoding (a /Span BDC with an /ActualText entry) to the
// document generator's marked-content layer, so here they only enforce the
// balance invariant.
func (t *TextBuilder) encodeAtoms(atoms []TJAtom) (string, error) {
	var b strings.Builder
	b.WriteString("[")
	depth := 0
	var run []uint16
	flush := func() {
		if len(run) == 0 {
			return
		}
		if b.Len() > 1 {
			b.WriteString(" ")
		}
		b.WriteString(hexGlyphs(run))
		run = nil
	}
	for _, a := range atoms {
		switch a.Kind {
		case AtomCodepoint:
			idx, err := t.feed.Feed(t.font, a.Codepoint)
			if err != nil {
				return "", err
			}
			run = append(run, idx)
		case AtomGlyphCodepoint:
			idx, err := t.feed.FeedGlyph(t.font, a.GlyphID, a.Codepoint)
			if err != nil {
				return "", err
			}
			run = append(run, idx)
		case AtomGlyphLigature:
			idx, err := t.feed.FeedLigature(t.font, a.GlyphID, a.Ligature)
			if err != nil {
				return "", err
			}
			run = append(run, idx)
		case AtomKerning:
			flush()
			if b.Len() > 1 {
				b.WriteString(" ")
			}
			b.WriteString(fnum(a.KerningThousandths))
		case AtomActualText:
			if a.ActualTextOpen {
				depth++
			} else {
				depth--
				if depth < 0 {
					return "", perr.New(perr.DrawStateEndMismatch, "ActualText close without matching open")
				}
			}
		default:
			return "", perr.Errorf(perr.BadEnum, "unknown TJ atom kind %d", a.Kind)
		}
	}
	flush()
	if depth != 0 {
		return "", perr.New(perr.DrawStateEndMismatch, "TJ payload ended with an ActualText bracket still open")
	}
	b.WriteString("] TJ")
	return b.String(), nil
}

func hexGlyphs(indices []uint16) string {
	var b strings.Builder
	b.WriteString("<")
	for _, idx := range indices {
		fmt.Fprintf(&b, "%04X", idx)
	}
	b.WriteString(">")
	return b.String()
}

// Text opens a BT…ET block, invokes build to populate a TextBuilder, then
// renders its event list into the content stream and closes ET. Returns an
// error if build itself errors, or if ET fails because some other state is
// innermost (it cannot: Text cannot nest, per spec.md §3), or if an
// unbalanced ActualText bracket is found.
func (d *DrawContext) Text(build func(*TextBuilder) error) error {
	if err := d.cs.BT(); err != nil {
		return err
	}
	tb := newTextBuilder(d.feed, d.caps, &d.usage)
	if err := build(tb); err != nil {
		return err
	}
	if err := tb.render(d.cs.Append); err != nil {
		return err
	}
	return d.cs.ET()
}
