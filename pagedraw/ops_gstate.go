/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

import (
	"fmt"

	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/perr"
)

// Save adds `q`: push the graphics state.
func (d *DrawContext) Save() {
	d.cs.PushSave()
}

// Restore adds `Q`: pop the graphics state. Returns
// perr.DrawStateEndMismatch if there is no matching Save, or if some other
// draw state (a still-open text object or marked-content span) is
// innermost — exactly the state machine spec.md §3/§4.2 describes.
func (d *DrawContext) Restore() error {
	return d.cs.PopSave()
}

// LineWidth adds `w`. Rejects negative widths with perr.BadEnum, per
// spec.md §4.3 ("cmd_w rejects negative line widths").
func (d *DrawContext) LineWidth(width float64) error {
	if width < 0 {
		return perr.Errorf(perr.BadEnum, "negative line width %v", width)
	}
	d.cs.Append(fmt.Sprintf("%s w", fnum(width)))
	return nil
}

// MiterLimit adds `M`.
func (d *DrawContext) MiterLimit(limit float64) {
	d.cs.Append(fmt.Sprintf("%s M", fnum(limit)))
}

// LineCapStyle enumerates the `J` operator's three legal values.
type LineCapStyle int

// The three PDF line cap styles.
const (
	CapButt LineCapStyle = iota
	CapRound
	CapProjectingSquare
)

// LineCap adds `J`. Rejects out-of-range enum values.
func (d *DrawContext) LineCap(style LineCapStyle) error {
	if style < CapButt || style > CapProjectingSquare {
		return perr.Errorf(perr.BadEnum, "invalid line cap style %d", style)
	}
	d.cs.Append(fmt.Sprintf("%d J", style))
	return nil
}

// LineJoinStyle enumerates the `j` operator's three legal values.
type LineJoinStyle int

// The three PDF line join styles.
const (
	JoinMiter LineJoinStyle = iota
	JoinRound
	JoinBevel
)

// LineJoin adds `j`. Rejects out-of-range enum values.
func (d *DrawContext) LineJoin(style LineJoinStyle) error {
	if style < JoinMiter || style > JoinBevel {
		return perr.Errorf(perr.BadEnum, "invalid line join style %d", style)
	}
	d.cs.Append(fmt.Sprintf("%d j", style))
	return nil
}

// DashPattern adds `d`. Rejects negative array entries; an empty array is
// the valid "solid line" encoding.
func (d *DrawContext) DashPattern(array []float64, phase float64) error {
	for _, v := range array {
		if v < 0 {
			return perr.Errorf(perr.BadEnum, "negative dash array entry %v", v)
		}
	}
	s := "["
	for i, v := range array {
		if i > 0 {
			s += " "
		}
		s += fnum(v)
	}
	s += fmt.Sprintf("] %s d", fnum(phase))
	d.cs.Append(s)
	return nil
}

// Flatness adds `i`. Requires 0 <= flatness <= 100 (spec.md §4.3).
func (d *DrawContext) Flatness(flatness float64) error {
	if flatness < 0 || flatness > 100 {
		return perr.Errorf(perr.BadEnum, "flatness %v out of range [0, 100]", flatness)
	}
	d.cs.Append(fmt.Sprintf("%s i", fnum(flatness)))
	return nil
}

// ApplyGraphicsState adds `/Name gs`, registering that this context used
// the referenced extended graphics state handle.
func (d *DrawContext) ApplyGraphicsState(id handles.GraphicsStateId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid graphics state handle")
	}
	d.usage.addGS(id)
	d.cs.Append(fmt.Sprintf("/GS%d gs", int(id)))
	return nil
}
