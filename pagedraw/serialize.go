/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

import (
	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/perr"
)

// Serialized is the result of DrawContext.Serialize: the raw command-stream
// bytes plus everything the owning generator needs to emit the page's or
// XObject's dictionary and resource subdictionaries. Which fields matter
// depends on Kind: a KindPage context's BBox is meaningless, while a
// KindFormXObject/KindPattern/KindTransparencyGroup context's BBox is
// required.
type Serialized struct {
	Kind    Kind
	Content []byte
	BBox    [4]float64
	Usage   ResourceUsage

	Annotations []handles.AnnotationId
	Widgets     []handles.FormWidgetId
}

// Serialize steals the accumulated content stream and returns it alongside
// the recorded resource usage. Requires the draw-state stack to be empty
// (spec.md §4.3: "refuses to serialize if it has unclosed state") and may
// only be called once per DrawContext, reported as WritingTwice on reuse
// since a stolen Formatter cannot be stolen from again.
func (d *DrawContext) Serialize() (Serialized, error) {
	if d.finalized {
		return Serialized{}, perr.New(perr.WritingTwice, "draw context already serialized")
	}
	content, err := d.cs.Steal()
	if err != nil {
		return Serialized{}, err
	}
	d.finalized = true
	return Serialized{
		Kind:        d.kind,
		Content:     content,
		BBox:        d.bbox,
		Usage:       d.usage,
		Annotations: d.annos.annotations,
		Widgets:     d.annos.widgets,
	}, nil
}
