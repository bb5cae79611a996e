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

// Marked-content operators (spec.md §4.3, §3): BMC/BDC/EMC wrap the
// formatter's own state-machine methods, additionally recording an
// optional-content-group or structure-item use where the marked-content
// span references one.

// BeginMarkedContent adds `/Tag BMC`, a plain marked-content span carrying
// no properties.
func (d *DrawContext) BeginMarkedContent(tag string) error {
	return d.cs.BMC(tag)
}

// BeginOptionalContent adds `/OC /OCxx BDC`, opening a marked-content span
// gated by the given optional-content group, and records that the context
// referenced it.
func (d *DrawContext) BeginOptionalContent(id handles.OptionalContentGroupId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid optional content group handle")
	}
	d.usage.addOCG(id)
	return d.cs.BDC("OC", fmt.Sprintf("/OC%d", int(id)))
}

// BeginStructureItem adds `/Tag /MCxx BDC` with a structure-item reference,
// used when the marked content is also a node in the logical structure
// tree (spec.md §3's supplemented structure-tree feature).
func (d *DrawContext) BeginStructureItem(tag string, id handles.StructureItemId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid structure item handle")
	}
	return d.cs.BDC(tag, fmt.Sprintf("/MC%d", int(id)))
}

// EndMarkedContent adds `EMC`, closing the innermost open marked-content
// span (plain, optional-content, or structure-item — they share one state
// kind on the stack).
func (d *DrawContext) EndMarkedContent() error {
	return d.cs.EMC()
}

// Annotate records that this page references the given annotation handle at
// most once (spec.md §4.3); unlike the content operators this does not emit
// anything into the content stream — the annotation itself is attached to
// the page's /Annots array by the owning generator.
func (d *DrawContext) Annotate(id handles.AnnotationId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid annotation handle")
	}
	for _, a := range d.annos.annotations {
		if a == id {
			return perr.Errorf(perr.AnnotationReuse, "annotation %d already attached to this page", int(id))
		}
	}
	d.annos.annotations = append(d.annos.annotations, id)
	return nil
}

// AnnotateWidget records that this page references the given form-field
// widget handle at most once.
func (d *DrawContext) AnnotateWidget(id handles.FormWidgetId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid form widget handle")
	}
	for _, w := range d.annos.widgets {
		if w == id {
			return perr.Errorf(perr.AnnotationReuse, "widget %d already attached to this page", int(id))
		}
	}
	d.annos.widgets = append(d.annos.widgets, id)
	return nil
}
