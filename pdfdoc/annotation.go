/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/handles"
)

// AnnotationSpec configures add_annotation (spec.md §4.7: "stored as
// deferred, resolved when the owning page is written").
type AnnotationSpec struct {
	Subtype string
	Rect    [4]float64
	Contents string
}

// AddAnnotation registers a deferred annotation dictionary, returning a
// handle the owning page's draw context records via Annotate.
func (d *Document) AddAnnotation(spec AnnotationSpec) handles.AnnotationId {
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("Annot"))
	dict.Set("Subtype", core.MakeName(spec.Subtype))
	dict.Set("Rect", core.MakeArrayFromFloats(spec.Rect[:]))
	if spec.Contents != "" {
		dict.Set("Contents", core.MakeString(spec.Contents))
	}
	objID := d.addFull(dict)
	id := handles.AnnotationId(len(d.annotations) + 1)
	d.annotations[id] = objID
	return id
}

// CreateFormCheckbox implements spec.md §4.7's create_form_checkbox: a
// /Widget annotation with on/off appearance states and a field name, stored
// deferred like any other annotation.
func (d *Document) CreateFormCheckbox(rect [4]float64, onAppearance, offAppearance core.ObjectID, name string) handles.FormWidgetId {
	ap := core.MakeDict()
	states := core.MakeDict()
	states.Set("On", core.MakeRef(onAppearance))
	states.Set("Off", core.MakeRef(offAppearance))
	ap.Set("N", states)

	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("Annot"))
	dict.Set("Subtype", core.MakeName("Widget"))
	dict.Set("FT", core.MakeName("Btn"))
	dict.Set("Rect", core.MakeArrayFromFloats(rect[:]))
	dict.Set("T", core.MakeString(name))
	dict.Set("AS", core.MakeName("Off"))
	dict.Set("AP", ap)

	objID := d.addFull(dict)
	id := handles.FormWidgetId(len(d.widgets) + 1)
	d.widgets[id] = objID
	return id
}
