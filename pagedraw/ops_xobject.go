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

// DrawXObject adds `/Name Do`, dispatching the resource name on ref's kind
// (image, form, or transparency-group XObject) and recording the use so the
// owning generator can build the page's /XObject resource subdictionary.
func (d *DrawContext) DrawXObject(ref handles.XObjectRef) error {
	var name string
	switch ref.Kind {
	case handles.XObjectImage:
		if !ref.Image.Valid() {
			return perr.New(perr.NullArgument, "invalid image handle")
		}
		name = fmt.Sprintf("/Im%d", int(ref.Image))
	case handles.XObjectForm:
		if !ref.Form.Valid() {
			return perr.New(perr.NullArgument, "invalid form XObject handle")
		}
		name = fmt.Sprintf("/Fm%d", int(ref.Form))
	case handles.XObjectGroup:
		if !ref.Group.Valid() {
			return perr.New(perr.NullArgument, "invalid transparency group handle")
		}
		name = fmt.Sprintf("/Gr%d", int(ref.Group))
	default:
		return perr.Errorf(perr.BadEnum, "unknown XObject kind %d", ref.Kind)
	}
	d.usage.addXObject(ref)
	d.cs.Append(fmt.Sprintf("%s Do", name))
	return nil
}

// Shade adds `/Name sh`: paint the current clip with a shading pattern
// directly, without needing a Pattern color space.
func (d *DrawContext) Shade(id handles.ShadingId) error {
	if !id.Valid() {
		return perr.New(perr.NullArgument, "invalid shading handle")
	}
	d.usage.addShading(id)
	d.cs.Append(fmt.Sprintf("/Sh%d sh", int(id)))
	return nil
}
