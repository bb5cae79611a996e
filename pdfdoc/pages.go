/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"strconv"

	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/pagedraw"
)

// NewPageContext returns a fresh KindPage draw context wired to this
// document's font registry and color capabilities, ready for drawing
// operations (spec.md §4.7's new_page_context).
func (d *Document) NewPageContext() *pagedraw.DrawContext {
	return pagedraw.New(pagedraw.KindPage, d, d.fonts)
}

// NewFormXObjectContext returns a fresh KindFormXObject draw context
// (spec.md §4.7's new_form_xobject_context).
func (d *Document) NewFormXObjectContext() *pagedraw.DrawContext {
	return pagedraw.New(pagedraw.KindFormXObject, d, d.fonts)
}

// NewPatternContext returns a fresh KindPattern draw context, used to build
// the content stream of a tiling pattern (spec.md §4.7's
// new_pattern_context).
func (d *Document) NewPatternContext() *pagedraw.DrawContext {
	return pagedraw.New(pagedraw.KindPattern, d, d.fonts)
}

// NewTransparencyGroupContext returns a fresh KindTransparencyGroup draw
// context (spec.md §4.7's new_transparency_group_context).
func (d *Document) NewTransparencyGroupContext() *pagedraw.DrawContext {
	return pagedraw.New(pagedraw.KindTransparencyGroup, d, d.fonts)
}

// PageExtra carries page-level properties beyond the content stream itself;
// currently only its media box.
type PageExtra struct {
	MediaBox [4]float64
}

// AddPage implements spec.md §4.7's add_page: serializes ctx (which must be
// a KindPage context) and appends a new (resources, content, page) triple
// to the document's page list. The Pages root itself is a deferred object,
// materialized by the writer once every page has been added.
func (d *Document) AddPage(ctx *pagedraw.DrawContext, extra PageExtra) (core.ObjectID, error) {
	serialized, err := ctx.Serialize()
	if err != nil {
		return 0, err
	}

	contentID, err := d.addStream(core.MakeDict(), serialized.Content)
	if err != nil {
		return 0, err
	}

	pageDict := core.MakeDict()
	pageDict.Set("Type", core.MakeName("Page"))
	pageDict.Set("MediaBox", core.MakeArrayFromFloats(extra.MediaBox[:]))
	pageDict.Set("Contents", core.MakeRef(contentID))
	pageDict.Set("Resources", d.buildResourceDict(serialized.Usage))

	if annots := d.buildAnnotsArray(serialized.Annotations, serialized.Widgets); annots.Len() > 0 {
		pageDict.Set("Annots", annots)
	}

	pageID := d.reserve()
	d.setDeferred(pageID, func(doc *Document) (core.PdfObject, error) {
		pageDict.Set("Parent", core.MakeRef(doc.pagesRootID))
		return pageDict, nil
	})
	d.pageIDs = append(d.pageIDs, pageID)
	return pageID, nil
}

// buildResourceDict assembles a minimal /Resources dictionary from exactly
// the handles a draw context recorded using (spec.md §8: "lists exactly
// the subsets referenced by the page's content stream, and nothing else").
func (d *Document) buildResourceDict(usage pagedraw.ResourceUsage) *core.PdfObjectDictionary {
	res := core.MakeDict()

	if len(usage.Fonts) > 0 {
		fonts := core.MakeDict()
		for _, f := range usage.Fonts {
			fonts.Set(resourceKey("F", int(f)), core.MakeRef(d.fontFiles[f].dictID))
		}
		res.Set("Font", fonts)
	}

	if len(usage.XObjects) > 0 {
		xobjs := core.MakeDict()
		for _, x := range usage.XObjects {
			switch x.Kind {
			case handles.XObjectImage:
				xobjs.Set(resourceKey("Im", int(x.Image)), core.MakeRef(d.images[x.Image].id))
			case handles.XObjectForm:
				xobjs.Set(resourceKey("Fm", int(x.Form)), core.MakeRef(d.forms[x.Form]))
			case handles.XObjectGroup:
				xobjs.Set(resourceKey("Gr", int(x.Group)), core.MakeRef(d.groups[x.Group]))
			}
		}
		res.Set("XObject", xobjs)
	}

	if len(usage.GraphicsStates) > 0 {
		gstates := core.MakeDict()
		for _, g := range usage.GraphicsStates {
			gstates.Set(resourceKey("GS", int(g)), d.gstates[g])
		}
		res.Set("ExtGState", gstates)
	}

	if len(usage.Shadings) > 0 {
		shadings := core.MakeDict()
		for _, s := range usage.Shadings {
			shadings.Set(resourceKey("Sh", int(s)), core.MakeRef(d.shadings[s]))
		}
		res.Set("Shading", shadings)
	}

	if len(usage.Patterns) > 0 {
		patterns := core.MakeDict()
		for _, p := range usage.Patterns {
			patterns.Set(resourceKey("P", int(p)), core.MakeRef(d.patterns[p]))
		}
		res.Set("Pattern", patterns)
	}

	if len(usage.OptionalContent) > 0 {
		props := core.MakeDict()
		for _, o := range usage.OptionalContent {
			props.Set(resourceKey("OC", int(o)), core.MakeRef(d.ocgs[o]))
		}
		res.Set("Properties", props)
	}

	if len(usage.Labs) > 0 || len(usage.Separations) > 0 || len(usage.ICCProfiles) > 0 {
		spaces := core.MakeDict()
		for _, l := range usage.Labs {
			spaces.Set(resourceKey("Lab", int(l)), d.labColorSpaceObject(l))
		}
		for _, s := range usage.Separations {
			spaces.Set(resourceKey("Sep", int(s)), d.separationColorSpaceObject(s))
		}
		for _, p := range usage.ICCProfiles {
			spaces.Set(resourceKey("ICC", int(p)), d.iccColorSpaceObject(p))
		}
		res.Set("ColorSpace", spaces)
	}

	return res
}

func resourceKey(prefix string, n int) core.PdfObjectName {
	return core.PdfObjectName(prefix + strconv.Itoa(n))
}

func (d *Document) buildAnnotsArray(annos []handles.AnnotationId, widgets []handles.FormWidgetId) *core.PdfObjectArray {
	arr := core.MakeArray()
	for _, a := range annos {
		if objID, ok := d.annotations[a]; ok {
			arr.Append(core.MakeRef(objID))
		}
	}
	for _, w := range widgets {
		if objID, ok := d.widgets[w]; ok {
			arr.Append(core.MakeRef(objID))
		}
	}
	return arr
}
