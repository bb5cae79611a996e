/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package handles defines the opaque typed handles spec.md §3 describes:
// "Each typed handle (FontId, ImageId, …) is a distinct opaque wrapper
// around an integer index into the corresponding registry; handles are
// comparable/hashable but not interchangeable." They live in their own leaf
// package so that both pdfdoc (the registrar) and pagedraw (the builder
// that merely records which handles it used) can depend on them without a
// package cycle — pagedraw never needs the registries themselves, only the
// identity of what was referenced.
package handles

// FontId identifies a loaded font in the document's font registry.
type FontId int

// ImageId identifies an image stream.
type ImageId int

// GraphicsStateId identifies an extended graphics state dictionary.
type GraphicsStateId int

// FunctionId identifies a PDF function (Type 2 exponential or Type 3
// stitching).
type FunctionId int

// ShadingId identifies a shading dictionary (axial, radial, or mesh).
type ShadingId int

// PatternId identifies a shading or tiling pattern.
type PatternId int

// FormXObjectId identifies a form XObject produced by a form-XObject draw
// context.
type FormXObjectId int

// TransparencyGroupId identifies a transparency group XObject.
type TransparencyGroupId int

// OutlineId identifies a node in the document outline (bookmark) tree.
type OutlineId int

// StructureItemId identifies a node in the logical structure tree.
type StructureItemId int

// AnnotationId identifies an annotation dictionary.
type AnnotationId int

// FormWidgetId identifies a form field widget annotation (currently only
// checkboxes, per spec.md §4.7's create_form_checkbox).
type FormWidgetId int

// OptionalContentGroupId identifies an /OCG optional-content group.
type OptionalContentGroupId int

// EmbeddedFileId identifies an embedded file stream plus its filespec.
type EmbeddedFileId int

// ICCProfileId identifies an ICC profile stream registered with the
// document (as distinct from the document's default Gray/RGB/CMYK
// profiles, which are held directly by the color converter).
type ICCProfileId int

// LabId identifies an L*a*b* color space with document-specific white
// point / range parameters.
type LabId int

// SeparationId identifies a Separation color space (name + fallback
// function).
type SeparationId int

// Valid reports whether an id was actually issued (object numbers, and so
// handle indices, are assigned starting at 1; 0 is the reserved sentinel).
func (id FontId) Valid() bool                  { return id > 0 }
func (id ImageId) Valid() bool                 { return id > 0 }
func (id GraphicsStateId) Valid() bool         { return id > 0 }
func (id FunctionId) Valid() bool              { return id > 0 }
func (id ShadingId) Valid() bool               { return id > 0 }
func (id PatternId) Valid() bool               { return id > 0 }
func (id FormXObjectId) Valid() bool           { return id > 0 }
func (id TransparencyGroupId) Valid() bool     { return id > 0 }
func (id OutlineId) Valid() bool               { return id > 0 }
func (id StructureItemId) Valid() bool         { return id > 0 }
func (id AnnotationId) Valid() bool            { return id > 0 }
func (id FormWidgetId) Valid() bool            { return id > 0 }
func (id OptionalContentGroupId) Valid() bool  { return id > 0 }
func (id EmbeddedFileId) Valid() bool          { return id > 0 }
func (id ICCProfileId) Valid() bool            { return id > 0 }
func (id LabId) Valid() bool                   { return id > 0 }
func (id SeparationId) Valid() bool            { return id > 0 }

// XObjectKind distinguishes the three things the `Do` operator can draw.
type XObjectKind int

// The three drawable XObject kinds.
const (
	XObjectImage XObjectKind = iota
	XObjectForm
	XObjectGroup
)

// XObjectRef identifies one drawable XObject of any kind, so ResourceUsage
// can record Do-operator targets uniformly.
type XObjectRef struct {
	Kind  XObjectKind
	Image ImageId
	Form  FormXObjectId
	Group TransparencyGroupId
}

// ImageRef wraps an ImageId as an XObjectRef.
func ImageRef(id ImageId) XObjectRef { return XObjectRef{Kind: XObjectImage, Image: id} }

// FormRef wraps a FormXObjectId as an XObjectRef.
func FormRef(id FormXObjectId) XObjectRef { return XObjectRef{Kind: XObjectForm, Form: id} }

// GroupRef wraps a TransparencyGroupId as an XObjectRef.
func GroupRef(id TransparencyGroupId) XObjectRef { return XObjectRef{Kind: XObjectGroup, Group: id} }

// Capabilities is the minimal read-only surface a draw context needs from
// the generator: whether document-level prerequisites for certain
// operators are satisfied. This is the "generator lookup" spec.md §4.3
// mentions for e.g. rejecting a CMYK operator with NoCmykProfile when no
// CMYK profile was declared.
type Capabilities interface {
	HasCMYKProfile() bool
}
