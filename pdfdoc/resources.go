/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/iccolor"
	"github.com/quillpdf/quill/pagedraw"
	"github.com/quillpdf/quill/perr"
)

// GraphicsStateParams configures an extended graphics-state dictionary
// (spec.md §4.7's add_graphics_state: "dedup is not required").
type GraphicsStateParams struct {
	StrokeAlpha *float64
	FillAlpha   *float64
	BlendMode   string
}

// AddGraphicsState registers an /ExtGState dictionary. Unlike most of the
// registry, no deduplication is performed: callers that want to reuse a
// state keep their own handle.
func (d *Document) AddGraphicsState(p GraphicsStateParams) handles.GraphicsStateId {
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("ExtGState"))
	if p.StrokeAlpha != nil {
		dict.Set("CA", core.MakeFloat(*p.StrokeAlpha))
	}
	if p.FillAlpha != nil {
		dict.Set("ca", core.MakeFloat(*p.FillAlpha))
	}
	if p.BlendMode != "" {
		dict.Set("BM", core.MakeName(p.BlendMode))
	}
	id := handles.GraphicsStateId(len(d.gstates) + 1)
	d.gstates[id] = dict
	return id
}

// FunctionSpec is the tagged union add_function accepts: currently
// FunctionType2 (exponential interpolation) and FunctionType3 (stitching),
// per spec.md §4.7.
type FunctionSpec struct {
	// Domain is shared by both function types.
	Domain []float64

	// Type2 fields.
	IsType2    bool
	C0, C1     []float64
	N          float64

	// Type3 fields.
	Functions []handles.FunctionId
	Bounds    []float64
	Encode    []float64
}

// AddFunction registers a Type 2 or Type 3 PDF function object.
func (d *Document) AddFunction(spec FunctionSpec) handles.FunctionId {
	dict := core.MakeDict()
	dict.Set("Domain", core.MakeArrayFromFloats(spec.Domain))
	if spec.IsType2 {
		dict.Set("FunctionType", core.MakeInteger(2))
		dict.Set("C0", core.MakeArrayFromFloats(spec.C0))
		dict.Set("C1", core.MakeArrayFromFloats(spec.C1))
		dict.Set("N", core.MakeFloat(spec.N))
	} else {
		dict.Set("FunctionType", core.MakeInteger(3))
		fns := core.MakeArray()
		for _, f := range spec.Functions {
			fns.Append(core.MakeRef(d.functions[f]))
		}
		dict.Set("Functions", fns)
		dict.Set("Bounds", core.MakeArrayFromFloats(spec.Bounds))
		dict.Set("Encode", core.MakeArrayFromFloats(spec.Encode))
	}
	objID := d.addFull(dict)
	id := handles.FunctionId(len(d.functions) + 1)
	d.functions[id] = objID
	return id
}

// ShadingKind distinguishes the four shading types spec.md §4.7 names.
type ShadingKind int

// The four shading kinds quill can emit.
const (
	ShadingAxial ShadingKind = iota
	ShadingRadial
	ShadingGouraud // PDF ShadingType 4
	ShadingTensor  // PDF ShadingType 6
)

// MeshVertex is one vertex of a Gouraud (type 4) or tensor (type 6) mesh
// shading, in the "start strip / continue" edge-flag encoding spec.md
// §4.7 describes.
type MeshVertex struct {
	EdgeFlag byte // 0 starts a new triangle, 1/2 continue the strip
	X, Y     float64
	Color    []float64
}

// ShadingSpec configures add_shading.
type ShadingSpec struct {
	Kind        ShadingKind
	ColorSpace  *core.PdfObjectName
	Function    handles.FunctionId
	Coords      []float64 // axial: [x0 y0 x1 y1]; radial: [x0 y0 r0 x1 y1 r1]
	Vertices    []MeshVertex
	BitsPerCoord, BitsPerComponent, BitsPerFlag int
}

// AddShading registers an axial, radial, or mesh shading dictionary. Mesh
// shadings (type 4/6) are encoded as a stream: one packed record per
// vertex, 8-bit edge flag followed by fixed-point x/y and per-component
// color, per spec.md §4.7.
func (d *Document) AddShading(spec ShadingSpec) (handles.ShadingId, error) {
	dict := core.MakeDict()
	dict.Set("ColorSpace", spec.ColorSpace)
	if spec.Function.Valid() {
		dict.Set("Function", core.MakeRef(d.functions[spec.Function]))
	}

	var objID core.ObjectID
	switch spec.Kind {
	case ShadingAxial:
		dict.Set("ShadingType", core.MakeInteger(2))
		dict.Set("Coords", core.MakeArrayFromFloats(spec.Coords))
		objID = d.addFull(dict)
	case ShadingRadial:
		dict.Set("ShadingType", core.MakeInteger(3))
		dict.Set("Coords", core.MakeArrayFromFloats(spec.Coords))
		objID = d.addFull(dict)
	case ShadingGouraud, ShadingTensor:
		typeNum := 4
		if spec.Kind == ShadingTensor {
			typeNum = 6
		}
		dict.Set("ShadingType", core.MakeInteger(int64(typeNum)))
		bpc := spec.BitsPerComponent
		if bpc == 0 {
			bpc = 8
		}
		bpcoord := spec.BitsPerCoord
		if bpcoord == 0 {
			bpcoord = 16
		}
		bpf := spec.BitsPerFlag
		if bpf == 0 {
			bpf = 8
		}
		dict.Set("BitsPerCoordinate", core.MakeInteger(int64(bpcoord)))
		dict.Set("BitsPerComponent", core.MakeInteger(int64(bpc)))
		dict.Set("BitsPerFlag", core.MakeInteger(int64(bpf)))
		dict.Set("Decode", core.MakeArrayFromFloats(meshDecodeArray(spec)))
		var err error
		objID, err = d.addStream(dict, encodeMeshVertices(spec))
		if err != nil {
			return 0, err
		}
	}

	id := handles.ShadingId(len(d.shadings) + 1)
	d.shadings[id] = objID
	return id, nil
}

func meshDecodeArray(spec ShadingSpec) []float64 {
	decode := []float64{0, 1, 0, 1}
	ncomp := 3
	if len(spec.Vertices) > 0 {
		ncomp = len(spec.Vertices[0].Color)
	}
	for i := 0; i < ncomp; i++ {
		decode = append(decode, 0, 1)
	}
	return decode
}

func encodeMeshVertices(spec ShadingSpec) []byte {
	var out []byte
	for _, v := range spec.Vertices {
		out = append(out, v.EdgeFlag)
		out = append(out, packFixed16(v.X)...)
		out = append(out, packFixed16(v.Y)...)
		for _, c := range v.Color {
			out = append(out, byte(clampByte(c)))
		}
	}
	return out
}

func packFixed16(v float64) []byte {
	scaled := uint16(clampByte(v) / 255 * 65535)
	return []byte{byte(scaled >> 8), byte(scaled)}
}

func clampByte(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v * 255
}

// PatternSpec configures add_pattern: either a shading pattern (Shading
// is set, Tiling is nil) or a tiling pattern (built from a draw
// context's serialized content, as spec.md §4.7's "inherits the context's
// resource dict" describes).
type PatternSpec struct {
	Shading handles.ShadingId
	Tiling  *pagedraw.Serialized
	Matrix  [6]float64
	XStep, YStep float64
}

// AddPattern registers a shading or tiling pattern dictionary.
func (d *Document) AddPattern(spec PatternSpec) (handles.PatternId, error) {
	dict := core.MakeDict()
	dict.Set("Matrix", core.MakeArrayFromFloats(spec.Matrix[:]))

	var objID core.ObjectID
	if spec.Tiling != nil {
		dict.Set("Type", core.MakeName("Pattern"))
		dict.Set("PatternType", core.MakeInteger(1))
		dict.Set("PaintType", core.MakeInteger(1))
		dict.Set("TilingType", core.MakeInteger(1))
		dict.Set("BBox", core.MakeArrayFromFloats(spec.Tiling.BBox[:]))
		dict.Set("XStep", core.MakeFloat(spec.XStep))
		dict.Set("YStep", core.MakeFloat(spec.YStep))
		dict.Set("Resources", d.buildResourceDict(spec.Tiling.Usage))
		var err error
		objID, err = d.addStream(dict, spec.Tiling.Content)
		if err != nil {
			return 0, err
		}
	} else {
		dict.Set("Type", core.MakeName("Pattern"))
		dict.Set("PatternType", core.MakeInteger(2))
		dict.Set("Shading", core.MakeRef(d.shadings[spec.Shading]))
		objID = d.addFull(dict)
	}

	id := handles.PatternId(len(d.patterns) + 1)
	d.patterns[id] = objID
	return id, nil
}

// AddFormXObject registers a finished KindFormXObject draw context as a
// reusable /Form XObject, reachable from any later draw context via
// handles.FormRef.
func (d *Document) AddFormXObject(ctx pagedraw.Serialized) (handles.FormXObjectId, error) {
	if ctx.Kind != pagedraw.KindFormXObject {
		return 0, perr.New(perr.WrongDrawContext, "AddFormXObject requires a KindFormXObject context")
	}
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("XObject"))
	dict.Set("Subtype", core.MakeName("Form"))
	dict.Set("BBox", core.MakeArrayFromFloats(ctx.BBox[:]))
	dict.Set("Resources", d.buildResourceDict(ctx.Usage))

	objID, err := d.addStream(dict, ctx.Content)
	if err != nil {
		return 0, err
	}
	id := handles.FormXObjectId(len(d.forms) + 1)
	d.forms[id] = objID
	return id, nil
}

// TransparencyGroupExtra carries the optional /I (isolated), /K
// (knockout), and /CS entries spec.md §4.7 names.
type TransparencyGroupExtra struct {
	Isolated bool
	Knockout bool
	ColorSpace *core.PdfObjectName
}

// AddTransparencyGroup registers a transparency-group form XObject from a
// finished KindTransparencyGroup draw context.
func (d *Document) AddTransparencyGroup(ctx pagedraw.Serialized, extra TransparencyGroupExtra) (handles.TransparencyGroupId, error) {
	if ctx.Kind != pagedraw.KindTransparencyGroup {
		return 0, perr.New(perr.WrongDrawContext, "AddTransparencyGroup requires a KindTransparencyGroup context")
	}
	group := core.MakeDict()
	group.Set("Type", core.MakeName("Group"))
	group.Set("S", core.MakeName("Transparency"))
	group.Set("I", core.MakeBool(extra.Isolated))
	group.Set("K", core.MakeBool(extra.Knockout))
	if extra.ColorSpace != nil {
		group.Set("CS", extra.ColorSpace)
	}

	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("XObject"))
	dict.Set("Subtype", core.MakeName("Form"))
	dict.Set("BBox", core.MakeArrayFromFloats(ctx.BBox[:]))
	dict.Set("Group", group)
	dict.Set("Resources", d.buildResourceDict(ctx.Usage))

	objID, err := d.addStream(dict, ctx.Content)
	if err != nil {
		return 0, err
	}
	id := handles.TransparencyGroupId(len(d.groups) + 1)
	d.groups[id] = objID
	return id, nil
}

// AddLabColorspace registers an L*a*b* color space with document-specific
// white point and a*/b* range (spec.md §3's Lab color variant, supplemented
// per SPEC_FULL.md §3).
func (d *Document) AddLabColorspace(whiteX, whiteY, whiteZ float64, aMin, aMax, bMin, bMax float64) handles.LabId {
	id := handles.LabId(len(d.labs) + 1)
	d.labs[id] = labSpace{
		whiteX: whiteX, whiteY: whiteY, whiteZ: whiteZ,
		rangeMin: [2]float64{aMin, bMin},
		rangeMax: [2]float64{aMax, bMax},
	}
	return id
}

func (d *Document) labColorSpaceObject(id handles.LabId) *core.PdfObjectArray {
	space := d.labs[id]
	dict := core.MakeDict()
	dict.Set("WhitePoint", core.MakeArrayFromFloats([]float64{space.whiteX, space.whiteY, space.whiteZ}))
	dict.Set("Range", core.MakeArrayFromFloats([]float64{space.rangeMin[0], space.rangeMax[0], space.rangeMin[1], space.rangeMax[1]}))
	return core.MakeArray(core.MakeName("Lab"), dict)
}

// CreateSeparation registers a Separation color space with a tint-transform
// function and an alternate color space (spec.md §3/SPEC_FULL.md §3's
// create_separation).
func (d *Document) CreateSeparation(name string, alternate *core.PdfObjectName, transform handles.FunctionId) handles.SeparationId {
	id := handles.SeparationId(len(d.separations) + 1)
	d.separations[id] = separationSpace{name: name, alternate: alternate, fallback: transform}
	return id
}

// separationColorSpaceObject builds the `[/Separation name alternate
// tintTransform]` array PDF32000 8.6.6.4 requires, referenced wherever a
// pcolor.Color of Space Separation is painted with.
func (d *Document) separationColorSpaceObject(id handles.SeparationId) *core.PdfObjectArray {
	sep := d.separations[id]
	return core.MakeArray(
		core.MakeName("Separation"),
		core.MakeName(sep.name),
		sep.alternate,
		core.MakeRef(d.functions[sep.fallback]),
	)
}

// LoadICCFile registers an ICC profile read from disk bytes, validating it
// against want's channel count.
func (d *Document) LoadICCFile(data []byte, want iccolor.Space) (handles.ICCProfileId, error) {
	profile, err := iccolor.Open(data, want)
	if err != nil {
		return 0, err
	}
	return d.AddICCProfile(profile)
}

// numComponentsForSpace mirrors iccolor's private channel-count table,
// needed here to populate an /ICCBased stream's /N entry.
func numComponentsForSpace(s iccolor.Space) int64 {
	switch s {
	case iccolor.SpaceGray:
		return 1
	case iccolor.SpaceCMYK:
		return 4
	default:
		return 3
	}
}

// AddICCProfile registers an already-opened ICC profile as an /ICCBased
// stream object, ready to be referenced from a page's /ColorSpace resources.
func (d *Document) AddICCProfile(p *iccolor.Profile) (handles.ICCProfileId, error) {
	dict := core.MakeDict()
	dict.Set("N", core.MakeInteger(numComponentsForSpace(p.Space())))
	objID, err := d.addStream(dict, p.Bytes())
	if err != nil {
		return 0, err
	}
	id := handles.ICCProfileId(len(d.iccProfiles) + 1)
	d.iccProfiles[id] = &iccProfileEntry{profile: p, objID: objID}
	return id, nil
}

func (d *Document) iccColorSpaceObject(id handles.ICCProfileId) *core.PdfObjectArray {
	return core.MakeArray(core.MakeName("ICCBased"), core.MakeRef(d.iccProfiles[id].objID))
}

// AddOptionalContentGroup registers an /OCG dictionary (supplemented
// feature per SPEC_FULL.md §3: named in spec.md §6's API shape but not
// designed there).
func (d *Document) AddOptionalContentGroup(name string) handles.OptionalContentGroupId {
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("OCG"))
	dict.Set("Name", core.MakeString(name))
	objID := d.addFull(dict)
	id := handles.OptionalContentGroupId(len(d.ocgs) + 1)
	d.ocgs[id] = objID
	return id
}

// EmbedFile registers an embedded-file stream plus its filespec (supplemented
// feature per SPEC_FULL.md §3), reachable from the document's
// /Names /EmbeddedFiles tree at write time.
func (d *Document) EmbedFile(name string, mimeType string, data []byte) (handles.EmbeddedFileId, error) {
	streamDict := core.MakeDict()
	streamDict.Set("Type", core.MakeName("EmbeddedFile"))
	if mimeType != "" {
		streamDict.Set("Subtype", core.MakeName(mimeType))
	}
	streamID, err := d.addStream(streamDict, data)
	if err != nil {
		return 0, err
	}

	ef := core.MakeDict()
	ef.Set("F", core.MakeRef(streamID))
	filespec := core.MakeDict()
	filespec.Set("Type", core.MakeName("Filespec"))
	filespec.Set("F", core.MakeString(name))
	filespec.Set("EF", ef)
	fsID := d.addFull(filespec)

	id := handles.EmbeddedFileId(len(d.embeds) + 1)
	d.embeds[id] = fsID
	return id, nil
}

// AddRolemapEntry threads a custom structure-type role name into the
// structure tree root's /RoleMap (supplemented feature per SPEC_FULL.md §3).
func (d *Document) AddRolemapEntry(customType, standardType string) {
	d.rolemap[customType] = standardType
}
