/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package pdfdoc is the document object model (spec.md §4.7, §4.8): the
// registrar for every typed resource a document can hold, the assigner of
// dense object numbers, and the resolver of deferred entries that package
// pdfwrite serializes into PDF bytes. Grounded on the teacher's model package (the
// PdfFont/PdfImage/PdfOutline/PdfStructTreeRoot family of registrar types)
// and model/writer.go's object-then-xref-then-trailer pass, generalized
// from "traverse an object graph read from a file" to "assign handles as
// the caller builds, then resolve deferred entries in one pass."
package pdfdoc

import (
	"github.com/quillpdf/quill/common"
	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/fontsub"
	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/iccolor"
	"github.com/quillpdf/quill/perr"
)

// Version identifies the PDF version header the writer emits (spec.md
// §4.8: "%PDF-1.7" or 2.0).
type Version int

// The two PDF versions quill can target.
const (
	Version17 Version = iota
	Version20
)

// Properties configures document-wide writer behavior (spec.md §4.1's
// "compress streams", §4.8's object-stream/xref-stream choice).
type Properties struct {
	Version           Version
	CompressStreams   bool
	UseObjectStreams  bool
	OutputIntent      *iccolor.OutputIntent
	Conformance       Conformance
	SourceDateEpoch   int64 // not read by pdfwrite.Write, which takes the epoch as its own argument
}

// Conformance names the PDF-A/PDF-X conformance level the document targets,
// if any (spec.md §4.6's output-intent enforcement; supplemented PDF-A/X
// section in SPEC_FULL.md).
type Conformance int

// The conformance levels quill recognizes; ConformanceNone disables
// output-intent enforcement entirely.
const (
	ConformanceNone Conformance = iota
	ConformancePDFA2B
	ConformancePDFA3B
	ConformancePDFX4
)

// entryState tags which of the three registry-entry variants spec.md §4.8
// describes an object is.
type entryState int

const (
	stateFull entryState = iota
	stateDeflate
	stateDeferred
)

// registryEntry is one slot in the document's dense object-number space.
// Full/Deflate entries already hold their final object; Deferred entries
// hold a builder that is only materialized when Write runs, so that
// forward references (a page referencing an annotation created later) can
// resolve.
type registryEntry struct {
	id    core.ObjectID
	state entryState
	obj   core.PdfObject             // set for Full
	raw   []byte                     // set for Deflate (pre-compression bytes)
	build func(*Document) (core.PdfObject, error) // set for Deferred
}

// Document is the registrar for every typed resource spec.md §4.7 names;
// pdfwrite.Write serializes it (§4.8). It is not safe for
// concurrent mutation (spec.md §5).
type Document struct {
	props Properties

	entries []registryEntry
	nextID  core.ObjectID

	fonts      *fontsub.Registry
	fontFiles  map[handles.FontId]*fontEntry
	images     map[handles.ImageId]*imageEntry
	gstates    map[handles.GraphicsStateId]*core.PdfObjectDictionary
	functions  map[handles.FunctionId]core.ObjectID
	shadings   map[handles.ShadingId]core.ObjectID
	patterns   map[handles.PatternId]core.ObjectID
	forms      map[handles.FormXObjectId]core.ObjectID
	groups     map[handles.TransparencyGroupId]core.ObjectID
	outlines   map[handles.OutlineId]*outlineNode
	structure  map[handles.StructureItemId]*structureNode
	annotations map[handles.AnnotationId]core.ObjectID
	widgets    map[handles.FormWidgetId]core.ObjectID
	ocgs       map[handles.OptionalContentGroupId]core.ObjectID
	embeds     map[handles.EmbeddedFileId]core.ObjectID
	iccProfiles map[handles.ICCProfileId]*iccProfileEntry
	labs       map[handles.LabId]labSpace
	separations map[handles.SeparationId]separationSpace

	color *iccolor.Pipeline

	pagesRootID core.ObjectID
	pageIDs     []core.ObjectID
	rolemap     map[string]string

	rootID core.ObjectID
	infoID core.ObjectID

	written bool
}

// RootID returns the document catalog's object number, valid after
// Finalize.
func (d *Document) RootID() core.ObjectID { return d.rootID }

// InfoID returns the Info dictionary's object number, valid after
// Finalize.
func (d *Document) InfoID() core.ObjectID { return d.infoID }

// Properties returns the document's writer-configuration properties.
func (d *Document) Properties() Properties { return d.props }

// MarkWritten enforces spec.md §4.8's "permitted to be called exactly once
// per generator" rule; the writer calls this before emitting any bytes.
func (d *Document) MarkWritten() error {
	if d.written {
		return perr.New(perr.WritingTwice, "writer invoked twice for this document")
	}
	d.written = true
	return nil
}

// Entries returns every registry entry with its deferred builder already
// resolved, in assignment order, ready for pdfwrite to serialize. Entries
// may only be called after Finalize.
func (d *Document) Entries() ([]Entry, error) {
	out := make([]Entry, 0, len(d.entries))
	for i := 0; i < len(d.entries); i++ {
		e := d.entries[i]
		switch e.state {
		case stateDeferred:
			obj, err := e.build(d)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{ID: e.id, Object: obj})
		default:
			out = append(out, Entry{ID: e.id, Object: e.obj})
		}
	}
	return out, nil
}

// New creates an empty document registrar. color supplies the document's
// default Gray/RGB/CMYK profiles and is consulted by every draw context
// this document creates (handles.Capabilities).
func New(props Properties, color *iccolor.Pipeline) *Document {
	d := &Document{
		props:       props,
		fontFiles:   map[handles.FontId]*fontEntry{},
		images:      map[handles.ImageId]*imageEntry{},
		gstates:     map[handles.GraphicsStateId]*core.PdfObjectDictionary{},
		functions:   map[handles.FunctionId]core.ObjectID{},
		shadings:    map[handles.ShadingId]core.ObjectID{},
		patterns:    map[handles.PatternId]core.ObjectID{},
		forms:       map[handles.FormXObjectId]core.ObjectID{},
		groups:      map[handles.TransparencyGroupId]core.ObjectID{},
		outlines:    map[handles.OutlineId]*outlineNode{},
		structure:   map[handles.StructureItemId]*structureNode{},
		annotations: map[handles.AnnotationId]core.ObjectID{},
		widgets:     map[handles.FormWidgetId]core.ObjectID{},
		ocgs:        map[handles.OptionalContentGroupId]core.ObjectID{},
		embeds:      map[handles.EmbeddedFileId]core.ObjectID{},
		iccProfiles: map[handles.ICCProfileId]*iccProfileEntry{},
		labs:        map[handles.LabId]labSpace{},
		separations: map[handles.SeparationId]separationSpace{},
		rolemap:     map[string]string{},
		color:       color,
		fonts:       fontsub.NewRegistry(),
	}
	// Object number 0 is reserved (spec.md §3); the first call to nextObjectID
	// returns 1.
	d.nextID = 1
	return d
}

// HasCMYKProfile implements handles.Capabilities.
func (d *Document) HasCMYKProfile() bool { return d.color.HasCMYKProfile() }

// GlyphFeeder exposes the document's font registry to newly created draw
// contexts.
func (d *Document) GlyphFeeder() *fontsub.Registry { return d.fonts }

func (d *Document) nextObjectID() core.ObjectID {
	id := d.nextID
	d.nextID++
	return id
}

// reserve allocates an object number without yet providing its content —
// used for the deferred-object pattern (spec.md §4.7: "The Pages root is a
// deferred object and is materialized last").
func (d *Document) reserve() core.ObjectID {
	id := d.nextObjectID()
	d.entries = append(d.entries, registryEntry{id: id, state: stateDeferred})
	return id
}

// setDeferred attaches a builder to a previously reserved object number.
func (d *Document) setDeferred(id core.ObjectID, build func(*Document) (core.PdfObject, error)) {
	for i := range d.entries {
		if d.entries[i].id == id {
			d.entries[i].build = build
			return
		}
	}
	common.Log.Debug("setDeferred: object %d was never reserved", id)
}

// addFull registers a fully-built object, assigning it the next object
// number.
func (d *Document) addFull(obj core.PdfObject) core.ObjectID {
	id := d.nextObjectID()
	d.entries = append(d.entries, registryEntry{id: id, state: stateFull, obj: obj})
	return id
}

// addStream registers a stream object, deflating it first when
// Properties.CompressStreams is set (spec.md §4.8's Deflate variant).
func (d *Document) addStream(dict *core.PdfObjectDictionary, data []byte) (core.ObjectID, error) {
	if d.props.CompressStreams {
		compressed, err := compressFor(dict, data)
		if err != nil {
			return 0, err
		}
		return d.addFull(compressed), nil
	}
	dict.Set("Length", core.MakeInteger(int64(len(data))))
	return d.addFull(&core.PdfObjectStream{PdfObjectDictionary: dict, Stream: data}), nil
}

func compressFor(dict *core.PdfObjectDictionary, data []byte) (*core.PdfObjectStream, error) {
	s, err := core.NewDeflateStream(data)
	if err != nil {
		return nil, perr.Wrap(perr.CompressionFailure, err, "compressing stream")
	}
	for _, k := range dict.Keys() {
		s.Set(k, dict.Get(k))
	}
	return s, nil
}

type labSpace struct {
	whiteX, whiteY, whiteZ float64
	rangeMin, rangeMax     [2]float64
}

type iccProfileEntry struct {
	profile *iccolor.Profile
	objID   core.ObjectID
}

type separationSpace struct {
	name      string
	alternate *core.PdfObjectName
	fallback  handles.FunctionId
}
