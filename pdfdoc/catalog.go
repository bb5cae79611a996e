/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"strconv"

	"github.com/quillpdf/quill/common"
	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/pdfa"
	"github.com/quillpdf/quill/perr"
)

// Info carries the document-information dictionary fields spec.md §6 lists
// under "Document properties."
type Info struct {
	Title, Author, Creator, Producer, Language string
	CreationDate, ModDate string // pre-formatted PDF date strings; the caller resolves SOURCE_DATE_EPOCH
}

// Entry is one object pdfwrite must emit: an assigned number plus its
// now-fully-resolved PdfObject. Returned by Finalize via Entries.
type Entry struct {
	ID     core.ObjectID
	Object core.PdfObject
}

// Finalize materializes every deferred registry entry (the Pages root,
// fonts, outlines, structure items, …) and builds the document catalog and
// info dictionary. It must be called exactly once, before Entries, by the
// writer.
func (d *Document) Finalize(info Info) error {
	if info.Producer == "" {
		info.Producer = "quill " + common.Version
	}
	if err := d.materializePagesRoot(); err != nil {
		return err
	}

	catalog := core.MakeDict()
	catalog.Set("Type", core.MakeName("Catalog"))
	catalog.Set("Pages", core.MakeRef(d.pagesRootID))
	if root := d.structureTreeRoot(); root != nil {
		catalog.Set("StructTreeRoot", root)
	}
	if props := d.ocPropertiesDict(); props != nil {
		catalog.Set("OCProperties", props)
	}
	if names := d.namesDict(); names != nil {
		catalog.Set("Names", names)
	}
	if len(d.outlines) > 0 {
		if root, ok := d.outlineRootRef(); ok {
			catalog.Set("Outlines", root)
		}
	}
	if d.props.Conformance != ConformanceNone {
		metaID, err := d.metadataStream(info)
		if err != nil {
			return err
		}
		if metaID != 0 {
			catalog.Set("Metadata", core.MakeRef(metaID))
		}
		intent, err := d.outputIntentDict()
		if err != nil {
			return err
		}
		if intent != nil {
			catalog.Set("OutputIntents", core.MakeArray(intent))
		}
	}
	rootID := d.addFull(catalog)

	infoDict := core.MakeDict()
	if info.Title != "" {
		infoDict.Set("Title", core.MakeString(info.Title))
	}
	if info.Author != "" {
		infoDict.Set("Author", core.MakeString(info.Author))
	}
	if info.Creator != "" {
		infoDict.Set("Creator", core.MakeString(info.Creator))
	}
	if info.Producer != "" {
		infoDict.Set("Producer", core.MakeString(info.Producer))
	}
	if info.CreationDate != "" {
		infoDict.Set("CreationDate", core.MakeString(info.CreationDate))
	}
	if info.ModDate != "" {
		infoDict.Set("ModDate", core.MakeString(info.ModDate))
	}
	infoID := d.addFull(infoDict)

	d.rootID = rootID
	d.infoID = infoID
	return nil
}

// materializePagesRoot builds the /Pages tree root referencing every page
// added via AddPage (spec.md §4.7: "The Pages root is a deferred object
// and is materialized last").
func (d *Document) materializePagesRoot() error {
	id := d.reserve()
	d.pagesRootID = id
	kids := core.MakeArray()
	for _, pid := range d.pageIDs {
		kids.Append(core.MakeRef(pid))
	}
	d.setDeferred(id, func(doc *Document) (core.PdfObject, error) {
		dict := core.MakeDict()
		dict.Set("Type", core.MakeName("Pages"))
		dict.Set("Kids", kids)
		dict.Set("Count", core.MakeInteger(int64(len(doc.pageIDs))))
		return dict, nil
	})
	return nil
}

func (d *Document) structureTreeRoot() core.PdfObject {
	if len(d.structure) == 0 {
		return nil
	}
	root := core.MakeDict()
	root.Set("Type", core.MakeName("StructTreeRoot"))
	kids := core.MakeArray()
	for id, n := range d.structure {
		if !n.parent.Valid() {
			kids.Append(core.MakeRef(d.structure[id].objID))
		}
	}
	root.Set("K", kids)
	if len(d.rolemap) > 0 {
		rm := core.MakeDict()
		for custom, std := range d.rolemap {
			rm.Set(core.PdfObjectName(custom), core.MakeName(std))
		}
		root.Set("RoleMap", rm)
	}
	return root
}

func (d *Document) ocPropertiesDict() core.PdfObject {
	if len(d.ocgs) == 0 {
		return nil
	}
	all := core.MakeArray()
	for _, objID := range d.ocgs {
		all.Append(core.MakeRef(objID))
	}
	dict := core.MakeDict()
	dict.Set("OCGs", all)
	def := core.MakeDict()
	def.Set("ON", all)
	dict.Set("D", def)
	return dict
}

func (d *Document) namesDict() core.PdfObject {
	if len(d.embeds) == 0 {
		return nil
	}
	names := core.MakeArray()
	i := 1
	for _, objID := range d.embeds {
		names.Append(core.MakeString("file" + strconv.Itoa(i)))
		names.Append(core.MakeRef(objID))
		i++
	}
	tree := core.MakeDict()
	tree.Set("Names", names)
	ef := core.MakeDict()
	ef.Set("EmbeddedFiles", tree)
	return ef
}

// pdfaLevel maps the document's Conformance onto pdfa.Level, which stays
// decoupled from pdfdoc so pdfa never imports it back.
func (d *Document) pdfaLevel() pdfa.Level {
	switch d.props.Conformance {
	case ConformancePDFA2B:
		return pdfa.LevelPDFA2B
	case ConformancePDFA3B:
		return pdfa.LevelPDFA3B
	case ConformancePDFX4:
		return pdfa.LevelPDFX4
	default:
		return pdfa.LevelNone
	}
}

// metadataStream builds the document's /Metadata XMP packet (spec.md §6,
// SPEC_FULL.md's PDF-A/PDF-X section) and registers it as a stream object.
// Returns 0, nil when the document declares no conformance level.
func (d *Document) metadataStream(info Info) (core.ObjectID, error) {
	xml, err := pdfa.BuildMetadata(d.pdfaLevel(), pdfa.Metadata{
		Title:    info.Title,
		Author:   info.Author,
		Producer: info.Producer,
		Creator:  info.Creator,
	})
	if err != nil {
		return 0, err
	}
	if xml == nil {
		return 0, nil
	}
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("Metadata"))
	dict.Set("Subtype", core.MakeName("XML"))
	return d.addStream(dict, xml)
}

// outputIntentDict builds the /OutputIntent dictionary spec.md §4.6
// requires when a conformance level is declared, embedding the document's
// ICC destination profile if one was registered.
func (d *Document) outputIntentDict() (*core.PdfObjectDictionary, error) {
	intent := d.props.OutputIntent
	if intent == nil {
		return nil, perr.New(perr.OutputIntentMissing, "conformance level declared without an output intent")
	}

	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("OutputIntent"))
	if d.props.Conformance == ConformancePDFX4 {
		dict.Set("S", core.MakeName("GTS_PDFX"))
	} else {
		dict.Set("S", core.MakeName("GTS_PDFA1"))
	}
	if intent.Identifier != "" {
		dict.Set("OutputConditionIdentifier", core.MakeString(intent.Identifier))
	}
	if intent.Condition != "" {
		dict.Set("OutputCondition", core.MakeString(intent.Condition))
	}
	if intent.RegistryURL != "" {
		dict.Set("RegistryName", core.MakeString(intent.RegistryURL))
	}
	if intent.Profile != nil {
		profDict := core.MakeDict()
		profDict.Set("N", core.MakeInteger(numComponentsForSpace(intent.Profile.Space())))
		profID, err := d.addStream(profDict, intent.Profile.Bytes())
		if err != nil {
			return nil, err
		}
		dict.Set("DestOutputProfile", core.MakeRef(profID))
	}
	return dict, nil
}

func (d *Document) outlineRootRef() (core.PdfObject, bool) {
	var first, last *outlineNode
	count := 0
	for _, n := range d.outlines {
		if n.parent.Valid() {
			continue
		}
		count++
		if first == nil || n.id < first.id {
			first = n
		}
		if last == nil || n.id > last.id {
			last = n
		}
	}
	if first == nil {
		return nil, false
	}
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("Outlines"))
	dict.Set("First", core.MakeRef(first.objID))
	dict.Set("Last", core.MakeRef(last.objID))
	dict.Set("Count", core.MakeInteger(int64(count)))
	return dict, true
}
