/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/fontsub"
	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/perr"
)

// fontEntry tracks one loaded font: its subset-in-progress and the object
// number reserved for its Type0/CIDFontType2 dictionary, materialized at
// write time once every glyph the document will ever draw has been fed
// through the subsetter (spec.md §4.5, §4.7's load_font).
type fontEntry struct {
	subset   *fontsub.Subset
	dictID   core.ObjectID
	baseName string
}

// LoadFont parses a TrueType/OTF font file and registers an empty subset
// for it, lazily populated as glyphs are requested during drawing (spec.md
// §4.7: "parse, store; subsetter is lazily populated as glyphs are
// requested").
func (d *Document) LoadFont(data []byte, baseName string) (handles.FontId, error) {
	subset, err := fontsub.Parse(data)
	if err != nil {
		return 0, err
	}
	id := handles.FontId(len(d.fontFiles) + 1)
	dictID := d.reserve()
	d.fontFiles[id] = &fontEntry{subset: subset, dictID: dictID, baseName: baseName}
	d.fonts.Register(id, subset)
	d.setDeferred(dictID, func(doc *Document) (core.PdfObject, error) {
		return doc.buildFontDict(id)
	})
	return id, nil
}

// UTF8TextWidth implements spec.md §4.7's utf8_text_width query: the total
// advance, in text-space units at pointSize, of text shaped with font as a
// naive one-codepoint-per-glyph run (no kerning, no ligature substitution —
// those are the text builder's job when actually drawing). Each codepoint is
// resolved through the font's subset, so every glyph measured here is added
// to the subset just as if it had been drawn.
func (d *Document) UTF8TextWidth(font handles.FontId, text string, pointSize float64) (float64, error) {
	entry, ok := d.fontFiles[font]
	if !ok {
		return 0, perr.Errorf(perr.FontNotSpecified, "no font registered for handle %d", int(font))
	}
	var total float64
	upm := float64(entry.subset.UnitsPerEm())
	if upm == 0 {
		upm = 1000
	}
	for _, r := range text {
		idx, err := entry.subset.GetGlyphSubset(r, nil)
		if err != nil {
			return 0, err
		}
		adv, _ := entry.subset.GlyphAdvance(idx)
		total += float64(adv) / upm * pointSize
	}
	return total, nil
}

// GlyphAdvance implements spec.md §4.7's glyph_advance query: the advance
// width, in text-space units at pointSize, of the single glyph that
// codepoint maps to.
func (d *Document) GlyphAdvance(font handles.FontId, pointSize float64, codepoint rune) (float64, error) {
	entry, ok := d.fontFiles[font]
	if !ok {
		return 0, perr.Errorf(perr.FontNotSpecified, "no font registered for handle %d", int(font))
	}
	idx, err := entry.subset.GetGlyphSubset(codepoint, nil)
	if err != nil {
		return 0, err
	}
	adv, _ := entry.subset.GlyphAdvance(idx)
	upm := float64(entry.subset.UnitsPerEm())
	if upm == 0 {
		upm = 1000
	}
	return float64(adv) / upm * pointSize, nil
}

// buildFontDict emits the Type0/CIDFontType2 (or CIDFontType0 for CFF
// outlines) dictionary tree for one loaded font's final subset: the
// top-level Type0 font, its descendant CIDFont, the FontDescriptor, the
// embedded subset font-file stream, and the ToUnicode CMap stream.
func (d *Document) buildFontDict(id handles.FontId) (core.PdfObject, error) {
	entry := d.fontFiles[id]
	emitted, err := entry.subset.Emit()
	if err != nil {
		return nil, err
	}

	fileKey, fileDict := core.PdfObjectName("FontFile2"), core.MakeDict()
	if emitted.IsCFF {
		fileKey = "FontFile3"
		fileDict.Set("Subtype", core.MakeName("OpenType"))
	}
	fileID, err := d.addStream(fileDict, emitted.FontFile)
	if err != nil {
		return nil, err
	}

	descriptor := core.MakeDict()
	descriptor.Set("Type", core.MakeName("FontDescriptor"))
	descriptor.Set("FontName", core.MakeName(entry.baseName))
	descriptor.Set("Flags", core.MakeInteger(4))
	descriptor.Set("ItalicAngle", core.MakeInteger(0))
	descriptor.Set("Ascent", core.MakeInteger(1000))
	descriptor.Set("Descent", core.MakeInteger(-200))
	descriptor.Set("CapHeight", core.MakeInteger(700))
	descriptor.Set("StemV", core.MakeInteger(80))
	descriptor.Set(fileKey, core.MakeRef(fileID))
	descriptorID := d.addFull(descriptor)

	upm := float64(entry.subset.UnitsPerEm())
	if upm == 0 {
		upm = 1000
	}
	widths := core.MakeArray()
	for i, w := range emitted.Widths {
		if i == 0 {
			continue // .notdef carries no /W entry
		}
		scaled := int(float64(w) / upm * 1000)
		widths.Append(core.MakeInteger(int64(i)))
		one := core.MakeArray(core.MakeInteger(int64(scaled)))
		widths.Append(one)
	}

	cidSubtype := "CIDFontType2"
	if emitted.IsCFF {
		cidSubtype = "CIDFontType0"
	}
	cidFont := core.MakeDict()
	cidFont.Set("Type", core.MakeName("Font"))
	cidFont.Set("Subtype", core.MakeName(cidSubtype))
	cidFont.Set("BaseFont", core.MakeName(entry.baseName))
	cidFont.Set("CIDSystemInfo", cidSystemInfo())
	cidFont.Set("FontDescriptor", core.MakeRef(descriptorID))
	cidFont.Set("DW", core.MakeInteger(1000))
	cidFont.Set("W", widths)
	if cidSubtype == "CIDFontType2" {
		cidFont.Set("CIDToGIDMap", core.MakeName("Identity"))
	}
	cidFontID := d.addFull(cidFont)

	toUnicodeID, err := d.addStream(core.MakeDict(), emitted.ToUnicode)
	if err != nil {
		return nil, err
	}

	top := core.MakeDict()
	top.Set("Type", core.MakeName("Font"))
	top.Set("Subtype", core.MakeName("Type0"))
	top.Set("BaseFont", core.MakeName(entry.baseName))
	top.Set("Encoding", core.MakeName("Identity-H"))
	top.Set("DescendantFonts", core.MakeArray(core.MakeRef(cidFontID)))
	top.Set("ToUnicode", core.MakeRef(toUnicodeID))
	return top, nil
}

func cidSystemInfo() *core.PdfObjectDictionary {
	d := core.MakeDict()
	d.Set("Registry", core.MakeString("Adobe"))
	d.Set("Ordering", core.MakeString("Identity"))
	d.Set("Supplement", core.MakeInteger(0))
	return d
}
