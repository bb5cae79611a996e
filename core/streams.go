/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import "github.com/quillpdf/quill/bufutil"

// NewStream wraps raw, already-final bytes with a dictionary carrying
// /Length, and no /Filter — the *Full* stream variant from spec.md §4.8.
func NewStream(data []byte) *PdfObjectStream {
	d := MakeDict()
	d.Set("Length", MakeInteger(int64(len(data))))
	return &PdfObjectStream{PdfObjectDictionary: d, Stream: data}
}

// NewDeflateStream compresses data with bufutil.Deflate and wraps it with a
// dictionary carrying /Length and /Filter /FlateDecode — spec.md §4.8's
// *Deflate* registry-entry variant collapsed to its terminal Full form.
func NewDeflateStream(data []byte) (*PdfObjectStream, error) {
	compressed, err := bufutil.Deflate(data)
	if err != nil {
		return nil, err
	}
	d := MakeDict()
	d.Set("Length", MakeInteger(int64(len(compressed))))
	d.Set("Filter", MakeName("FlateDecode"))
	return &PdfObjectStream{PdfObjectDictionary: d, Stream: compressed}, nil
}

// WriteString emits `<<dict>>\nstream\n<bytes>\nendstream`.
func (s *PdfObjectStream) WriteString() string {
	return s.PdfObjectDictionary.WriteString() + "\nstream\n" + string(s.Stream) + "\nendstream"
}

func (s *PdfObjectStream) String() string {
	return "Stream(" + s.PdfObjectDictionary.String() + ")"
}
