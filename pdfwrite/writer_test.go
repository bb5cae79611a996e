/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfwrite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/iccolor"
	"github.com/quillpdf/quill/pdfdoc"
	"github.com/quillpdf/quill/perr"
)

func newEmptyDoc(props pdfdoc.Properties) *pdfdoc.Document {
	color := iccolor.NewPipeline(nil, nil, nil)
	return pdfdoc.New(props, color)
}

func TestHeaderMatchesRequestedVersion(t *testing.T) {
	require.True(t, strings.HasPrefix(header(pdfdoc.Version17), "%PDF-1.7\n"))
	require.True(t, strings.HasPrefix(header(pdfdoc.Version20), "%PDF-2.0\n"))
}

func TestWriteEmitsClassicalXrefByDefault(t *testing.T) {
	doc := newEmptyDoc(pdfdoc.Properties{Version: pdfdoc.Version17})
	var buf bytes.Buffer

	require.NoError(t, Write(doc, &buf, pdfdoc.Info{Title: "Empty"}, 1700000000))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "%PDF-1.7\n"))
	require.Contains(t, out, "\nxref\n")
	require.Contains(t, out, "\ntrailer\n")
	require.Contains(t, out, "/Root")
	require.Contains(t, out, "/Info")
	require.Contains(t, out, "/ID")
	require.Contains(t, out, "startxref\n")
	require.True(t, strings.HasSuffix(out, "%%EOF\n"))
	require.NotContains(t, out, "/Type /XRef")
}

func TestWriteEmitsXRefStreamWhenObjectStreamsRequested(t *testing.T) {
	doc := newEmptyDoc(pdfdoc.Properties{
		Version:          pdfdoc.Version17,
		CompressStreams:  true,
		UseObjectStreams: true,
	})
	var buf bytes.Buffer

	require.NoError(t, Write(doc, &buf, pdfdoc.Info{}, 1700000000))

	out := buf.String()
	require.Contains(t, out, "/Type /XRef")
	require.NotContains(t, out, "\ntrailer\n")
	require.NotContains(t, out, "\nxref\n")
}

func TestWriteTwiceReturnsWritingTwiceError(t *testing.T) {
	doc := newEmptyDoc(pdfdoc.Properties{Version: pdfdoc.Version17})
	var buf1, buf2 bytes.Buffer

	require.NoError(t, Write(doc, &buf1, pdfdoc.Info{}, 1700000000))
	err := Write(doc, &buf2, pdfdoc.Info{}, 1700000000)
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.WritingTwice))
}

func TestDocumentIDHalvesAreEqualWithinOneWrite(t *testing.T) {
	doc := newEmptyDoc(pdfdoc.Properties{Version: pdfdoc.Version17})
	id1, id2 := documentID(1700000000, doc)
	require.Equal(t, id1, id2)
}

func TestStampDatesFillsOnlyMissingFields(t *testing.T) {
	info := pdfdoc.Info{}
	stamped := stampDates(info, 1700000000)
	require.NotEmpty(t, stamped.CreationDate)
	require.NotEmpty(t, stamped.ModDate)
	require.True(t, strings.HasPrefix(stamped.CreationDate, "D:"))

	preset := pdfdoc.Info{CreationDate: "D:20200101000000", ModDate: "D:20200102000000"}
	stampedPreset := stampDates(preset, 1700000000)
	require.Equal(t, "D:20200101000000", stampedPreset.CreationDate)
	require.Equal(t, "D:20200102000000", stampedPreset.ModDate)
}

func TestWriteXrefTableOffsetFormat(t *testing.T) {
	var buf bytes.Buffer
	offsets := []objectOffset{{id: 1, offset: 15}, {id: 2, offset: 42}}
	writeXRefTable(&buf, offsets)

	out := buf.String()
	require.Contains(t, out, "0 3\n")
	require.Contains(t, out, "0000000000 65535 f \n")
	require.Contains(t, out, "0000000015 00000 n \n")
	require.Contains(t, out, "0000000042 00000 n \n")
}
