/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package pdfwrite is the writer (spec.md §4.8): a single pass over a
// pdfdoc.Document's registry, with deferred entries resolved as they are
// encountered, that serializes the whole object graph to a byte stream
// followed by a cross-reference section and trailer. Grounded on the
// teacher's model/writer.go writeObject/crossReferenceMap/trailer sequence,
// generalized to support both PDF 1.7/2.0 headers and the classical
// xref-table vs. /XRef-stream choice spec.md §4.8 describes.
package pdfwrite

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/pdfdoc"
)

// objectOffset records where object id begins in the output buffer.
type objectOffset struct {
	id     core.ObjectID
	offset int64
}

// Write serializes doc to w exactly once (spec.md §4.8: "permitted to be
// called exactly once per generator; repeated calls return WritingTwice").
// sourceDateEpoch, if non-zero, fixes the trailer's /ID and the Info
// dictionary's CreationDate/ModDate to a reproducible value (spec.md §5's
// SOURCE_DATE_EPOCH override); zero means use the wall clock and a random
// ID.
func Write(doc *pdfdoc.Document, w io.Writer, info pdfdoc.Info, sourceDateEpoch int64) error {
	if err := doc.MarkWritten(); err != nil {
		return err
	}

	info = stampDates(info, sourceDateEpoch)
	if err := doc.Finalize(info); err != nil {
		return err
	}

	entries, err := doc.Entries()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	var buf bytes.Buffer
	buf.WriteString(header(doc.Properties().Version))

	offsets := make([]objectOffset, 0, len(entries))
	for _, e := range entries {
		offsets = append(offsets, objectOffset{id: e.ID, offset: int64(buf.Len())})
		writeObject(&buf, e)
	}

	xrefOffset := int64(buf.Len())
	id1, id2 := documentID(sourceDateEpoch, doc)
	if doc.Properties().UseObjectStreams && doc.Properties().CompressStreams {
		writeXRefStream(&buf, offsets, doc.RootID(), doc.InfoID(), id1, id2)
	} else {
		writeXRefTable(&buf, offsets)
		writeTrailer(&buf, int64(len(offsets)+1), doc.RootID(), doc.InfoID(), id1, id2)
	}
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err = w.Write(buf.Bytes())
	return err
}

func header(v pdfdoc.Version) string {
	if v == pdfdoc.Version20 {
		return "%PDF-2.0\n%\xe2\xe3\xcf\xd3\n"
	}
	return "%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"
}

func writeObject(buf *bytes.Buffer, e pdfdoc.Entry) {
	fmt.Fprintf(buf, "%d 0 obj\n", e.ID)
	buf.WriteString(e.Object.WriteString())
	buf.WriteString("\nendobj\n")
}

func writeXRefTable(buf *bytes.Buffer, offsets []objectOffset) {
	buf.WriteString("xref\n")
	fmt.Fprintf(buf, "0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, o := range offsets {
		fmt.Fprintf(buf, "%010d %05d n \n", o.offset, 0)
	}
}

func writeTrailer(buf *bytes.Buffer, size int64, root, info core.ObjectID, id1, id2 [16]byte) {
	buf.WriteString("trailer\n")
	trailer := core.MakeDict()
	trailer.Set("Size", core.MakeInteger(size))
	trailer.Set("Root", core.MakeRef(root))
	trailer.Set("Info", core.MakeRef(info))
	trailer.Set("ID", core.MakeArray(core.MakeHexString(string(id1[:])), core.MakeHexString(string(id2[:]))))
	buf.WriteString(trailer.WriteString())
	buf.WriteByte('\n')
}

// writeXRefStream emits the compact binary cross-reference stream variant
// (PDF 1.5+), used only when object-stream compression is requested
// (Open Question decision — see DESIGN.md).
func writeXRefStream(buf *bytes.Buffer, offsets []objectOffset, root, info core.ObjectID, id1, id2 [16]byte) {
	selfID := core.ObjectID(0)
	if len(offsets) > 0 {
		selfID = offsets[len(offsets)-1].id + 1
	}

	var data bytes.Buffer
	data.WriteByte(0)
	data.Write([]byte{0, 0, 0, 0})
	data.WriteByte(0)
	for _, o := range offsets {
		data.WriteByte(1)
		data.Write(be32(uint32(o.offset)))
		data.WriteByte(0)
	}

	stream := core.NewStream(data.Bytes())
	stream.Set("Type", core.MakeName("XRef"))
	stream.Set("W", core.MakeArray(core.MakeInteger(1), core.MakeInteger(4), core.MakeInteger(1)))
	stream.Set("Size", core.MakeInteger(int64(selfID)+1))
	stream.Set("Root", core.MakeRef(root))
	stream.Set("Info", core.MakeRef(info))
	stream.Set("ID", core.MakeArray(core.MakeHexString(string(id1[:])), core.MakeHexString(string(id2[:]))))

	fmt.Fprintf(buf, "%d 0 obj\n", selfID)
	buf.WriteString(stream.WriteString())
	buf.WriteString("\nendobj\n")
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// documentID derives the trailer /ID pair. With SOURCE_DATE_EPOCH set, both
// halves are deterministic hashes of the epoch value (spec.md §5:
// "SOURCE_DATE_EPOCH fixes both timestamps to a reproducible value");
// otherwise a process-time-derived value stands in for randomness (quill
// never reads crypto/rand for this — the ID need not be unguessable, only
// distinct per generation).
func documentID(sourceDateEpoch int64, doc *pdfdoc.Document) (id1, id2 [16]byte) {
	var material string
	if sourceDateEpoch != 0 {
		material = fmt.Sprintf("%d", sourceDateEpoch)
	} else {
		material = fmt.Sprintf("%d-%p", time.Now().UnixNano(), doc)
	}
	sum := sha256.Sum256([]byte(material))
	copy(id1[:], sum[:16])
	id2 = id1
	return
}

func stampDates(info pdfdoc.Info, sourceDateEpoch int64) pdfdoc.Info {
	if info.CreationDate != "" && info.ModDate != "" {
		return info
	}
	t := time.Now()
	if sourceDateEpoch != 0 {
		t = time.Unix(sourceDateEpoch, 0).UTC()
	}
	formatted := fmt.Sprintf("D:%s", t.Format("20060102150405"))
	if info.CreationDate == "" {
		info.CreationDate = formatted
	}
	if info.ModDate == "" {
		info.ModDate = formatted
	}
	return info
}
