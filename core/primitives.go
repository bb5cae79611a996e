/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package core implements the primitive PDF object union (§3 "PDF object
// (registry entry)") and the streaming object formatter (§4.1) that turns
// those primitives into canonical PDF syntax. Unlike the teacher's core
// package, this one is write-only: there is no parser, no PdfObjectReference
// resolution against a loaded file, because quill never reads an existing
// PDF (spec.md Non-goals).
package core

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/quillpdf/quill/common"
)

// PdfObject is the interface every primitive PDF value implements.
type PdfObject interface {
	// String returns a debug representation.
	String() string
	// WriteString returns the exact bytes to emit for this object.
	WriteString() string
}

// PdfObjectBool is the PDF boolean primitive.
type PdfObjectBool bool

// PdfObjectInteger is the PDF integer numeric primitive.
type PdfObjectInteger int64

// PdfObjectFloat is the PDF real numeric primitive, formatted without an
// exponent (§4.1 formatting contract).
type PdfObjectFloat float64

// PdfObjectString is a PDF literal or hexadecimal string.
type PdfObjectString struct {
	val   string
	isHex bool
}

// PdfObjectName is a PDF name, written with a leading slash and #xx escapes
// for delimiters and non-printable bytes.
type PdfObjectName string

// PdfObjectArray is a PDF array.
type PdfObjectArray struct {
	vec []PdfObject
}

// PdfObjectDictionary is a PDF dictionary. Key order is preserved in
// insertion order so output is deterministic regardless of map iteration.
type PdfObjectDictionary struct {
	dict map[PdfObjectName]PdfObject
	keys []PdfObjectName
}

// PdfObjectNull is the PDF null primitive.
type PdfObjectNull struct{}

// ObjectID is the object identifier from spec.md §3: a positive 32-bit
// integer assigned densely starting at 1. ObjectID 0 is reserved, mirroring
// the PDF free-list head convention.
type ObjectID uint32

// PdfObjectReference is an `N 0 R` indirect reference to an object the
// writer has already assigned a number to (possibly not yet serialized —
// see the Deferred variant in pdfdoc).
type PdfObjectReference struct {
	ObjectNumber     ObjectID
	GenerationNumber uint16
}

// PdfIndirectObject pairs a direct object with the object number it will be
// written under.
type PdfIndirectObject struct {
	ObjectNumber ObjectID
	PdfObject
}

// PdfObjectStream is a dictionary plus an already-encoded byte stream. The
// dictionary must carry /Length (and /Filter, if any) before WriteString is
// called; NewStream and NewDeflateStream do this for the raw and deflate
// encoders.
type PdfObjectStream struct {
	ObjectNumber ObjectID
	*PdfObjectDictionary
	Stream []byte
}

// MakeDict creates an empty PdfObjectDictionary.
func MakeDict() *PdfObjectDictionary {
	return &PdfObjectDictionary{
		dict: map[PdfObjectName]PdfObject{},
		keys: []PdfObjectName{},
	}
}

// MakeName creates a PdfObjectName from a string.
func MakeName(s string) *PdfObjectName {
	name := PdfObjectName(s)
	return &name
}

// MakeInteger creates a PdfObjectInteger.
func MakeInteger(val int64) *PdfObjectInteger {
	num := PdfObjectInteger(val)
	return &num
}

// MakeBool creates a PdfObjectBool.
func MakeBool(val bool) *PdfObjectBool {
	b := PdfObjectBool(val)
	return &b
}

// MakeArray creates a PdfObjectArray from the given elements.
func MakeArray(objects ...PdfObject) *PdfObjectArray {
	return &PdfObjectArray{vec: append([]PdfObject{}, objects...)}
}

// MakeArrayFromIntegers builds an array of PdfObjectInteger from ints.
func MakeArrayFromIntegers(vals []int) *PdfObjectArray {
	arr := MakeArray()
	for _, v := range vals {
		arr.Append(MakeInteger(int64(v)))
	}
	return arr
}

// MakeArrayFromFloats builds an array of PdfObjectFloat from float64s.
func MakeArrayFromFloats(vals []float64) *PdfObjectArray {
	arr := MakeArray()
	for _, v := range vals {
		arr.Append(MakeFloat(v))
	}
	return arr
}

// MakeFloat creates a PdfObjectFloat.
func MakeFloat(val float64) *PdfObjectFloat {
	f := PdfObjectFloat(val)
	return &f
}

// MakeString creates a literal PdfObjectString. s is treated as a raw byte
// sequence, not necessarily valid UTF-8: PDF strings are byte strings.
func MakeString(s string) *PdfObjectString {
	return &PdfObjectString{val: s}
}

// MakeHexString creates a PdfObjectString that serializes as <..hex..>.
func MakeHexString(s string) *PdfObjectString {
	return &PdfObjectString{val: s, isHex: true}
}

// MakeEncodedString creates a PdfObjectString holding UTF-16BE content with
// the required 0xFE 0xFF byte-order mark, emitted as a hex string. Used for
// Info dictionary entries and annotation contents that may contain non-ASCII
// text.
func MakeEncodedString(utf16be []byte) *PdfObjectString {
	var buf bytes.Buffer
	buf.Write([]byte{0xFE, 0xFF})
	buf.Write(utf16be)
	return &PdfObjectString{val: buf.String(), isHex: true}
}

// MakeNull creates a PdfObjectNull.
func MakeNull() *PdfObjectNull {
	return &PdfObjectNull{}
}

// MakeRef creates an `N 0 R` reference.
func MakeRef(id ObjectID) *PdfObjectReference {
	return &PdfObjectReference{ObjectNumber: id}
}

// String/WriteString implementations -----------------------------------

func (b *PdfObjectBool) String() string {
	if *b {
		return "true"
	}
	return "false"
}

// WriteString implements PdfObject.
func (b *PdfObjectBool) WriteString() string { return b.String() }

func (i *PdfObjectInteger) String() string { return fmt.Sprintf("%d", *i) }

// WriteString implements PdfObject.
func (i *PdfObjectInteger) WriteString() string { return strconv.FormatInt(int64(*i), 10) }

func (f *PdfObjectFloat) String() string { return fmt.Sprintf("%f", *f) }

// WriteString formats with fixed-point notation (no exponent), trimming to
// the shortest representation that round-trips, per the §4.1 contract.
func (f *PdfObjectFloat) WriteString() string {
	return strconv.FormatFloat(float64(*f), 'f', -1, 64)
}

// Str returns the raw string value.
func (s *PdfObjectString) Str() string { return s.val }

// Bytes returns the raw bytes of the string.
func (s *PdfObjectString) Bytes() []byte { return []byte(s.val) }

func (s *PdfObjectString) String() string { return s.val }

var stringEscapes = map[byte]string{
	'\n': "\\n", '\r': "\\r", '\t': "\\t", '\b': "\\b", '\f': "\\f",
	'(': "\\(", ')': "\\)", '\\': "\\\\",
}

// WriteString emits either a literal `(...)` string with the standard
// backslash escapes, or a `<...>` hex string if isHex was set at creation.
func (s *PdfObjectString) WriteString() string {
	if s.isHex {
		return "<" + hex.EncodeToString(s.Bytes()) + ">"
	}
	var out bytes.Buffer
	out.WriteByte('(')
	for i := 0; i < len(s.val); i++ {
		c := s.val[i]
		if esc, ok := stringEscapes[c]; ok {
			out.WriteString(esc)
		} else {
			out.WriteByte(c)
		}
	}
	out.WriteByte(')')
	return out.String()
}

func (n *PdfObjectName) String() string { return string(*n) }

// isDelimiter reports whether b is one of the PDF syntax delimiter bytes.
func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isPrintable(b byte) bool { return b > 0x20 && b < 0x7F }

// WriteString emits the name with a leading slash, #xx-escaping any
// delimiter, non-printable, or literal '#' byte (PDF32000 7.3.5).
func (n *PdfObjectName) WriteString() string {
	if len(*n) > 127 {
		common.Log.Debug("name exceeds 127 bytes: %s", string(*n))
	}
	var out bytes.Buffer
	out.WriteByte('/')
	for i := 0; i < len(*n); i++ {
		c := (*n)[i]
		if !isPrintable(c) || c == '#' || isDelimiter(c) {
			fmt.Fprintf(&out, "#%.2x", c)
		} else {
			out.WriteByte(c)
		}
	}
	return out.String()
}

// Elements returns the array's contents.
func (a *PdfObjectArray) Elements() []PdfObject {
	if a == nil {
		return nil
	}
	return a.vec
}

// Len returns the number of elements.
func (a *PdfObjectArray) Len() int {
	if a == nil {
		return 0
	}
	return len(a.vec)
}

// Append adds an element to the end of the array.
func (a *PdfObjectArray) Append(obj PdfObject) {
	a.vec = append(a.vec, obj)
}

func (a *PdfObjectArray) String() string {
	var out bytes.Buffer
	out.WriteByte('[')
	for i, o := range a.vec {
		if i > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(o.String())
	}
	out.WriteByte(']')
	return out.String()
}

// WriteString emits `[elem elem ...]` with single-space separation; callers
// that want the §4.1 line-wrapping contract use ObjectFormatter.BeginArray instead of
// calling this directly (it is used for small inline arrays like /MediaBox).
func (a *PdfObjectArray) WriteString() string {
	var out bytes.Buffer
	out.WriteByte('[')
	for i, o := range a.vec {
		if i > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(o.WriteString())
	}
	out.WriteByte(']')
	return out.String()
}

// Set assigns a key, preserving first-insertion order for deterministic
// output.
func (d *PdfObjectDictionary) Set(key PdfObjectName, val PdfObject) {
	if _, exists := d.dict[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.dict[key] = val
}

// Get returns the value for key, or nil.
func (d *PdfObjectDictionary) Get(key PdfObjectName) PdfObject {
	if d == nil {
		return nil
	}
	return d.dict[key]
}

// Keys returns the dictionary's keys in insertion order.
func (d *PdfObjectDictionary) Keys() []PdfObjectName {
	if d == nil {
		return nil
	}
	return d.keys
}

func (d *PdfObjectDictionary) String() string {
	var out bytes.Buffer
	out.WriteString("Dict(")
	for _, k := range d.keys {
		fmt.Fprintf(&out, "%s: %s, ", k, d.dict[k].String())
	}
	out.WriteByte(')')
	return out.String()
}

// WriteString emits `<< /Key value /Key value >>` on one line; callers that
// want the §4.1 two-tokens-per-line contract use ObjectFormatter.BeginDict instead.
func (d *PdfObjectDictionary) WriteString() string {
	var out bytes.Buffer
	out.WriteString("<<")
	for _, k := range d.keys {
		out.WriteByte(' ')
		out.WriteString(k.WriteString())
		out.WriteByte(' ')
		out.WriteString(d.dict[k].WriteString())
	}
	out.WriteString(" >>")
	return out.String()
}

func (n *PdfObjectNull) String() string { return "null" }

// WriteString implements PdfObject.
func (n *PdfObjectNull) WriteString() string { return "null" }

func (r *PdfObjectReference) String() string {
	return fmt.Sprintf("Ref(%d %d)", r.ObjectNumber, r.GenerationNumber)
}

// WriteString emits `N G R`.
func (r *PdfObjectReference) WriteString() string {
	return fmt.Sprintf("%d %d R", r.ObjectNumber, r.GenerationNumber)
}
