/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import (
	"bytes"
	"fmt"

	"github.com/quillpdf/quill/perr"
)

// containerKind distinguishes the two nesting forms an ObjectFormatter
// tracks; spec.md §4.1 calls out arrays and dictionaries specifically
// (dicts print two tokens per line, arrays up to maxPerLine per line).
type containerKind int

const (
	arrayContainer containerKind = iota
	dictContainer
)

type container struct {
	kind        containerKind
	maxPerLine  int // arrays only
	tokensOnRow int
	dictKeyHalf bool // dicts only: true once the key of a pair has been written
}

// ObjectFormatter is the streaming emitter described in spec.md §4.1: it
// produces PDF dictionary/array syntax with the same byte layout regardless
// of call order, by tracking nesting depth and an explicit container stack.
//
// There is no user-facing error path here: mismatched Begin/End calls or an
// unclosed container at Steal indicate a bug in the emitting code, not bad
// user input, so they panic wrapped in a *perr.Error with code perr.Bug —
// exactly the "aborts execution" contract spec.md §4.1 describes.
type ObjectFormatter struct {
	buf   bytes.Buffer
	stack []container
}

// NewObjectFormatter returns an empty formatter.
func NewObjectFormatter() *ObjectFormatter {
	return &ObjectFormatter{}
}

func (f *ObjectFormatter) indent() string {
	return bytes.Repeat([]byte("  "), len(f.stack)-1)
}

func (f *ObjectFormatter) writeIndent() {
	for i := 1; i < len(f.stack); i++ {
		f.buf.WriteString("  ")
	}
}

func (f *ObjectFormatter) top() *container {
	if len(f.stack) == 0 {
		return nil
	}
	return &f.stack[len(f.stack)-1]
}

// BeginArray opens `[` and starts wrapping at maxElemsPerLine items per
// line (0 or negative means unlimited — one line).
func (f *ObjectFormatter) BeginArray(maxElemsPerLine int) *ObjectFormatter {
	f.buf.WriteString("[")
	f.stack = append(f.stack, container{kind: arrayContainer, maxPerLine: maxElemsPerLine})
	return f
}

// EndArray closes the most recently opened array. Panics (perr.Bug) if the
// most recently opened container is not an array.
func (f *ObjectFormatter) EndArray() *ObjectFormatter {
	c := f.top()
	if c == nil || c.kind != arrayContainer {
		panic(perr.New(perr.Bug, "EndArray called with no matching BeginArray"))
	}
	f.stack = f.stack[:len(f.stack)-1]
	f.buf.WriteString("]")
	f.afterValue()
	return f
}

// BeginDict opens `<<` on its own line and switches to two-tokens-per-line
// (`/Key value`) formatting within it.
func (f *ObjectFormatter) BeginDict() *ObjectFormatter {
	f.buf.WriteString("<<\n")
	f.stack = append(f.stack, container{kind: dictContainer})
	return f
}

// EndDict closes the most recently opened dictionary. Panics (perr.Bug) if
// the most recently opened container is not a dictionary, or if a key was
// written without its value (unbalanced pair).
func (f *ObjectFormatter) EndDict() *ObjectFormatter {
	c := f.top()
	if c == nil || c.kind != dictContainer {
		panic(perr.New(perr.Bug, "EndDict called with no matching BeginDict"))
	}
	if c.dictKeyHalf {
		panic(perr.New(perr.Bug, "EndDict called with a dangling key (no value written)"))
	}
	f.stack = f.stack[:len(f.stack)-1]
	f.writeIndent()
	f.buf.WriteString(">>")
	f.afterValue()
	return f
}

// afterValue is called after writing one complete value (a token, or a
// closed nested container) to apply line-wrapping for the enclosing
// container, if any.
func (f *ObjectFormatter) afterValue() {
	c := f.top()
	if c == nil {
		f.buf.WriteString("\n")
		return
	}
	switch c.kind {
	case dictContainer:
		// We just wrote a value (a token or a closed nested container) that
		// completed a /Key value pair.
		c.dictKeyHalf = false
		f.buf.WriteString("\n")
	case arrayContainer:
		c.tokensOnRow++
		if c.maxPerLine > 0 && c.tokensOnRow >= c.maxPerLine {
			c.tokensOnRow = 0
			f.buf.WriteString("\n")
			f.writeIndent()
		} else {
			f.buf.WriteString(" ")
		}
	}
}

// AddToken appends a pre-formatted raw token (a number, a name with its
// leading slash, a literal or hex string, a nested reference, ...).
func (f *ObjectFormatter) AddToken(raw string) *ObjectFormatter {
	c := f.top()
	if c != nil && c.kind == dictContainer {
		if !c.dictKeyHalf {
			// This token is a dictionary key.
			f.writeIndent()
			f.buf.WriteString(raw)
			f.buf.WriteString(" ")
			c.dictKeyHalf = true
			return f
		}
		c.dictKeyHalf = false
		f.buf.WriteString(raw)
		f.afterValue()
		return f
	}
	if c != nil && c.kind == arrayContainer && c.tokensOnRow == 0 {
		f.writeIndent()
	}
	f.buf.WriteString(raw)
	f.afterValue()
	return f
}

// AddInt appends a plain-formatted integer token.
func (f *ObjectFormatter) AddInt(v int64) *ObjectFormatter {
	return f.AddToken(fmt.Sprintf("%d", v))
}

// AddFloat appends a fixed-point (no exponent) float token.
func (f *ObjectFormatter) AddFloat(v float64) *ObjectFormatter {
	fv := PdfObjectFloat(v)
	return f.AddToken(fv.WriteString())
}

// AddName appends a `/Name` token with standard escaping.
func (f *ObjectFormatter) AddName(name string) *ObjectFormatter {
	n := PdfObjectName(name)
	return f.AddToken(n.WriteString())
}

// AddObjectRef appends an `n 0 R` indirect reference token.
func (f *ObjectFormatter) AddObjectRef(n ObjectID) *ObjectFormatter {
	return f.AddToken(fmt.Sprintf("%d 0 R", n))
}

// AddObject appends any PdfObject's WriteString() form as a token.
func (f *ObjectFormatter) AddObject(obj PdfObject) *ObjectFormatter {
	return f.AddToken(obj.WriteString())
}

// Steal consumes the accumulated buffer. Requires the container stack to be
// empty (every Begin has a matching End); panics (perr.Bug) otherwise, per
// spec.md §4.1's "no user-facing error path" contract. The final byte is
// always a trailing newline.
func (f *ObjectFormatter) Steal() []byte {
	if len(f.stack) != 0 {
		panic(perr.New(perr.Bug, "Steal called with unclosed container(s)"))
	}
	out := f.buf.Bytes()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	f.buf.Reset()
	return out
}
