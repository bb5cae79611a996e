/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package content implements the command-stream formatter (spec.md §4.2):
// it accumulates a PDF content stream and enforces the draw-state-stack
// invariants from §3 and the design note in §9 ("track drawing state as an
// explicit stack of tagged markers rather than counters, so Q can diagnose
// 'you closed a save but a text object is still open'").
//
// The one-method-per-operator shape (the teacher's Add_q, Add_cm, ...; here
// BT, ET, PushSave, PopSave, BMC, BDC, EMC) and the "append a
// pre-formatted line" escape hatch are grounded on the teacher's
// contentstream/creator.go ContentCreator, generalized from "edit an
// existing operand list" to "validate a state machine while generating."
package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/quillpdf/quill/perr"
)

// StateKind tags an entry on the draw-state stack.
type StateKind int

// The four draw-state kinds tracked by the formatter (spec.md §3).
const (
	StateText StateKind = iota
	StateSave
	StateMarkedContent
	StateDictionary
)

func (k StateKind) String() string {
	switch k {
	case StateText:
		return "Text"
	case StateSave:
		return "SaveState"
	case StateMarkedContent:
		return "MarkedContent"
	case StateDictionary:
		return "Dictionary"
	default:
		return "?"
	}
}

// Formatter accumulates content-stream bytes while tracking the open draw
// states. It does not know about resource usage (which names get listed in
// /Resources) — that bookkeeping belongs to the draw context (pagedraw),
// per spec.md §4.2.
type Formatter struct {
	buf   bytes.Buffer
	stack []StateKind
}

// New returns an empty Formatter.
func New() *Formatter {
	return &Formatter{}
}

func (f *Formatter) indent() int { return len(f.stack) }

func (f *Formatter) writeIndent() {
	for i := 0; i < f.indent(); i++ {
		f.buf.WriteString("  ")
	}
}

// Append writes a raw, already-formatted line (no operator validation) at
// the current indent. Used for operators the state machine does not need
// to track, e.g. `re`, `l`, `rg`.
func (f *Formatter) Append(line string) {
	f.writeIndent()
	f.buf.WriteString(line)
	f.buf.WriteString("\n")
}

// AppendCommand writes "arg arg ... op" at the current indent — the
// standard PDF operator syntax of operands followed by the operator
// keyword.
func (f *Formatter) AppendCommand(args []string, op string) {
	parts := append(append([]string{}, args...), op)
	f.Append(strings.Join(parts, " "))
}

// BT opens a text object. Returns perr.DrawStateEndMismatch if a text
// object is already open (spec.md §3: "A Text state may not be nested").
func (f *Formatter) BT() error {
	for _, s := range f.stack {
		if s == StateText {
			return perr.New(perr.DrawStateEndMismatch, "BT: a text object is already open")
		}
	}
	f.Append("BT")
	f.stack = append(f.stack, StateText)
	return nil
}

// ET closes the most recently opened text object.
func (f *Formatter) ET() error {
	if err := f.popExpect(StateText, "ET"); err != nil {
		return err
	}
	f.Append("ET")
	return nil
}

// PushSave opens a `q` save-state.
func (f *Formatter) PushSave() {
	f.Append("q")
	f.stack = append(f.stack, StateSave)
}

// PopSave closes the most recently opened `q` with `Q`. Returns
// perr.DrawStateEndMismatch if the top of the stack is not a SaveState —
// e.g. `Q` issued while a text object is still open.
func (f *Formatter) PopSave() error {
	if err := f.popExpect(StateSave, "Q"); err != nil {
		return err
	}
	f.Append("Q")
	return nil
}

// BMC opens marked content with a plain tag. Marked content may not be
// nested (spec.md §3).
func (f *Formatter) BMC(tag string) error {
	if err := f.checkNotNested(); err != nil {
		return err
	}
	f.Append(fmt.Sprintf("/%s BMC", tag))
	f.stack = append(f.stack, StateMarkedContent)
	return nil
}

// BDC opens marked content with a tag and a properties reference (either an
// inline dictionary token or a `/PropName` resource lookup).
func (f *Formatter) BDC(tag, props string) error {
	if err := f.checkNotNested(); err != nil {
		return err
	}
	f.Append(fmt.Sprintf("/%s %s BDC", tag, props))
	f.stack = append(f.stack, StateMarkedContent)
	return nil
}

func (f *Formatter) checkNotNested() error {
	for _, s := range f.stack {
		if s == StateMarkedContent {
			return perr.New(perr.NestedBMC, "marked content cannot be nested")
		}
	}
	return nil
}

// EMC closes the most recently opened marked-content span. Returns
// perr.EmcOnEmpty if nothing is open, or DrawStateEndMismatch if the top of
// the stack is something else (e.g. a still-open save).
func (f *Formatter) EMC() error {
	if len(f.stack) == 0 {
		return perr.New(perr.EmcOnEmpty, "EMC with nothing open")
	}
	if err := f.popExpect(StateMarkedContent, "EMC"); err != nil {
		return err
	}
	f.Append("EMC")
	return nil
}

func (f *Formatter) popExpect(want StateKind, op string) error {
	if len(f.stack) == 0 {
		return perr.Errorf(perr.DrawStateEndMismatch, "%s with nothing open", op)
	}
	top := f.stack[len(f.stack)-1]
	if top != want {
		return perr.Errorf(perr.DrawStateEndMismatch, "%s: innermost open state is %s, not %s", op, top, want)
	}
	f.stack = f.stack[:len(f.stack)-1]
	return nil
}

// Depth returns the number of currently open draw states.
func (f *Formatter) Depth() int { return len(f.stack) }

// Steal returns the accumulated content-stream bytes. Requires the draw
// state stack to be empty (spec.md §3: "The stack must be empty when
// serializing a page or form XObject"); returns
// perr.UnclosedMarkedContent otherwise despite the name — the error
// applies uniformly to any unclosed state, matching the error code
// spec.md §4.2 assigns to "steal with something open."
func (f *Formatter) Steal() ([]byte, error) {
	if len(f.stack) != 0 {
		return nil, perr.Errorf(perr.UnclosedMarkedContent, "%d draw state(s) still open at steal: innermost is %s", len(f.stack), f.stack[len(f.stack)-1])
	}
	out := f.buf.Bytes()
	f.buf.Reset()
	return out, nil
}

// Bytes returns a copy of the bytes written so far without requiring the
// stack to be empty or resetting the buffer; used for diagnostics.
func (f *Formatter) Bytes() []byte {
	return append([]byte(nil), f.buf.Bytes()...)
}
