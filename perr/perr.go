/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package perr defines the single enumerated error kind threaded through
// every fallible quill operation (spec.md §7). Each failure mode is a
// Code; an Error pairs a Code with a message and, optionally, a wrapped
// cause so that golang.org/x/xerrors-style Is/As/Unwrap chains work the
// way the teacher's internal/jbig2/errors package wraps driver errors.
package perr

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/quillpdf/quill/common"
)

// Code enumerates every distinct failure mode the core can report.
type Code int

// Argument validation.
const (
	NullArgument Code = iota + 1
	NegativeIndex
	IndexOutOfBounds
	NotASCII
	EmptyTitle
	BadEnum
	BadBoolean
	ColorOutOfRange
)

// State misuse.
const (
	DrawStateEndMismatch Code = iota + 100
	NestedBMC
	EmcOnEmpty
	UnclosedMarkedContent
	AnnotationReuse
	StructureReuse
	WrongDrawContext
	WritingTwice
)

// Format errors.
const (
	MalformedFontFile Code = iota + 200
	InvalidICCProfile
	IncorrectColorChannelCount
	UnsupportedFormat
	UnsupportedTIFF
	BadUTF8
	MaskAndAlpha
)

// Resource errors.
const (
	CouldNotOpenFile Code = iota + 300
	FileDoesNotExist
	FileReadError
	FileWriteError
	MmapFail
	CompressionFailure
	MetadataFailure
)

// Missing prerequisites.
const (
	NoCmykProfile Code = iota + 400
	OutputProfileMissing
	MissingIntentIdentifier
	FontNotSpecified
	MissingGlyph
	TooManyGlyphsUsed
	OutputIntentMissing
)

// Output constraints.
const (
	ImageFormatNotPermitted Code = iota + 500
	BadOperationForIntent
)

// Reserved.
const (
	DynamicError Code = iota + 600
	Unreachable
	Bug
)

var names = map[Code]string{
	NullArgument:               "null argument",
	NegativeIndex:              "negative index",
	IndexOutOfBounds:           "index out of bounds",
	NotASCII:                   "not ASCII",
	EmptyTitle:                 "empty title",
	BadEnum:                    "bad enum value",
	BadBoolean:                 "bad boolean value",
	ColorOutOfRange:            "color component out of range",
	DrawStateEndMismatch:       "draw state end mismatch",
	NestedBMC:                  "nested BMC",
	EmcOnEmpty:                 "EMC on empty state stack",
	UnclosedMarkedContent:      "unclosed marked content at steal",
	AnnotationReuse:            "annotation handle reused",
	StructureReuse:             "structure item handle reused",
	WrongDrawContext:           "operation invalid for this draw context type",
	WritingTwice:               "writer invoked twice",
	MalformedFontFile:          "malformed font file",
	InvalidICCProfile:          "invalid ICC profile",
	IncorrectColorChannelCount: "incorrect color channel count",
	UnsupportedFormat:          "unsupported format",
	UnsupportedTIFF:            "unsupported TIFF variant",
	BadUTF8:                    "invalid UTF-8",
	MaskAndAlpha:               "image has both a stencil mask and an alpha channel",
	CouldNotOpenFile:           "could not open file",
	FileDoesNotExist:           "file does not exist",
	FileReadError:              "file read error",
	FileWriteError:             "file write error",
	MmapFail:                   "mmap failed",
	CompressionFailure:         "compression failure",
	MetadataFailure:            "XMP metadata construction failure",
	NoCmykProfile:              "no CMYK profile declared",
	OutputProfileMissing:       "output profile missing",
	MissingIntentIdentifier:    "missing output intent identifier",
	FontNotSpecified:           "font not specified",
	MissingGlyph:               "missing glyph",
	TooManyGlyphsUsed:          "too many glyphs used",
	OutputIntentMissing:        "output intent missing",
	ImageFormatNotPermitted:    "image format not permitted for declared output intent",
	BadOperationForIntent:      "operation not permitted for declared output intent",
	DynamicError:               "wrapped platform error",
	Unreachable:                "unreachable",
	Bug:                        "programmer error",
}

// String implements fmt.Stringer.
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("perr.Code(%d)", int(c))
}

// Error is the concrete error type returned by fallible quill operations.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

var _ xerrors.Wrapper = (*Error)(nil)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As and
// golang.org/x/xerrors chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// severe reports whether code marks a malformed-input or programmer-error
// condition, the teacher's own cue for logging at Error rather than Debug
// (model/functions.go and model/shading.go's "Unable to access ..."/
// "FunctionType number missing" call sites all log these kinds of failures
// at Error; everything else in the teacher logs at Debug right where the
// error is returned, e.g. core/crossrefs.go's "ERROR Fail to read object").
func (c Code) severe() bool {
	switch c {
	case MalformedFontFile, InvalidICCProfile, Bug, Unreachable:
		return true
	}
	return false
}

// log reports e through common.Log at construction time, the teacher's
// idiom of logging right where an error is created and returned rather
// than at some higher catch site (spec.md §7: "errors return upward; no
// catch-and-continue within the core" — logging here is an observation
// side channel, not a recovery path).
func log(e *Error) *Error {
	if e.Code.severe() {
		common.Log.Error("%s", e.Error())
	} else {
		common.Log.Debug("%s", e.Error())
	}
	return e
}

// New creates an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return log(&Error{Code: code, Message: message})
}

// Errorf creates an Error whose message is formatted with fmt.Sprintf.
func Errorf(code Code, format string, args ...interface{}) *Error {
	return log(&Error{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Wrap creates an Error that wraps a lower-level cause (e.g. an os.PathError
// from a file operation, or a compress/flate error).
func Wrap(code Code, cause error, message string) *Error {
	return log(&Error{Code: code, Message: message, Cause: cause})
}

// Is reports whether the first *Error in err's chain carries the given
// code. It compares codes rather than identity; *Error has no Is method,
// so errors.Is itself still compares identity.
func Is(err error, code Code) bool {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Code == code
	}
	return false
}
