/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package pcolor implements the Color tagged union from spec.md §3: the
// value type callers pass to the high-level color-setting wrappers on a
// draw context (rg/RG/k/K/g/G/scn/SCN). Channel values are clamped to
// [0, 1] by construction, matching "Scalar channel values are clamped to
// [0, 1] by construction."
package pcolor

import "github.com/quillpdf/quill/handles"

// Space identifies which variant of the Color union a value holds.
type Space int

// The seven color-space variants spec.md §3 enumerates.
const (
	DeviceGray Space = iota
	DeviceRGB
	DeviceCMYK
	Lab
	ICCBased
	Separation
	Pattern
)

// Color is the tagged union of everything a drawing operation can paint
// with.
type Color struct {
	Space Space

	Gray float64
	R, G, B float64
	C, M, Y, K float64

	LabHandle handles.LabId
	L, A, Bv  float64 // L*a*b* components; Bv avoids shadowing the B field name.

	ICCProfile handles.ICCProfileId
	ICCValues  []float64

	SeparationHandle handles.SeparationId
	Tint             float64

	PatternHandle handles.PatternId
	// Underlying, when set, is the color to paint an uncolored tiling
	// pattern with (PDF's scn taking both a pattern name and color operands).
	Underlying *Color
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Gray1 builds a DeviceGray color, clamped to [0, 1].
func Gray1(g float64) Color { return Color{Space: DeviceGray, Gray: clamp01(g)} }

// RGB builds a DeviceRGB color, clamped to [0, 1].
func RGB(r, g, b float64) Color {
	return Color{Space: DeviceRGB, R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}

// CMYK builds a DeviceCMYK color, clamped to [0, 1].
func CMYK(c, m, y, k float64) Color {
	return Color{Space: DeviceCMYK, C: clamp01(c), M: clamp01(m), Y: clamp01(y), K: clamp01(k)}
}

// LabColor builds an L*a*b* color referencing a Lab color-space handle. L is
// clamped to [0, 100]; a*/b* are left unclamped (they are signed and the
// valid range is profile-dependent, declared in the /Range array of the Lab
// colorspace object itself).
func LabColor(h handles.LabId, l, a, b float64) Color {
	if l < 0 {
		l = 0
	}
	if l > 100 {
		l = 100
	}
	return Color{Space: Lab, LabHandle: h, L: l, A: a, Bv: b}
}

// ICCColor builds a color in an ICC-based color space, with one clamped
// value per channel.
func ICCColor(h handles.ICCProfileId, values []float64) Color {
	vals := make([]float64, len(values))
	for i, v := range values {
		vals[i] = clamp01(v)
	}
	return Color{Space: ICCBased, ICCProfile: h, ICCValues: vals}
}

// SeparationColor builds a Separation color with a single tint value.
func SeparationColor(h handles.SeparationId, tint float64) Color {
	return Color{Space: Separation, SeparationHandle: h, Tint: clamp01(tint)}
}

// PatternColor builds a color referencing a pattern, optionally with an
// underlying color for uncolored tiling patterns.
func PatternColor(h handles.PatternId, underlying *Color) Color {
	return Color{Space: Pattern, PatternHandle: h, Underlying: underlying}
}

// NumComponents returns how many numeric operands the PDF sc/scn operator
// needs for this color (excluding the pattern name, for Pattern colors).
func (c Color) NumComponents() int {
	switch c.Space {
	case DeviceGray:
		return 1
	case DeviceRGB:
		return 3
	case DeviceCMYK:
		return 4
	case Lab:
		return 3
	case ICCBased:
		return len(c.ICCValues)
	case Separation:
		return 1
	case Pattern:
		if c.Underlying != nil {
			return c.Underlying.NumComponents()
		}
		return 0
	default:
		return 0
	}
}
