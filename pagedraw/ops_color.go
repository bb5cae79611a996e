/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

import (
	"fmt"
	"strings"

	"github.com/quillpdf/quill/pcolor"
	"github.com/quillpdf/quill/perr"
)

// Color operators (spec.md §4.3): the low-level DeviceGray/DeviceRGB/
// DeviceCMYK setters (g/G/rg/RG/k/K) plus the colorspace-selecting cs/CS and
// the general scn/SCN/sc/SC family, and one high-level wrapper per paint
// role that dispatches on pcolor.Color's tag so callers never have to pick
// the right low-level operator by hand.

// StrokeGray adds `gray G`.
func (d *DrawContext) StrokeGray(gray float64) {
	d.cs.Append(fmt.Sprintf("%s G", fnum(clamp01(gray))))
}

// FillGray adds `gray g`.
func (d *DrawContext) FillGray(gray float64) {
	d.cs.Append(fmt.Sprintf("%s g", fnum(clamp01(gray))))
}

// StrokeRGB adds `r g b RG`.
func (d *DrawContext) StrokeRGB(r, g, b float64) {
	d.cs.Append(fmt.Sprintf("%s %s %s RG", fnum(clamp01(r)), fnum(clamp01(g)), fnum(clamp01(b))))
}

// FillRGB adds `r g b rg`.
func (d *DrawContext) FillRGB(r, g, b float64) {
	d.cs.Append(fmt.Sprintf("%s %s %s rg", fnum(clamp01(r)), fnum(clamp01(g)), fnum(clamp01(b))))
}

// StrokeCMYK adds `c m y k K`. Requires a declared CMYK output profile
// (spec.md §4.3: "For CMYK operators, the document must have a CMYK output
// profile declared, otherwise NoCmykProfile").
func (d *DrawContext) StrokeCMYK(c, m, y, k float64) error {
	if err := d.requireCMYKProfile(); err != nil {
		return err
	}
	d.cs.Append(fmt.Sprintf("%s %s %s %s K", fnum(clamp01(c)), fnum(clamp01(m)), fnum(clamp01(y)), fnum(clamp01(k))))
	return nil
}

// FillCMYK adds `c m y k k`. Requires a declared CMYK output profile.
func (d *DrawContext) FillCMYK(c, m, y, k float64) error {
	if err := d.requireCMYKProfile(); err != nil {
		return err
	}
	d.cs.Append(fmt.Sprintf("%s %s %s %s k", fnum(clamp01(c)), fnum(clamp01(m)), fnum(clamp01(y)), fnum(clamp01(k))))
	return nil
}

// StrokeColorSpace adds `/Name CS`, selecting a non-device color space for
// subsequent SCN operands.
func (d *DrawContext) StrokeColorSpace(resourceName string) {
	d.cs.Append(fmt.Sprintf("/%s CS", resourceName))
}

// FillColorSpace adds `/Name cs`.
func (d *DrawContext) FillColorSpace(resourceName string) {
	d.cs.Append(fmt.Sprintf("/%s cs", resourceName))
}

func formatComponents(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fnum(clamp01(v))
	}
	return strings.Join(parts, " ")
}

// StrokeColor is the high-level stroke-color setter: it dispatches on c's
// tag and emits the matching low-level operator (G/RG/K, or CS+SCN for
// Lab/ICCBased/Separation/Pattern), recording any handle the color
// references as a resource use.
func (d *DrawContext) StrokeColor(c pcolor.Color) error {
	return d.setColor(c, true)
}

// FillColor is the high-level fill-color setter; see StrokeColor.
func (d *DrawContext) FillColor(c pcolor.Color) error {
	return d.setColor(c, false)
}

func (d *DrawContext) setColor(c pcolor.Color, stroke bool) error {
	csOp := "cs"
	if stroke {
		csOp = "CS"
	}
	switch c.Space {
	case pcolor.DeviceGray:
		if stroke {
			d.StrokeGray(c.Gray)
		} else {
			d.FillGray(c.Gray)
		}
		return nil
	case pcolor.DeviceRGB:
		if stroke {
			d.StrokeRGB(c.R, c.G, c.B)
		} else {
			d.FillRGB(c.R, c.G, c.B)
		}
		return nil
	case pcolor.DeviceCMYK:
		if stroke {
			return d.StrokeCMYK(c.C, c.M, c.Y, c.K)
		}
		return d.FillCMYK(c.C, c.M, c.Y, c.K)
	case pcolor.Lab:
		if !c.LabHandle.Valid() {
			return perr.New(perr.NullArgument, "invalid Lab color-space handle")
		}
		d.usage.addLab(c.LabHandle)
		d.cs.Append(fmt.Sprintf("/Lab%d %s", int(c.LabHandle), csOp))
		op := "scn"
		if stroke {
			op = "SCN"
		}
		d.cs.Append(fmt.Sprintf("%s %s %s %s", fnum(c.L), fnum(c.A), fnum(c.Bv), op))
		return nil
	case pcolor.ICCBased:
		if !c.ICCProfile.Valid() {
			return perr.New(perr.NullArgument, "invalid ICC profile handle")
		}
		d.usage.addICC(c.ICCProfile)
		d.cs.Append(fmt.Sprintf("/ICC%d %s", int(c.ICCProfile), csOp))
		op := "scn"
		if stroke {
			op = "SCN"
		}
		d.cs.Append(fmt.Sprintf("%s %s", formatComponents(c.ICCValues), op))
		return nil
	case pcolor.Separation:
		if !c.SeparationHandle.Valid() {
			return perr.New(perr.NullArgument, "invalid Separation handle")
		}
		d.usage.addSeparation(c.SeparationHandle)
		d.cs.Append(fmt.Sprintf("/Sep%d %s", int(c.SeparationHandle), csOp))
		op := "scn"
		if stroke {
			op = "SCN"
		}
		d.cs.Append(fmt.Sprintf("%s %s", fnum(clamp01(c.Tint)), op))
		return nil
	case pcolor.Pattern:
		return d.setPatternColor(c, stroke)
	default:
		return perr.Errorf(perr.BadEnum, "unknown color space tag %d", c.Space)
	}
}

func (d *DrawContext) setPatternColor(c pcolor.Color, stroke bool) error {
	if !c.PatternHandle.Valid() {
		return perr.New(perr.NullArgument, "invalid pattern handle")
	}
	d.usage.addPattern(c.PatternHandle)
	op := "scn"
	if stroke {
		op = "SCN"
	}
	name := fmt.Sprintf("/P%d", int(c.PatternHandle))
	if c.Underlying != nil {
		switch c.Underlying.Space {
		case pcolor.DeviceGray, pcolor.DeviceRGB, pcolor.DeviceCMYK, pcolor.ICCBased:
		default:
			return perr.New(perr.BadEnum, "uncolored tiling pattern underlying color must be device or ICC")
		}
		comps := underlyingComponents(*c.Underlying)
		d.cs.Append(fmt.Sprintf("%s %s %s", formatComponents(comps), name, op))
		return nil
	}
	d.cs.Append(fmt.Sprintf("%s %s", name, op))
	return nil
}

func underlyingComponents(c pcolor.Color) []float64 {
	switch c.Space {
	case pcolor.DeviceGray:
		return []float64{c.Gray}
	case pcolor.DeviceRGB:
		return []float64{c.R, c.G, c.B}
	case pcolor.DeviceCMYK:
		return []float64{c.C, c.M, c.Y, c.K}
	case pcolor.ICCBased:
		return c.ICCValues
	default:
		return nil
	}
}
