/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package iccolor drives the document's ICC-based color pipeline (spec.md
// §4.6): opening and validating Gray/RGB/CMYK profiles, scalar
// gray/rgb/cmyk conversions, raster image conversion, and output-intent
// enforcement for PDF-X/PDF-A.
//
// Profile *parsing* (header signature, declared color space, channel
// count) is delegated to seehuhn.de/go/icc, the ICC container-format
// library surfaced by the seehuhn-go-pdf reference repo's dependency
// manifest — the teacher itself never got further than an
// alternate-colorspace fallback (see DESIGN.md). The numeric transform
// itself is a small colorimetric approximation (matrix-based
// RGB<->XYZ<->Lab, naive GCR for CMYK) rather than a full CMM, since no
// example repo in the pack ships one; that limitation is recorded in
// DESIGN.md's iccolor entry.
package iccolor

import (
	"bytes"

	"seehuhn.de/go/icc"

	"github.com/quillpdf/quill/perr"
)

// Space identifies which color space (one of the three device spaces, or
// Lab) a Profile declares itself to be.
type Space int

// The four color spaces a profile may declare.
const (
	SpaceGray Space = iota
	SpaceRGB
	SpaceCMYK
	SpaceLab
)

func (s Space) numComponents() int {
	switch s {
	case SpaceGray:
		return 1
	case SpaceRGB, SpaceLab:
		return 3
	case SpaceCMYK:
		return 4
	default:
		return 0
	}
}

// Profile wraps a parsed ICC profile together with the declared Space it
// must match (spec.md §4.6: "Each profile's channel count is validated").
type Profile struct {
	raw   *icc.Profile
	space Space
	bytes []byte
}

// Open parses an ICC profile from raw bytes and validates that its
// declared color space matches want, returning InvalidICCProfile on parse
// failure or IncorrectColorChannelCount on a channel-count mismatch.
func Open(data []byte, want Space) (*Profile, error) {
	p, err := icc.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, perr.Wrap(perr.InvalidICCProfile, err, "parsing ICC profile")
	}
	got := numComponentsFor(p)
	if got != 0 && got != want.numComponents() {
		return nil, perr.Errorf(perr.IncorrectColorChannelCount,
			"profile declares %d channels, expected %d for the requested color space", got, want.numComponents())
	}
	return &Profile{raw: p, space: want, bytes: data}, nil
}

// numComponentsFor maps the parsed profile's declared color space to its
// channel count.
func numComponentsFor(p *icc.Profile) int {
	switch p.ColorSpace {
	case icc.ColorSpaceGray:
		return 1
	case icc.ColorSpaceRGB, icc.ColorSpaceLab:
		return 3
	case icc.ColorSpaceCMYK:
		return 4
	default:
		return 0
	}
}

// Bytes returns the profile's original, unmodified byte representation —
// used verbatim when embedding it as a PDF /ICCBased stream.
func (p *Profile) Bytes() []byte { return p.bytes }

// Space reports which device color space this profile was opened as.
func (p *Profile) Space() Space { return p.space }

// DefaultSRGB returns quill's built-in fallback RGB profile descriptor
// (spec.md §4.6: "RGB, Gray, and CMYK profiles ... or defaults: sRGB,
// linear D50 gray"). It carries no embedded ICC bytes; the document
// generator uses the corresponding DeviceRGB/DeviceGray/DeviceCMYK
// operators directly rather than an /ICCBased stream when no profile was
// explicitly loaded.
func DefaultSRGB() *Profile { return &Profile{space: SpaceRGB} }

// DefaultGray returns the default linear D50 gray profile descriptor.
func DefaultGray() *Profile { return &Profile{space: SpaceGray} }
