/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package iccolor

import "github.com/quillpdf/quill/perr"

// OutputIntent describes the document-level output condition declared for
// PDF-X/PDF-A conformance (spec.md §4.6, supplemented in SPEC_FULL.md's
// PDF-A/PDF-X section).
type OutputIntent struct {
	Identifier  string // e.g. "CGATS TR 001" or "sRGB IEC61966-2.1"
	Condition   string
	RegistryURL string
	Profile     *Profile // nil means the intent is identified by name only
	Space       Space
}

// CheckImageCompatible enforces spec.md §4.6's output-intent rule: "if the
// document declares an output intent ... the writer ensures every image
// stored is already in a colour space compatible with that intent, or that
// an ICC profile is attached." Called at image-registration time.
func CheckImageCompatible(intent *OutputIntent, img RasterImage) error {
	if intent == nil {
		return nil
	}
	if img.SourceProfile != nil {
		return nil
	}
	if !channelsMatchSpace(img.Channels, intent.Space) {
		return perr.Errorf(perr.ImageFormatNotPermitted,
			"image has %d channels, incompatible with declared output intent color space", img.Channels)
	}
	return nil
}

func channelsMatchSpace(channels int, space Space) bool {
	switch space {
	case SpaceGray:
		return channels == 1
	case SpaceRGB, SpaceLab:
		return channels == 3
	case SpaceCMYK:
		return channels == 4
	default:
		return false
	}
}
