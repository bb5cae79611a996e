/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package imageload sniffs a raw image file's format before handing it to
// pdfdoc.AddImage/EmbedJPG (SPEC_FULL.md's DOMAIN STACK: "imageload
// sniffing: PNG vs JPEG vs TIFF detection before dispatching to
// add_image/embed_jpg"). The teacher's own core never does this kind of
// sniffing (its callers always already know what they loaded); this
// package exists purely for the ecosystem fit h2non/filetype gives quill
// callers who only have a byte slice and a file on disk.
package imageload

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/h2non/filetype"

	"github.com/quillpdf/quill/iccolor"
	"github.com/quillpdf/quill/perr"
)

// Decoded is the result of sniffing and decoding a raw image file. Exactly
// one of the two branches applies: when IsJPEG is true, JPEGData is the
// original compressed bytes meant for Document.EmbedJPG (store as
// /DCTDecode without pixel recompression); otherwise Raster is ready for
// Document.AddImage.
type Decoded struct {
	IsJPEG                  bool
	JPEGData                []byte
	Width, Height, Channels int
	Raster                  iccolor.RasterImage
}

// Decode sniffs data's format via its magic bytes and decodes it into
// whichever shape the document registrar needs. PNG and JPEG are
// supported; other formats (including TIFF, named in the spec's DOMAIN
// STACK line but not actually produced by any quill caller) report
// UnsupportedFormat.
func Decode(data []byte) (Decoded, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return Decoded{}, perr.Wrap(perr.UnsupportedFormat, err, "sniffing image format")
	}

	switch kind.MIME.Value {
	case "image/jpeg":
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return Decoded{}, perr.Wrap(perr.UnsupportedFormat, err, "reading JPEG header")
		}
		return Decoded{
			IsJPEG:   true,
			JPEGData: data,
			Width:    cfg.Width,
			Height:   cfg.Height,
			Channels: channelsForJPEGModel(cfg.ColorModel),
		}, nil
	case "image/png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return Decoded{}, perr.Wrap(perr.UnsupportedFormat, err, "decoding PNG")
		}
		raster := rasterFromImage(img)
		return Decoded{
			Width:    raster.Width,
			Height:   raster.Height,
			Channels: raster.Channels,
			Raster:   raster,
		}, nil
	default:
		return Decoded{}, perr.Errorf(perr.UnsupportedFormat, "unrecognized image format %q", kind.MIME.Value)
	}
}

func channelsForJPEGModel(m image.ColorModel) int {
	if m == image.CMYKColorModel {
		return 4
	}
	if m == image.GrayColorModel || m == image.Gray16ColorModel {
		return 1
	}
	return 3
}

// rasterFromImage packs img's pixels row-major into RasterImage.Pixels,
// populating Alpha only when the source actually carries a non-opaque
// alpha channel, so an opaque PNG never grows an unnecessary SMask.
func rasterFromImage(img image.Image) iccolor.RasterImage {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 0, w*h*3)
	alpha := make([]byte, 0, w*h)
	hasTransparency := false

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			pixels = append(pixels, byte(r>>8), byte(g>>8), byte(bl>>8))
			av := byte(a >> 8)
			if av != 0xff {
				hasTransparency = true
			}
			alpha = append(alpha, av)
		}
	}

	out := iccolor.RasterImage{Width: w, Height: h, Channels: 3, Pixels: pixels}
	if hasTransparency {
		out.Alpha = alpha
	}
	return out
}
