/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/iccolor"
	"github.com/quillpdf/quill/imageload"
)

// imageEntry holds the object number of one registered image XObject's
// stream; the /Image dictionary + stream is built eagerly
// (unlike fonts, images need no further mutation once registered).
type imageEntry struct {
	id core.ObjectID
}

// ImageProperties configures add_image's handling of a raw raster (spec.md
// §4.7): the declared output intent of the document, if any, is enforced
// against it before the pixels are ever written.
type ImageProperties struct {
	Intent       iccolor.Intent
	SourceIsJPEG bool
}

// AddImage implements spec.md §4.7's add_image: stores img's pixels in the
// device color space matching its channel count (1 → DeviceGray,
// 4 → DeviceCMYK, anything else → DeviceRGB), computes an SMask object from
// img.Alpha when present, and registers a stream object. The document has
// no output color space setting, and pixels are not converted to one.
func (d *Document) AddImage(img iccolor.RasterImage, props ImageProperties) (handles.ImageId, error) {
	if err := iccolor.CheckImageCompatible(d.props.OutputIntent, img); err != nil {
		return 0, err
	}

	out := outputSpaceFor(img.Channels)
	converted, err := d.color.ConvertImage(img, out, props.Intent)
	if err != nil {
		return 0, err
	}

	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("XObject"))
	dict.Set("Subtype", core.MakeName("Image"))
	dict.Set("Width", core.MakeInteger(int64(converted.Width)))
	dict.Set("Height", core.MakeInteger(int64(converted.Height)))
	dict.Set("BitsPerComponent", core.MakeInteger(8))
	dict.Set("ColorSpace", deviceColorSpaceName(out))

	if len(img.Alpha) > 0 {
		smaskID, err := d.addSMask(img)
		if err != nil {
			return 0, err
		}
		dict.Set("SMask", core.MakeRef(smaskID))
	}

	streamID, err := d.addStream(dict, converted.Pixels)
	if err != nil {
		return 0, err
	}

	id := handles.ImageId(len(d.images) + 1)
	d.images[id] = &imageEntry{id: streamID}
	return id, nil
}

// AddImageFile sniffs raw, still-encoded image bytes (PNG or JPEG) and
// dispatches to AddImage or EmbedJPG accordingly, so a caller holding a
// file straight off disk never has to decide which path applies
// (SPEC_FULL.md's DOMAIN STACK: "imageload sniffing ... before dispatching
// to add_image/embed_jpg").
func (d *Document) AddImageFile(data []byte, props ImageProperties) (handles.ImageId, error) {
	decoded, err := imageload.Decode(data)
	if err != nil {
		return 0, err
	}
	if decoded.IsJPEG {
		return d.EmbedJPG(decoded.JPEGData, decoded.Width, decoded.Height, decoded.Channels)
	}
	return d.AddImage(decoded.Raster, props)
}

// EmbedJPG implements spec.md §4.7's embed_jpg: the JPEG's compressed bytes
// are stored directly under /DCTDecode without decompress-recompress
// round-tripping ("store as /DCTDecode without pixel recompression").
func (d *Document) EmbedJPG(data []byte, width, height int, channels int) (handles.ImageId, error) {
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("XObject"))
	dict.Set("Subtype", core.MakeName("Image"))
	dict.Set("Width", core.MakeInteger(int64(width)))
	dict.Set("Height", core.MakeInteger(int64(height)))
	dict.Set("BitsPerComponent", core.MakeInteger(8))
	dict.Set("ColorSpace", deviceColorSpaceName(outputSpaceFor(channels)))
	dict.Set("Filter", core.MakeName("DCTDecode"))
	dict.Set("Length", core.MakeInteger(int64(len(data))))

	streamID := d.addFull(&core.PdfObjectStream{PdfObjectDictionary: dict, Stream: data})
	id := handles.ImageId(len(d.images) + 1)
	d.images[id] = &imageEntry{id: streamID}
	return id, nil
}

// addSMask registers an 8-bit DeviceGray stream built from img's alpha
// channel, used as an image's /SMask entry (spec.md §4.7: "compute SMask
// if alpha present").
func (d *Document) addSMask(img iccolor.RasterImage) (core.ObjectID, error) {
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("XObject"))
	dict.Set("Subtype", core.MakeName("Image"))
	dict.Set("Width", core.MakeInteger(int64(img.Width)))
	dict.Set("Height", core.MakeInteger(int64(img.Height)))
	dict.Set("BitsPerComponent", core.MakeInteger(8))
	dict.Set("ColorSpace", core.MakeName("DeviceGray"))
	return d.addStream(dict, img.Alpha)
}

func outputSpaceFor(channels int) iccolor.OutputSpace {
	switch channels {
	case 1:
		return iccolor.OutGray
	case 4:
		return iccolor.OutCMYK
	default:
		return iccolor.OutRGB
	}
}

func deviceColorSpaceName(space iccolor.OutputSpace) *core.PdfObjectName {
	switch space {
	case iccolor.OutGray:
		return core.MakeName("DeviceGray")
	case iccolor.OutCMYK:
		return core.MakeName("DeviceCMYK")
	default:
		return core.MakeName("DeviceRGB")
	}
}
