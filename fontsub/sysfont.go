/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package fontsub

import (
	"os"

	"github.com/adrg/sysfont"

	"github.com/quillpdf/quill/perr"
)

// SystemFinder locates an installed system font file by family name. It is
// an optional convenience for callers assembling a document outside of
// quill's core (a sample CLI, a script that wants "whatever sans-serif
// font the machine has") — named in SPEC_FULL.md's DOMAIN STACK as
// "optional fallback used only by the (out-of-scope) sample CLI, not the
// core." LoadFont itself never calls this: quill's core always takes font
// bytes the caller already chose.
type SystemFinder struct {
	finder *sysfont.Finder
}

// NewSystemFinder builds a SystemFinder over the host's installed fonts.
func NewSystemFinder() *SystemFinder {
	return &SystemFinder{finder: sysfont.NewFinder(nil)}
}

// Find returns the file path of an installed font matching family, or an
// error if none was found.
func (f *SystemFinder) Find(family string) (string, error) {
	font := f.finder.Match(family)
	if font == nil {
		return "", perr.Errorf(perr.FontNotSpecified, "no system font matching %q", family)
	}
	return font.Filename, nil
}

// LoadSystemFont finds and reads the named system font's bytes, ready for
// Document.LoadFont. Convenience wrapper for the sample CLI path described
// above.
func (f *SystemFinder) LoadSystemFont(family string) ([]byte, error) {
	path, err := f.Find(family)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrap(perr.FileReadError, err, "reading system font file")
	}
	return data, nil
}
