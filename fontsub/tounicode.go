/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package fontsub

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// cmapHeader/cmapTrailer wrap the bfchar/bfrange body into a complete
// ToUnicode CMap stream, matching the fixed boilerplate every PDF viewer
// expects around the mapping data.
const cmapHeader = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo
<< /Registry (Adobe)
/Ordering (UCS)
/Supplement 0
>> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange`

const cmapTrailer = `endcmap
CMapName currentdict /CMap defineresource pop
end
end`

const maxBfEntries = 100

// buildToUnicode emits the bfchar/bfrange sections for this subset's
// regular and ligature glyphs (spec.md §4.5's "ToUnicode CMap" section),
// grounded on the teacher's internal/cmap.CMap.toBfData: consecutive
// subset indices that map to consecutive codepoints are merged into a
// single bfrange; everything else (including every ligature) is emitted as
// an individual bfchar.
func (s *Subset) buildToUnicode() []byte {
	type single struct {
		index uint16
		text  string // UTF-16BE-encodable text this glyph maps to
	}

	var singles []single
	var rangeable []struct {
		index uint16
		r     rune
	}

	for i, e := range s.entries {
		switch e.kind {
		case kindRegular:
			rangeable = append(rangeable, struct {
				index uint16
				r     rune
			}{uint16(i), e.codepoint})
		case kindLigature:
			singles = append(singles, single{index: uint16(i), text: e.ligature})
		case kindNotdef, kindComposite:
			// No ToUnicode entry: .notdef and pure composite components
			// carry no codepoint of their own.
		}
	}

	sort.Slice(rangeable, func(i, j int) bool { return rangeable[i].index < rangeable[j].index })

	type charRange struct {
		i0, i1 uint16
		r0     rune
	}
	var ranges []charRange
	for _, e := range rangeable {
		if len(ranges) > 0 {
			last := &ranges[len(ranges)-1]
			if e.index == last.i1+1 && e.r == last.r0+rune(last.i1-last.i0)+1 {
				last.i1 = e.index
				continue
			}
		}
		ranges = append(ranges, charRange{i0: e.index, i1: e.index, r0: e.r})
	}

	var lines []string
	var bfChars []charRange
	var bfRanges []charRange
	for _, r := range ranges {
		if r.i0 == r.i1 {
			bfChars = append(bfChars, r)
		} else {
			bfRanges = append(bfRanges, r)
		}
	}
	for _, single := range singles {
		bfChars = append(bfChars, charRange{i0: single.index, i1: single.index, r0: -1})
	}
	ligatureText := map[uint16]string{}
	for _, sg := range singles {
		ligatureText[sg.index] = sg.text
	}

	emitChars := func(entries []charRange) {
		for off := 0; off < len(entries); off += maxBfEntries {
			end := off + maxBfEntries
			if end > len(entries) {
				end = len(entries)
			}
			chunk := entries[off:end]
			lines = append(lines, fmt.Sprintf("%d beginbfchar", len(chunk)))
			for _, c := range chunk {
				var hex string
				if c.r0 == -1 {
					hex = utf16HexString(ligatureText[c.i0])
				} else {
					hex = utf16HexString(string(c.r0))
				}
				lines = append(lines, fmt.Sprintf("<%04X> %s", c.i0, hex))
			}
			lines = append(lines, "endbfchar")
		}
	}
	emitRanges := func(entries []charRange) {
		for off := 0; off < len(entries); off += maxBfEntries {
			end := off + maxBfEntries
			if end > len(entries) {
				end = len(entries)
			}
			chunk := entries[off:end]
			lines = append(lines, fmt.Sprintf("%d beginbfrange", len(chunk)))
			for _, c := range chunk {
				lines = append(lines, fmt.Sprintf("<%04X><%04X> %s", c.i0, c.i1, utf16HexString(string(c.r0))))
			}
			lines = append(lines, "endbfrange")
		}
	}

	if len(bfChars) > 0 {
		sort.Slice(bfChars, func(i, j int) bool { return bfChars[i].i0 < bfChars[j].i0 })
		emitChars(bfChars)
	}
	if len(bfRanges) > 0 {
		emitRanges(bfRanges)
	}

	body := strings.Join(lines, "\n")
	return []byte(strings.Join([]string{cmapHeader, body, cmapTrailer}, "\n"))
}

// utf16HexString returns the hex-encoded UTF-16BE bytes of s, wrapped in
// PDF hexstring angle brackets.
func utf16HexString(s string) string {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := enc.String(s)
	if err != nil {
		return "<0000>"
	}
	var b strings.Builder
	b.WriteString("<")
	for i := 0; i < len(encoded); i++ {
		fmt.Fprintf(&b, "%02X", encoded[i])
	}
	b.WriteString(">")
	return b.String()
}
