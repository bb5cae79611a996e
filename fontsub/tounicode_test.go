/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package fontsub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToUnicodeConsecutiveRunBecomesRange(t *testing.T) {
	s := &Subset{
		entries: []glyphEntry{
			{kind: kindNotdef},
			{kind: kindRegular, codepoint: 'a'},
			{kind: kindRegular, codepoint: 'b'},
			{kind: kindRegular, codepoint: 'c'},
		},
	}
	out := string(s.buildToUnicode())
	require.True(t, strings.Contains(out, "beginbfrange"))
	require.Contains(t, out, "<0001><0003>")
}

func TestToUnicodeSingleNonConsecutiveBecomesChar(t *testing.T) {
	s := &Subset{
		entries: []glyphEntry{
			{kind: kindNotdef},
			{kind: kindRegular, codepoint: 'a'},
			{kind: kindRegular, codepoint: 'Z'},
		},
	}
	out := string(s.buildToUnicode())
	require.Contains(t, out, "beginbfchar")
	require.Contains(t, out, "<0001>")
	require.Contains(t, out, "<0002>")
}

func TestToUnicodeLigatureEmitsFullString(t *testing.T) {
	s := &Subset{
		entries: []glyphEntry{
			{kind: kindNotdef},
			{kind: kindLigature, ligature: "ffi"},
		},
	}
	out := string(s.buildToUnicode())
	require.Contains(t, out, "beginbfchar")
	require.Contains(t, out, "<006600660069>") // "ffi" as UTF-16BE hex bytes, one hexstring
}
