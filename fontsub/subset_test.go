/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package fontsub

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unidoc/unitype"

	"github.com/quillpdf/quill/perr"
)

func emptySubset() *Subset {
	return &Subset{
		byGlyphID:   map[unitype.GlyphIndex]uint16{0: 0},
		byCodepoint: map[rune]uint16{},
		entries:     []glyphEntry{{kind: kindNotdef}},
	}
}

func TestAddCompositeReferenceDedups(t *testing.T) {
	s := emptySubset()
	idx1, err := s.AddCompositeReference(42)
	require.NoError(t, err)
	idx2, err := s.AddCompositeReference(42)
	require.NoError(t, err)
	require.Equal(t, idx1, idx2)
	require.Equal(t, 2, s.Size())
}

func TestAddLigatureDedups(t *testing.T) {
	s := emptySubset()
	idx1, err := s.AddLigature("ffi", 99)
	require.NoError(t, err)
	idx2, err := s.AddLigature("ffi", 99)
	require.NoError(t, err)
	require.Equal(t, idx1, idx2)
}

func TestSubsetRejectsBeyondCap(t *testing.T) {
	s := emptySubset()
	for i := uint16(1); i < maxSubsetGlyphs; i++ {
		_, err := s.AddCompositeReference(unitype.GlyphIndex(i))
		require.NoError(t, err)
	}
	require.True(t, s.full())
	_, err := s.AddCompositeReference(unitype.GlyphIndex(maxSubsetGlyphs + 1000))
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.TooManyGlyphsUsed))
}

func TestNotdefAtIndexZero(t *testing.T) {
	s := emptySubset()
	require.Equal(t, kindNotdef, s.entries[0].kind)
	idx, ok := s.byGlyphID[0]
	require.True(t, ok)
	require.Equal(t, uint16(0), idx)
}
