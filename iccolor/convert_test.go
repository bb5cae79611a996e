/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package iccolor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/perr"
)

func TestToCMYKRequiresProfile(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	_, _, _, _, err := p.ToCMYK(1, 0, 0)
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.NoCmykProfile))
}

func TestToCMYKWithProfileRoundTrips(t *testing.T) {
	p := NewPipeline(nil, nil, &Profile{space: SpaceCMYK})
	c, m, y, k, err := p.ToCMYK(1, 0, 0)
	require.NoError(t, err)
	r, g, b := p.CMYKToRGB(c, m, y, k)
	require.InDelta(t, 1.0, r, 0.05)
	require.InDelta(t, 0.0, g, 0.05)
	require.InDelta(t, 0.0, b, 0.05)
}

func TestToGrayLuma(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	require.InDelta(t, 1.0, p.ToGray(1, 1, 1), 0.001)
	require.InDelta(t, 0.0, p.ToGray(0, 0, 0), 0.001)
}

func TestConvertImageIdentity(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	img := RasterImage{Width: 1, Height: 1, Channels: 3, Pixels: []byte{10, 20, 30}}
	out, err := p.ConvertImage(img, OutRGB, IntentRelativeColorimetric)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30}, out.Pixels)
}

func TestConvertImageRGBToGray(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	img := RasterImage{Width: 1, Height: 1, Channels: 3, Pixels: []byte{255, 255, 255}}
	out, err := p.ConvertImage(img, OutGray, IntentRelativeColorimetric)
	require.NoError(t, err)
	require.Len(t, out.Pixels, 1)
	require.InDelta(t, 255, int(out.Pixels[0]), 1)
}

func TestConvertImagePreservesAlpha(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	img := RasterImage{Width: 1, Height: 1, Channels: 3, Pixels: []byte{1, 2, 3}, Alpha: []byte{128}}
	out, err := p.ConvertImage(img, OutGray, IntentRelativeColorimetric)
	require.NoError(t, err)
	require.Equal(t, []byte{128}, out.Alpha)
}

func TestHasCMYKProfile(t *testing.T) {
	p1 := NewPipeline(nil, nil, nil)
	require.False(t, p1.HasCMYKProfile())
	p2 := NewPipeline(nil, nil, &Profile{space: SpaceCMYK})
	require.True(t, p2.HasCMYKProfile())
}

func TestCheckImageCompatibleRejectsMismatch(t *testing.T) {
	intent := &OutputIntent{Space: SpaceCMYK}
	img := RasterImage{Width: 1, Height: 1, Channels: 3, Pixels: []byte{1, 2, 3}}
	err := CheckImageCompatible(intent, img)
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.ImageFormatNotPermitted))
}

func TestCheckImageCompatibleAllowsEmbeddedProfile(t *testing.T) {
	intent := &OutputIntent{Space: SpaceCMYK}
	img := RasterImage{Width: 1, Height: 1, Channels: 3, Pixels: []byte{1, 2, 3}, SourceProfile: &Profile{space: SpaceRGB}}
	require.NoError(t, CheckImageCompatible(intent, img))
}

func TestLabToRGBGrayAxis(t *testing.T) {
	r, g, b := LabToRGB(100, 0, 0)
	require.InDelta(t, 1.0, r, 0.02)
	require.InDelta(t, 1.0, g, 0.02)
	require.InDelta(t, 1.0, b, 0.02)

	r, g, b = LabToRGB(0, 0, 0)
	require.InDelta(t, 0.0, r, 0.02)
	require.InDelta(t, 0.0, g, 0.02)
	require.InDelta(t, 0.0, b, 0.02)
}
