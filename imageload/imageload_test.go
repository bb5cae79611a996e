/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package imageload

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeOpaquePNGHasNoAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	decoded, err := Decode(encodePNG(t, img))
	require.NoError(t, err)
	require.False(t, decoded.IsJPEG)
	require.Equal(t, 2, decoded.Width)
	require.Equal(t, 2, decoded.Height)
	require.Equal(t, 3, decoded.Channels)
	require.Nil(t, decoded.Raster.Alpha)
}

func TestDecodeTransparentPNGPopulatesAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 128})
	img.Set(0, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 0})

	decoded, err := Decode(encodePNG(t, img))
	require.NoError(t, err)
	require.NotNil(t, decoded.Raster.Alpha)
	require.Len(t, decoded.Raster.Alpha, 4)
}

func TestDecodeJPEGReturnsCompressedBytesUntouched(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.True(t, decoded.IsJPEG)
	require.Equal(t, buf.Bytes(), decoded.JPEGData)
	require.Equal(t, 4, decoded.Width)
	require.Equal(t, 4, decoded.Height)
	require.Equal(t, 3, decoded.Channels)
}

func TestDecodeUnsupportedFormatReturnsError(t *testing.T) {
	_, err := Decode([]byte("not an image, just plain text padding bytes"))
	require.Error(t, err)
}

func TestChannelsForJPEGModel(t *testing.T) {
	require.Equal(t, 4, channelsForJPEGModel(image.CMYKColorModel))
	require.Equal(t, 1, channelsForJPEGModel(image.GrayColorModel))
	require.Equal(t, 3, channelsForJPEGModel(color.RGBAModel))
}
