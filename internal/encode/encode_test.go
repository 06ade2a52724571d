// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package encode

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/jzbor/raw-to-img/pkg/types"
)

func TestFor(t *testing.T) {
	tests := []struct {
		format types.OutputFormat
		ext    string
	}{
		{types.FormatJPEG, "jpg"},
		{types.FormatPNG, "png"},
		{types.FormatTIFF, "tif"},
	}
	for _, tt := range tests {
		enc, err := For(tt.format, 90)
		require.NoError(t, err)
		assert.Equal(t, tt.format, enc.Format())
		assert.Equal(t, tt.ext, enc.Extension())
	}

	_, err := For(types.OutputFormat("webp"), 90)
	assert.Error(t, err)
}

func TestEncodeKeepsDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))

	for _, format := range []types.OutputFormat{types.FormatJPEG, types.FormatPNG, types.FormatTIFF} {
		enc, err := For(format, 90)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, enc.Encode(&buf, src))

		decoded, _, err := image.Decode(&buf)
		require.NoError(t, err, "decoding %s output", format)
		assert.Equal(t, 8, decoded.Bounds().Dx(), "%s width", format)
		assert.Equal(t, 6, decoded.Bounds().Dy(), "%s height", format)
	}
}

func TestDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	small := Downscale(src, 10)
	assert.Equal(t, 10, small.Bounds().Dx())
	assert.Equal(t, 5, small.Bounds().Dy())

	// Within bounds and disabled both pass through untouched.
	assert.Equal(t, image.Image(src), Downscale(src, 200))
	assert.Equal(t, image.Image(src), Downscale(src, 0))
}
