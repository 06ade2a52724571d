// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package encode dispatches over the closed set of output codecs. The codecs
// themselves live in the delegated image libraries; this package only picks
// one and feeds it.
package encode

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"golang.org/x/image/tiff"

	"github.com/jzbor/raw-to-img/pkg/types"
)

// Encoder writes an image in one output format.
type Encoder interface {
	// Format returns the canonical format name.
	Format() types.OutputFormat

	// Extension returns the output file extension without dot.
	Extension() string

	// Encode writes img to w.
	Encode(w io.Writer, img image.Image) error
}

// For returns the encoder for a format. quality only affects JPEG.
func For(format types.OutputFormat, quality int) (Encoder, error) {
	switch format {
	case types.FormatJPEG:
		return jpegEncoder{quality: quality}, nil
	case types.FormatPNG:
		return pngEncoder{}, nil
	case types.FormatTIFF:
		return tiffEncoder{}, nil
	}
	return nil, fmt.Errorf("no encoder for format %q", format)
}

type jpegEncoder struct {
	quality int
}

func (e jpegEncoder) Format() types.OutputFormat { return types.FormatJPEG }
func (e jpegEncoder) Extension() string          { return "jpg" }

func (e jpegEncoder) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: e.quality})
}

type pngEncoder struct{}

func (pngEncoder) Format() types.OutputFormat { return types.FormatPNG }
func (pngEncoder) Extension() string          { return "png" }

func (pngEncoder) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type tiffEncoder struct{}

func (tiffEncoder) Format() types.OutputFormat { return types.FormatTIFF }
func (tiffEncoder) Extension() string          { return "tif" }

func (tiffEncoder) Encode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// Downscale shrinks img so its longer edge does not exceed maxDim, keeping
// aspect ratio. Images already within bounds pass through unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
}
