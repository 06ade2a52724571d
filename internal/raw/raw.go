// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raw wraps the raw-format decoder libraries behind a single decode
// call. Demosaicing, white balance, and sensor calibration all happen inside
// the delegated decoder; this package only selects it and guards its input.
package raw

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/nf/cr2"
)

// Format identifies a supported raw format.
type Format string

const (
	// FormatCR2 is the Canon Raw 2 container (TIFF-based).
	FormatCR2 Format = "cr2"
)

// headerLen is the number of leading bytes Sniff needs.
const headerLen = 11

// cr2Magic is the little-endian TIFF byte-order mark and magic number that
// every CR2 file opens with, followed at offset 8 by the "CR" marker.
var cr2Magic = []byte{'I', 'I', 0x2a, 0x00}

// Sniff inspects the leading bytes of a file and reports the raw format they
// announce. It exists so that a file passing the extension whitelist with
// unrelated contents fails up front instead of deep inside the decoder.
func Sniff(header []byte) (Format, bool) {
	if len(header) < headerLen {
		return "", false
	}
	if bytes.Equal(header[:4], cr2Magic) && header[8] == 'C' && header[9] == 'R' {
		return FormatCR2, true
	}
	return "", false
}

// Decode runs the decoder for the given format over r.
func Decode(f Format, r io.Reader) (image.Image, error) {
	switch f {
	case FormatCR2:
		return cr2.Decode(r)
	}
	return nil, fmt.Errorf("no decoder for format %q", f)
}

// FileDecoder decodes whitelisted raw files from disk. It is the production
// implementation of the convert package's Decoder seam.
type FileDecoder struct{}

// Decode opens the file at path, verifies its signature, and decodes it into
// an in-memory image.
func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	format, ok := Sniff(header)
	if !ok {
		return nil, fmt.Errorf("%s: file signature does not match any supported raw format", path)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return Decode(format, f)
}
