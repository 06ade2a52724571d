// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raw

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/soypat/exif"
	"github.com/soypat/exif/exifid"
)

// Meta holds the camera metadata readable from a raw file without running
// the full decoder. CR2 files open with a standard TIFF header, so the
// make, model, and sensor dimensions sit in IFD0 EXIF tags.
type Meta struct {
	Make   string
	Model  string
	Width  int
	Height int
}

// ReadMeta lazily reads IFD0 tags from a raw file. Tags that are absent are
// left zero rather than failing the whole read.
func ReadMeta(r io.ReaderAt) (Meta, error) {
	var dec exif.LazyDecoder
	if err := dec.Decode(r); err != nil {
		return Meta{}, fmt.Errorf("reading EXIF directory: %w", err)
	}

	var m Meta
	if tag, err := dec.GetTag(r, 0, exifid.ImageWidth); err == nil {
		if v, err := tag.Int(); err == nil {
			m.Width = int(v)
		}
	}
	if tag, err := dec.GetTag(r, 0, exifid.ImageHeight); err == nil {
		if v, err := tag.Int(); err == nil {
			m.Height = int(v)
		}
	}
	if tag, err := dec.GetTag(r, 0, exifid.Make); err == nil {
		m.Make = tagValue(tag)
	}
	if tag, err := dec.GetTag(r, 0, exifid.Model); err == nil {
		m.Model = tagValue(tag)
	}
	return m, nil
}

// ReadMetaFile is ReadMeta over a file path.
func ReadMetaFile(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()
	return ReadMeta(f)
}

// tagValue extracts the value portion of a tag's "Name: value" rendering and
// strips the NUL padding ASCII EXIF fields carry.
func tagValue(tag exif.Tag) string {
	s := tag.String()
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.Trim(s, "\x00 "))
}
