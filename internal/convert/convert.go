// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates one conversion run: derive the output path,
// decode through the raw collaborator, encode through the selected codec,
// and write the result. It owns no image math of its own.
package convert

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jzbor/raw-to-img/internal/encode"
	"github.com/jzbor/raw-to-img/internal/scan"
	"github.com/jzbor/raw-to-img/pkg/types"
)

// Decoder turns a raw file on disk into an in-memory image. internal/raw
// provides the production implementation; tests substitute fakes.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// OutputPath derives the destination for input. With an output base the
// input's path relative to inputBase is mirrored under it; otherwise the
// output is a sibling of the input. Raw files get the encoder's extension,
// all other kinds keep their name.
func OutputPath(input, inputBase, outputBase string, kind types.FileKind, ext string) (string, error) {
	out := input
	if outputBase != "" {
		base := inputBase
		if base == "" {
			base = filepath.Dir(input)
		}
		rel, err := filepath.Rel(base, input)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", fmt.Errorf("deriving output path: %s is not under %s", input, base)
		}
		out = filepath.Join(outputBase, rel)
	}
	if kind == types.KindRaw {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + "." + ext
	}
	return out, nil
}

// ConvertFile converts a single raw file at input and writes it to output.
// The returned record carries timings and the final status; the error, when
// non-nil, is one of the taxonomy in errors.go (or wraps fs.ErrNotExist).
// Exactly one file is created on success; the input is never modified.
func ConvertFile(dec Decoder, enc encode.Encoder, input, output string, cfg types.ConvertConfig) (types.FileRecord, error) {
	rec := types.FileRecord{
		Input:  input,
		Output: output,
		Kind:   scan.Classify(input),
		Status: types.StatusFailed,
	}

	if rec.Kind != types.KindRaw {
		return rec, fmt.Errorf("%s: %w", input, ErrUnsupported)
	}

	if !cfg.Overwrite {
		if _, err := os.Stat(output); err == nil {
			rec.Status = types.StatusSkipped
			return rec, nil
		}
	}

	start := time.Now()
	img, err := dec.Decode(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rec, fmt.Errorf("opening %s: %w", input, err)
		}
		return rec, &DecodeError{Path: input, Err: err}
	}
	rec.DecodeTime = time.Since(start)

	img = encode.Downscale(img, cfg.MaxDim)

	start = time.Now()
	if err := writeImage(enc, img, output); err != nil {
		return rec, err
	}
	rec.EncodeTime = time.Since(start)
	rec.Status = types.StatusConverted

	if cfg.Sidecar {
		if err := writeSidecar(rec, enc.Format(), img.Bounds()); err != nil {
			return rec, &WriteError{Path: output + sidecarSuffix, Err: err}
		}
	}
	return rec, nil
}

// writeImage encodes img into a temp file in the destination directory and
// renames it into place, so a failed encode never leaves a partial output.
func writeImage(enc encode.Encoder, img image.Image, output string) error {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: output, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".raw-to-img-*")
	if err != nil {
		return &WriteError{Path: output, Err: err}
	}
	tmpName := tmp.Name()

	if err := enc.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &EncodeError{Path: output, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: output, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: output, Err: err}
	}
	if err := os.Rename(tmpName, output); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: output, Err: err}
	}
	return nil
}
