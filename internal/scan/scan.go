// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan resolves input paths into the list of files a run processes
// and classifies each file against the format whitelists.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jzbor/raw-to-img/pkg/types"
)

// rawExtensions is the whitelist of recognized raw formats. Extending it is
// a compile-time change; the map is never mutated after init.
var rawExtensions = map[string]bool{
	".cr2": true,
}

// imageExtensions lists already-encoded raster formats that directory runs
// copy or move instead of converting.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
}

// Entry is one file selected by Resolve.
type Entry struct {
	Path string
	Kind types.FileKind
}

// Classify matches the file extension, case-insensitively, against the
// whitelists. Unrecognized files classify as Other; this is never an error,
// so mixed directories can be processed without pre-filtering.
func Classify(path string) types.FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case rawExtensions[ext]:
		return types.KindRaw
	case imageExtensions[ext]:
		return types.KindImage
	}
	return types.KindOther
}

// IsRawExtension reports whether ext (with or without leading dot) is in the
// raw whitelist.
func IsRawExtension(ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return rawExtensions[strings.ToLower(ext)]
}

// Resolve expands an input path into the files a run processes. A regular
// file resolves to itself. A directory resolves to its regular files, in
// lexical order; with recursive set the whole tree is walked. A missing
// path is an error satisfying errors.Is(err, fs.ErrNotExist).
func Resolve(path string, recursive bool) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	if !info.IsDir() {
		return []Entry{{Path: path, Kind: Classify(path)}}, nil
	}

	var entries []Entry
	if recursive {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				entries = append(entries, Entry{Path: p, Kind: Classify(p)})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
		return entries, nil
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, d := range dirEntries {
		if d.Type().IsRegular() {
			p := filepath.Join(path, d.Name())
			entries = append(entries, Entry{Path: p, Kind: Classify(p)})
		}
	}
	return entries, nil
}
