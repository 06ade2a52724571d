// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jzbor/raw-to-img/internal/scan"
	"github.com/jzbor/raw-to-img/pkg/types"
)

func resolveTree(t *testing.T, dir string) []scan.Entry {
	t.Helper()
	entries, err := scan.Resolve(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := scan.Resolve(dir, true)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatal(err)
	}
	return len(entries)
}

func TestBatchDirectoryRun(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	mustWrite(t, filepath.Join(in, "a.cr2"))
	mustWrite(t, filepath.Join(in, "sub", "b.cr2"))
	mustWrite(t, filepath.Join(in, "photo.jpg"))
	mustWrite(t, filepath.Join(in, "notes.txt"))

	dec := fakeDecoder{img: testImage(4, 4)}
	var log, errLog bytes.Buffer
	b := &Batch{
		Decoder:   dec,
		Encoder:   pngEncoder(t),
		Config:    types.ConvertConfig{OnImage: types.ActionIgnore, OnOther: types.ActionIgnore, OutputDir: out},
		InputBase: in,
		Out:       &log,
		Errw:      &errLog,
	}
	st, records := b.Run(resolveTree(t, in))

	// Two raw files in, exactly two output files; non-raw files ignored.
	if got := countFiles(t, out); got != 2 {
		t.Errorf("output tree holds %d files, want 2", got)
	}
	if st.Decoded.Count != 2 || st.Encoded.Count != 2 {
		t.Errorf("decoded/encoded = %d/%d, want 2/2", st.Decoded.Count, st.Encoded.Count)
	}
	if st.Skipped.Count != 2 {
		t.Errorf("skipped = %d, want 2 (jpg and txt)", st.Skipped.Count)
	}
	if st.Errors.Count != 0 {
		t.Errorf("errors = %d, want 0; stderr: %s", st.Errors.Count, errLog.String())
	}
	if len(records) != 4 {
		t.Errorf("records = %d, want 4", len(records))
	}

	// The subdirectory is mirrored.
	if _, err := os.Stat(filepath.Join(out, "sub", "b.png")); err != nil {
		t.Errorf("mirrored output missing: %v", err)
	}
}

func TestBatchContinuesPastFailures(t *testing.T) {
	in := t.TempDir()
	good := filepath.Join(in, "good.cr2")
	bad := filepath.Join(in, "bad.cr2")
	mustWrite(t, good)
	mustWrite(t, bad)

	dec := selectiveDecoder{
		images: map[string]image.Image{good: testImage(4, 4)},
		errors: map[string]error{bad: errors.New("corrupt tile data")},
	}
	var log, errLog bytes.Buffer
	b := &Batch{
		Decoder:   dec,
		Encoder:   pngEncoder(t),
		Config:    types.ConvertConfig{OnImage: types.ActionIgnore, OnOther: types.ActionIgnore},
		InputBase: in,
		Out:       &log,
		Errw:      &errLog,
	}
	st, records := b.Run(resolveTree(t, in))

	if st.Errors.Count != 1 {
		t.Errorf("errors = %d, want 1", st.Errors.Count)
	}
	if st.Encoded.Count != 1 {
		t.Errorf("encoded = %d, want 1", st.Encoded.Count)
	}
	if !strings.Contains(errLog.String(), "corrupt tile data") {
		t.Errorf("stderr %q missing decoder diagnostic", errLog.String())
	}
	if _, err := os.Stat(filepath.Join(in, "good.png")); err != nil {
		t.Errorf("sibling of the corrupt file did not convert: %v", err)
	}

	var failed int
	for _, rec := range records {
		if rec.Status == types.StatusFailed {
			failed++
			if rec.Error == "" {
				t.Error("failed record carries no error message")
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed records = %d, want 1", failed)
	}
}

func TestBatchOutputCollision(t *testing.T) {
	in := t.TempDir()
	mustWrite(t, filepath.Join(in, "a.CR2"))
	mustWrite(t, filepath.Join(in, "a.cr2"))

	dec := fakeDecoder{img: testImage(4, 4)}
	var log, errLog bytes.Buffer
	b := &Batch{
		Decoder:   dec,
		Encoder:   pngEncoder(t),
		Config:    types.ConvertConfig{OnImage: types.ActionIgnore, OnOther: types.ActionIgnore},
		InputBase: in,
		Out:       &log,
		Errw:      &errLog,
	}
	st, _ := b.Run(resolveTree(t, in))

	if st.Encoded.Count != 1 {
		t.Errorf("encoded = %d, want 1", st.Encoded.Count)
	}
	if st.Errors.Count != 1 {
		t.Errorf("errors = %d, want 1", st.Errors.Count)
	}
	if !strings.Contains(errLog.String(), "collides") {
		t.Errorf("stderr %q missing collision report", errLog.String())
	}
}

func TestBatchCopyAndMoveActions(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	mustWrite(t, filepath.Join(in, "photo.jpg"))
	mustWrite(t, filepath.Join(in, "notes.txt"))

	var log, errLog bytes.Buffer
	b := &Batch{
		Decoder:   fakeDecoder{img: testImage(4, 4)},
		Encoder:   pngEncoder(t),
		Config:    types.ConvertConfig{OnImage: types.ActionCopy, OnOther: types.ActionMove, OutputDir: out},
		InputBase: in,
		Out:       &log,
		Errw:      &errLog,
	}
	st, _ := b.Run(resolveTree(t, in))

	if st.Copied.Count != 1 || st.Moved.Count != 1 {
		t.Errorf("copied/moved = %d/%d, want 1/1", st.Copied.Count, st.Moved.Count)
	}
	if _, err := os.Stat(filepath.Join(out, "photo.jpg")); err != nil {
		t.Errorf("copied file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(in, "photo.jpg")); err != nil {
		t.Errorf("copy removed the source: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "notes.txt")); err != nil {
		t.Errorf("moved file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(in, "notes.txt")); err == nil {
		t.Error("move left the source behind")
	}
}

func TestBatchSkipsExistingOutputs(t *testing.T) {
	in := t.TempDir()
	mustWrite(t, filepath.Join(in, "a.cr2"))
	mustWrite(t, filepath.Join(in, "a.png"))

	var log, errLog bytes.Buffer
	b := &Batch{
		Decoder:   fakeDecoder{img: testImage(4, 4)},
		Encoder:   pngEncoder(t),
		Config:    types.ConvertConfig{OnImage: types.ActionIgnore, OnOther: types.ActionIgnore},
		InputBase: in,
		Out:       &log,
		Errw:      &errLog,
	}
	st, _ := b.Run(resolveTree(t, in))

	// a.png already exists: the raw file skips, the image file is ignored.
	if st.Encoded.Count != 0 {
		t.Errorf("encoded = %d, want 0", st.Encoded.Count)
	}
	if st.Skipped.Count != 2 {
		t.Errorf("skipped = %d, want 2", st.Skipped.Count)
	}
	if !strings.Contains(log.String(), "output exists") {
		t.Errorf("log %q missing skip notice", log.String())
	}
}

func TestBatchWorkerPool(t *testing.T) {
	in := t.TempDir()
	for i := 0; i < 8; i++ {
		mustWrite(t, filepath.Join(in, fmt.Sprintf("shot-%d.cr2", i)))
	}

	var log, errLog bytes.Buffer
	b := &Batch{
		Decoder:   fakeDecoder{img: testImage(4, 4)},
		Encoder:   pngEncoder(t),
		Config:    types.ConvertConfig{Jobs: 4, OnImage: types.ActionIgnore, OnOther: types.ActionIgnore},
		InputBase: in,
		Out:       &log,
		Errw:      &errLog,
	}
	entries := resolveTree(t, in)
	st, records := b.Run(entries)

	if st.Files.Count != 8 || st.Encoded.Count != 8 || st.Errors.Count != 0 {
		t.Errorf("files/encoded/errors = %d/%d/%d, want 8/8/0; stderr: %s",
			st.Files.Count, st.Encoded.Count, st.Errors.Count, errLog.String())
	}

	// Records line up with entries regardless of completion order.
	for i, rec := range records {
		if rec.Input != entries[i].Path {
			t.Errorf("record %d is for %s, want %s", i, rec.Input, entries[i].Path)
		}
		if rec.Status != types.StatusConverted {
			t.Errorf("record %d status = %q", i, rec.Status)
		}
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}
