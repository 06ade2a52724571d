// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jzbor/raw-to-img/internal/encode"
	"github.com/jzbor/raw-to-img/internal/scan"
	"github.com/jzbor/raw-to-img/internal/stats"
	"github.com/jzbor/raw-to-img/pkg/types"
)

// Batch processes a resolved set of files: raw files are converted, other
// kinds are copied, moved, or ignored per the configured actions. Failures
// are reported and counted, never fatal to the rest of the run.
type Batch struct {
	Decoder Decoder
	Encoder encode.Encoder
	Config  types.ConvertConfig

	// InputBase is the directory the entries were resolved from; mirrored
	// output paths are derived relative to it.
	InputBase string

	// Out receives per-file status lines, Errw per-file failures.
	Out  io.Writer
	Errw io.Writer

	mu      sync.Mutex
	claimed map[string]string

	outMu sync.Mutex
}

// Run processes all entries and returns the merged statistics and per-file
// records. Record order matches entry order regardless of worker count.
func (b *Batch) Run(entries []scan.Entry) (*stats.Stats, []types.FileRecord) {
	b.claimed = make(map[string]string)

	jobs := b.Config.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(entries) {
		jobs = len(entries)
	}
	if jobs > 1 {
		return b.runPool(entries, jobs)
	}

	st := &stats.Stats{}
	records := make([]types.FileRecord, len(entries))
	for i, e := range entries {
		records[i] = b.process(e, st)
	}
	return st, records
}

func (b *Batch) process(e scan.Entry, st *stats.Stats) types.FileRecord {
	st.Files.Inc()
	switch e.Kind {
	case types.KindRaw:
		return b.processRaw(e, st)
	case types.KindImage:
		return b.processAction(e, b.Config.OnImage, st)
	default:
		return b.processAction(e, b.Config.OnOther, st)
	}
}

func (b *Batch) processRaw(e scan.Entry, st *stats.Stats) types.FileRecord {
	output, err := OutputPath(e.Path, b.InputBase, b.Config.OutputDir, e.Kind, b.Encoder.Extension())
	if err != nil {
		return b.fail(types.FileRecord{Input: e.Path, Kind: e.Kind}, err, st)
	}
	if err := b.claim(output, e.Path); err != nil {
		return b.fail(types.FileRecord{Input: e.Path, Output: output, Kind: e.Kind}, err, st)
	}

	rec, err := ConvertFile(b.Decoder, b.Encoder, e.Path, output, b.Config)
	if err != nil {
		return b.fail(rec, err, st)
	}

	if rec.Status == types.StatusSkipped {
		st.Skipped.Inc()
		b.logf(b.Out, "skipped: %s (output exists)\n", e.Path)
		return rec
	}

	st.Decoded.Record(rec.DecodeTime)
	st.Encoded.Record(rec.EncodeTime)
	b.logf(b.Out, "converted: %s -> %s (decode %s, encode %s)\n",
		e.Path, output, stats.FormatDuration(rec.DecodeTime), stats.FormatDuration(rec.EncodeTime))
	return rec
}

func (b *Batch) processAction(e scan.Entry, action types.FileAction, st *stats.Stats) types.FileRecord {
	rec := types.FileRecord{Input: e.Path, Kind: e.Kind, Status: types.StatusSkipped}

	if action == types.ActionIgnore {
		st.Skipped.Inc()
		return rec
	}

	output, err := OutputPath(e.Path, b.InputBase, b.Config.OutputDir, e.Kind, "")
	if err != nil {
		return b.fail(rec, err, st)
	}
	rec.Output = output

	// In-place runs would copy a file onto itself; treat that as a skip.
	if output == e.Path {
		st.Skipped.Inc()
		return rec
	}
	if err := b.claim(output, e.Path); err != nil {
		return b.fail(rec, err, st)
	}
	if !b.Config.Overwrite {
		if _, err := os.Stat(output); err == nil {
			st.Skipped.Inc()
			b.logf(b.Out, "skipped: %s (output exists)\n", e.Path)
			return rec
		}
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return b.fail(rec, &WriteError{Path: output, Err: err}, st)
	}

	start := time.Now()
	switch action {
	case types.ActionCopy:
		if err := copyFile(e.Path, output); err != nil {
			return b.fail(rec, &WriteError{Path: output, Err: err}, st)
		}
		st.Copied.Record(time.Since(start))
		rec.Status = types.StatusCopied
		b.logf(b.Out, "copied: %s -> %s\n", e.Path, output)
	case types.ActionMove:
		if err := os.Rename(e.Path, output); err != nil {
			return b.fail(rec, &WriteError{Path: output, Err: err}, st)
		}
		st.Moved.Record(time.Since(start))
		rec.Status = types.StatusMoved
		b.logf(b.Out, "moved: %s -> %s\n", e.Path, output)
	}
	return rec
}

// claim reserves an output path for one input. Two inputs deriving the same
// output path (e.g. a.cr2 and a.CR2 in one directory) is a collision; the
// second claimant fails.
func (b *Batch) claim(output, input string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.claimed[output]; ok && prev != input {
		return fmt.Errorf("%s: %w (also derived from %s)", output, ErrOutputCollision, prev)
	}
	b.claimed[output] = input
	return nil
}

func (b *Batch) fail(rec types.FileRecord, err error, st *stats.Stats) types.FileRecord {
	rec.Status = types.StatusFailed
	rec.Error = err.Error()
	st.Errors.Inc()
	b.logf(b.Errw, "failed: %v\n", err)
	return rec
}

// logf serializes status lines across workers.
func (b *Batch) logf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	b.outMu.Lock()
	defer b.outMu.Unlock()
	fmt.Fprintf(w, format, args...)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
