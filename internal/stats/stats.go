// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats accumulates per-run counters and timings and renders the
// end-of-run summary.
package stats

import (
	"fmt"
	"io"
	"time"
)

// Item counts occurrences of one operation and the time spent on them.
type Item struct {
	Count int
	Total time.Duration
}

// Record adds one timed occurrence.
func (i *Item) Record(d time.Duration) {
	i.Count++
	i.Total += d
}

// Inc adds one untimed occurrence.
func (i *Item) Inc() {
	i.Count++
}

// Avg returns the mean duration per occurrence.
func (i Item) Avg() time.Duration {
	if i.Count == 0 {
		return 0
	}
	return i.Total / time.Duration(i.Count)
}

// Merge folds another item's counts into this one.
func (i *Item) Merge(other Item) {
	i.Count += other.Count
	i.Total += other.Total
}

// Stats aggregates the outcomes of one conversion run. Workers each keep
// their own Stats and merge before the summary is printed.
type Stats struct {
	Decoded Item
	Encoded Item
	Copied  Item
	Moved   Item
	Skipped Item
	Errors  Item
	Files   Item
}

// Merge folds another run's counters into this one.
func (s *Stats) Merge(other *Stats) {
	s.Decoded.Merge(other.Decoded)
	s.Encoded.Merge(other.Encoded)
	s.Copied.Merge(other.Copied)
	s.Moved.Merge(other.Moved)
	s.Skipped.Merge(other.Skipped)
	s.Errors.Merge(other.Errors)
	s.Files.Merge(other.Files)
}

// Summary writes the end-of-run report. With more than one worker the
// decode/encode wall-clock estimate divides accumulated time by the worker
// count, since workers overlap.
func (s *Stats) Summary(w io.Writer, elapsed time.Duration, jobs int) {
	if jobs < 1 {
		jobs = 1
	}
	perFile := time.Duration(0)
	if s.Files.Count > 0 {
		perFile = elapsed / time.Duration(s.Files.Count)
	}
	fmt.Fprintf(w, "Processed %d files in %s (avg %s per file)\n",
		s.Files.Count, FormatDuration(elapsed), FormatDuration(perFile))
	fmt.Fprintf(w, "Decoded %d raw files in %s (avg %s per file)\n",
		s.Decoded.Count, FormatDuration(s.Decoded.Total/time.Duration(jobs)), FormatDuration(s.Decoded.Avg()))
	fmt.Fprintf(w, "Encoded %d images in %s (avg %s per file)\n",
		s.Encoded.Count, FormatDuration(s.Encoded.Total/time.Duration(jobs)), FormatDuration(s.Encoded.Avg()))
	if s.Copied.Count > 0 {
		fmt.Fprintf(w, "Copied %d files in %s (avg %s per file)\n",
			s.Copied.Count, FormatDuration(s.Copied.Total/time.Duration(jobs)), FormatDuration(s.Copied.Avg()))
	}
	if s.Moved.Count > 0 {
		fmt.Fprintf(w, "Moved %d files in %s (avg %s per file)\n",
			s.Moved.Count, FormatDuration(s.Moved.Total/time.Duration(jobs)), FormatDuration(s.Moved.Avg()))
	}
	fmt.Fprintf(w, "Ran into %d errors and skipped %d files\n", s.Errors.Count, s.Skipped.Count)
}

// FormatDuration renders a duration as "[Xm ][Ys ]Zms".
func FormatDuration(d time.Duration) string {
	millis := d.Milliseconds() % 1000
	secs := int64(d.Seconds()) % 60
	mins := int64(d.Minutes())

	var out string
	if mins > 0 {
		out += fmt.Sprintf("%dm ", mins)
	}
	if secs > 0 {
		out += fmt.Sprintf("%ds ", secs)
	}
	out += fmt.Sprintf("%dms", millis)
	return out
}
