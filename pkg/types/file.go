// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileKind classifies an input file against the format whitelists.
type FileKind string

const (
	// KindRaw marks files in the raw format whitelist (currently CR2).
	KindRaw FileKind = "raw"

	// KindImage marks files that are already encoded raster images.
	KindImage FileKind = "image"

	// KindOther marks everything else.
	KindOther FileKind = "other"
)

// FileStatus is the outcome of processing one file in a run.
type FileStatus string

const (
	StatusConverted FileStatus = "converted"
	StatusCopied    FileStatus = "copied"
	StatusMoved     FileStatus = "moved"
	StatusSkipped   FileStatus = "skipped"
	StatusFailed    FileStatus = "failed"
)

// FileRecord describes what happened to one input file.
type FileRecord struct {
	// Input is the source path.
	Input string `json:"input" yaml:"input"`

	// Output is the destination path, empty when nothing was written.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Kind is the whitelist classification of the input.
	Kind FileKind `json:"kind" yaml:"kind"`

	// Status records the outcome.
	Status FileStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// DecodeTime is the time spent in the raw decoder.
	DecodeTime time.Duration `json:"decode_time,omitempty" yaml:"decode_time,omitempty"`

	// EncodeTime is the time spent encoding and writing the output.
	EncodeTime time.Duration `json:"encode_time,omitempty" yaml:"encode_time,omitempty"`
}
