// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// OutputFormat selects the encoder used for converted raw files.
type OutputFormat string

const (
	FormatJPEG OutputFormat = "jpeg"
	FormatPNG  OutputFormat = "png"
	FormatTIFF OutputFormat = "tiff"
)

// ParseOutputFormat validates a user-supplied format name. "jpg" and "tif"
// are accepted as aliases for their canonical names.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected jpeg, png, or tiff)", s)
}

// Extension returns the output file extension for the format, without dot.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatPNG:
		return "png"
	case FormatTIFF:
		return "tif"
	}
	return string(f)
}

// FileAction decides what happens to files a directory run does not convert:
// already-encoded images and everything else.
type FileAction string

const (
	ActionCopy   FileAction = "copy"
	ActionMove   FileAction = "move"
	ActionIgnore FileAction = "ignore"
)

// ParseFileAction validates a user-supplied action name.
func ParseFileAction(s string) (FileAction, error) {
	switch FileAction(s) {
	case ActionCopy, ActionMove, ActionIgnore:
		return FileAction(s), nil
	}
	return "", fmt.Errorf("unknown file action %q (expected copy, move, or ignore)", s)
}

// ConvertConfig holds settings for the convert command.
type ConvertConfig struct {
	// Format selects the output codec: jpeg, png, or tiff.
	Format OutputFormat `json:"format" yaml:"format"`

	// Quality is the JPEG quality (1-100). Ignored by the other codecs.
	Quality int `json:"quality" yaml:"quality"`

	// Recursive enables directory tree traversal.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// OutputDir is the output base directory. Directory runs mirror the
	// input tree under it; empty means outputs are written next to inputs.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Overwrite allows replacing existing output files. Without it an
	// existing output counts as skipped.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// Jobs is the number of concurrent conversion workers (default 1).
	Jobs int `json:"jobs" yaml:"jobs"`

	// MaxDim, when positive, downscales converted images so that the longer
	// edge does not exceed it.
	MaxDim int `json:"max_dim" yaml:"max_dim"`

	// OnImage is the action for already-encoded images found during
	// directory runs: copy, move, or ignore.
	OnImage FileAction `json:"on_image" yaml:"on_image"`

	// OnOther is the action for files that are neither raw nor image.
	OnOther FileAction `json:"on_other" yaml:"on_other"`

	// Sidecar enables writing a YAML metadata sidecar next to each
	// converted output.
	Sidecar bool `json:"sidecar" yaml:"sidecar"`
}

// ApplyDefaults fills zero values with the defaults shared by CLI and config file.
func (c *ConvertConfig) ApplyDefaults() {
	if c.Format == "" {
		c.Format = FormatJPEG
	}
	if c.Quality <= 0 {
		c.Quality = 90
	}
	if c.Jobs <= 0 {
		c.Jobs = 1
	}
	if c.OnImage == "" {
		c.OnImage = ActionCopy
	}
	if c.OnOther == "" {
		c.OnOther = ActionCopy
	}
}

// ScanConfig holds settings for the scan command.
type ScanConfig struct {
	// Recursive enables directory tree traversal.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// RawOnly restricts the listing to whitelisted raw files.
	RawOnly bool `json:"raw_only" yaml:"raw_only"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// DBPath is the SQLite database location. Empty selects the default
	// under the user cache directory.
	DBPath string `json:"db_path" yaml:"db_path"`

	// Limit is the default number of runs shown by the history command.
	Limit int `json:"limit" yaml:"limit"`
}
