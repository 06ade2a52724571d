// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks a file whose format is not in the raw whitelist when
// conversion was requested on it directly. During traversal such files are
// dispatched by kind instead, never through this error.
var ErrUnsupported = errors.New("unsupported raw format")

// ErrOutputExists marks an output path that already exists and may not be
// overwritten.
var ErrOutputExists = errors.New("output file already exists")

// ErrOutputCollision marks an output path already claimed by another input
// in the same run.
var ErrOutputCollision = errors.New("output path collides with another input")

// DecodeError reports a raw decoder failure for one input file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports an image encoder failure for one output file.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// WriteError reports a filesystem failure while producing an output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
