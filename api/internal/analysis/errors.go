package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInput means the caller supplied empty input. Not retriable.
	ErrNoInput = errors.New("analysis: empty input")

	// ErrBadScanType means the scan type is not one of MRI, CT, XRAY.
	ErrBadScanType = errors.New("analysis: unknown scan type")

	// ErrNothingExtracted means a non-empty completion yielded no usable
	// medicine names.
	ErrNothingExtracted = errors.New("analysis: no medicine names found")
)

// GenerationError reports that the model client failed on both the initial
// attempt and the single retry.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("analysis: %s: model call failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
