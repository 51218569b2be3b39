package iconkit

import (
	"errors"
	"fmt"
)

// ErrEmptyImage is wrapped by InvalidInputError when the source has zero area.
var ErrEmptyImage = errors.New("image has zero width or height")

// InvalidInputError reports a malformed or empty source grid.
type InvalidInputError struct {
	Width, Height int
	Err           error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %dx%d: %v", e.Width, e.Height, e.Err)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// InvalidConfigError reports a configuration value outside its declared range.
// It is returned before any pixel is touched.
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config %s=%v: %s", e.Field, e.Value, e.Reason)
}

// ProcessingError reports an unexpected failure inside a pipeline stage.
// No partial result accompanies it.
type ProcessingError struct {
	Stage Stage
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }
