package mnist

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedShape = errors.New("mnist: unexpected shape")
	ErrCountMismatch   = errors.New("mnist: image and label counts differ")
	ErrFileNotFound    = errors.New("mnist: file not found")
	ErrIO              = errors.New("mnist: read failed")
	ErrIndexOutOfRange = errors.New("mnist: index out of range")
	ErrUnknownSplit    = errors.New("mnist: unknown split")
)

// CountMismatchError names both record counts when an images file and its
// labels file disagree.
type CountMismatchError struct {
	Split  Split
	Images int
	Labels int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%v: %s split has %d images and %d labels", ErrCountMismatch, e.Split, e.Images, e.Labels)
}

func (e *CountMismatchError) Unwrap() error {
	return ErrCountMismatch
}
