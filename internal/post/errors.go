package post

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument matches every *MalformedDocumentError.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrContentRoot matches every *RootError.
	ErrContentRoot = errors.New("content root unavailable")
)

// MalformedDocumentError reports a single source file that could not be parsed
// or failed validation. It is recoverable: the loader drops the file and keeps
// going.
type MalformedDocumentError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedDocument) hold for any instance.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// Malformed builds a *MalformedDocumentError.
func Malformed(path, reason string, err error) error {
	return &MalformedDocumentError{Path: path, Reason: reason, Err: err}
}

// RootError reports that the content root itself is missing or unreadable.
// The collection cannot be built; callers should abort.
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("content root %s: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

func (e *RootError) Is(target error) bool {
	return target == ErrContentRoot
}
