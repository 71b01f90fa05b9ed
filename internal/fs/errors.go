package fs

import (
	"errors"
	"fmt"
)

// ErrUnreadable is matched by errors returned when a directory cannot be listed.
var ErrUnreadable = errors.New("directory unreadable")

// ListError reports a failed top-level directory read.
type ListError struct {
	Path string
	Err  error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *ListError) Unwrap() []error {
	return []error{ErrUnreadable, e.Err}
}
