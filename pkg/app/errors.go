package app

import (
	"errors"
	"fmt"
)

// ErrDisabled is returned by mutations while the timeline file is missing
// and could not be created.
var ErrDisabled = errors.New("app: timeline file unavailable")

// ErrAmbiguousID is returned when an id prefix names more than one task.
var ErrAmbiguousID = errors.New("app: ambiguous id")

// PersistenceError wraps a failed read or write of the timeline file. The
// in-memory document keeps its changes; nothing is retried.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("app: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
