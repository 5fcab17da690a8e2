package jsonstore

import (
	"errors"
	"fmt"
)

var (
	// ErrHomeUnavailable means the storage path could not be resolved.
	ErrHomeUnavailable = errors.New("cannot find home directory")
	// ErrIO marks read and write failures on the store file.
	ErrIO = errors.New("store i/o failed")
	// ErrCorrupt marks a store file that exists but is not a task list.
	ErrCorrupt = errors.New("corrupt JSON database")
	// ErrIDsExhausted is returned when no larger id fits in uint32.
	ErrIDsExhausted = errors.New("task ids exhausted")
)

// IOError wraps an I/O failure with the operation and path involved.
type IOError struct {
	Op   string // "read" | "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// CorruptError reports a store file that failed to parse.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%v in %s: %v", ErrCorrupt, e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }
