// internal/contextgen/errors.go
package contextgen

import "errors"

var (
	// ErrRootNotFound is returned when the root directory does not exist.
	ErrRootNotFound = errors.New("root directory not found")
	// ErrOutputDirNotFound is returned when the output directory does not exist.
	// It is never created on the caller's behalf.
	ErrOutputDirNotFound = errors.New("output directory not found")
	// ErrNotDirectory is returned when a path that must be a directory is not one.
	ErrNotDirectory = errors.New("not a directory")
	// ErrDecode marks file content that is not valid UTF-8.
	ErrDecode = errors.New("content is not valid UTF-8")
)
