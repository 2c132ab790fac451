// internal/contextgen/reader.go
package contextgen

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// ContentReader loads a file's text.
type ContentReader interface {
	Read(path string) (string, error)
}

// FileReader reads files from disk and requires valid UTF-8.
type FileReader struct{}

// Read returns the full content of path. Content that is not valid UTF-8
// yields an error wrapping ErrDecode.
func (FileReader) Read(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s", ErrDecode, path)
	}
	return string(content), nil
}

// ReaderFunc adapts a function to ContentReader.
type ReaderFunc func(path string) (string, error)

// Read implements ContentReader.
func (f ReaderFunc) Read(path string) (string, error) { return f(path) }
