// Package input implements the DocumentLoader interface.
// It reads the whole source document into memory as UTF-8 text; invalid byte
// sequences are replaced, never fatal.
package input

import (
	"fmt"
	"os"
	"strings"
)

// FileLoader loads documents from the local filesystem.
type FileLoader struct{}

// New creates a FileLoader.
func New() *FileLoader {
	return &FileLoader{}
}

// Load reads the file at path and returns its content as valid UTF-8.
// Bytes that do not form valid UTF-8 become U+FFFD replacement characters.
func (l *FileLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input file: %w", err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
