// Package convert turns uploaded documents into plain paragraph-delimited
// text for the extraction pipeline, preserving inline URLs losslessly
// enough for pattern matching.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat reports a file extension no converter handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extensions lists the file extensions the converters accept.
var Extensions = []string{".docx", ".txt", ".md", ".html", ".htm"}

// Supported reports whether a filename carries a convertible extension.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

// Bytes converts an in-memory document to text, dispatching on the
// filename's extension.
func Bytes(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return Docx(data)
	case ".txt", ".md":
		return string(data), nil
	case ".html", ".htm":
		return HTML(strings.NewReader(string(data)))
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// File reads and converts a document from disk.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return Bytes(path, data)
}
