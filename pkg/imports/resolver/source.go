package resolver

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// DefaultMaxFileSize is the largest document FileSource reads (10 MiB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Sentinel errors returned by FileSource. The resolver reports them as
// ImportRejectedError.
var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidEncoding = errors.New("file contains invalid UTF-8 encoding")
	ErrNotRegularFile  = errors.New("not a regular file")
)

// Source reads documents by canonical path.
type Source interface {
	ReadDocument(path string) ([]byte, error)
}

// FileSource reads documents from the local file system.
type FileSource struct {
	// MaxFileSize limits the size of a document in bytes.
	// Zero means DefaultMaxFileSize; a negative value disables the limit.
	MaxFileSize int64
}

// ReadDocument reads path after checking that it is a regular file within
// the size limit, and validates that the content is UTF-8.
func (s FileSource) ReadDocument(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}

	limit := s.MaxFileSize
	if limit == 0 {
		limit = DefaultMaxFileSize
	}
	if limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds maximum %d bytes", ErrFileTooLarge, info.Size(), limit)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	return data, nil
}
