package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

type FileStorage interface {
	// Upload stores file under path and returns the cleaned relative path
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Open retrieves a file, returning ErrFileNotFound when absent
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// URL returns the public address of a stored file
	URL(path string) string
}
