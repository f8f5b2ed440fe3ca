package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// Package storage serves stored document files to the browser from whichever store holds them.
// Implementations stream content; nothing is buffered to local disk.

// ErrNotFound is returned by Get when no file has the requested name.
var ErrNotFound = errors.New("file not found")

// ErrInvalidName is returned for names that are empty or try to leave the store's root.
var ErrInvalidName = errors.New("invalid file name")

// ObjectInfo contains basic information about a stored file.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// FileStore is a read-only view of the stored document files.
type FileStore interface {
	// Get returns the file content as a stream alongside its info. The caller closes the reader.
	Get(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error)
}

// CleanName validates a stored file name. Only flat names are accepted.
func CleanName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || name != path.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return name, nil
}
