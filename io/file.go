// Package io provides the random access file abstraction the pager does its
// page-granular I/O against. Files are either on-disk (optionally memory
// mapped for reads) or ephemeral in-memory buffers.
package io

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// InMemoryFilePath can be passed as filePath to OpenFile to create an
// in-memory file instance.
const InMemoryFilePath = ":memory:"

var (
	// ErrReadOnly is returned when a mutation is attempted on a file opened
	// without write access.
	ErrReadOnly = errors.New("read-only file")

	// ErrLocked is returned by OpenFile when another process holds the lock
	// on the file.
	ErrLocked = errors.New("file is locked by another process")
)

// File represents a file-like object. (An in-memory or on-disk).
type File interface {
	io.ReaderAt
	io.WriterAt
	Name() string
	Close() error
	Sync() error
	Size() (int64, error)
	Truncate(size int64) error
	MMap() error
	MUnmap() error
}

// OpenFile uses os.OpenFile with given flags and returns the wrapped File
// instance. If the filePath is ":memory:", an in-memory file (ephemeral)
// is returned. On-disk files are locked for the lifetime of the handle:
// exclusively when writable, shared otherwise.
func OpenFile(filePath string, flag int, mode os.FileMode) (File, error) {
	readOnly := flag&(os.O_WRONLY|os.O_RDWR) == 0

	if filePath == InMemoryFilePath {
		return &InMemory{
			mu:       &sync.RWMutex{},
			readOnly: readOnly,
		}, nil
	}

	fh, err := os.OpenFile(filePath, flag, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filePath)
	}

	if err := lockFile(fh, !readOnly); err != nil {
		_ = fh.Close()
		return nil, err
	}

	return &OnDisk{
		mu:       &sync.RWMutex{},
		fh:       fh,
		readOnly: readOnly,
	}, nil
}
