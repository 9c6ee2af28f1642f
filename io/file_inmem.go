package io

import (
	"errors"
	"io"
	"os"
	"sync"
)

var _ File = (*InMemory)(nil)

// InMemory implements an ephemeral file using in-memory byte slice.
type InMemory struct {
	mu       *sync.RWMutex
	data     []byte
	closed   bool
	readOnly bool
}

// NewInMemory returns a writable in-memory file pre-populated with a copy
// of data.
func NewInMemory(data []byte) *InMemory {
	return &InMemory{
		mu:   &sync.RWMutex{},
		data: append([]byte(nil), data...),
	}
}

// ReadAt reads the data at given offset and copies it into 'p'. Returns
// io.EOF along with the count when fewer than len(p) bytes are available.
func (mem *InMemory) ReadAt(p []byte, off int64) (n int, err error) {
	mem.mu.RLock()
	defer mem.mu.RUnlock()

	if len(p) == 0 {
		return 0, nil
	} else if off < 0 {
		return 0, &os.PathError{
			Op:   "readat",
			Path: InMemoryFilePath,
			Err:  errors.New("negative offset"),
		}
	} else if mem.closed {
		return 0, os.ErrClosed
	} else if int(off) >= len(mem.data) {
		return 0, io.EOF
	}

	n = copy(p, mem.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt writes the data from 'p' to in-memory file, growing the file when
// the write extends past the end.
func (mem *InMemory) WriteAt(p []byte, off int64) (n int, err error) {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	if len(p) == 0 {
		return 0, nil
	} else if off < 0 {
		return 0, &os.PathError{
			Op:   "writeat",
			Path: InMemoryFilePath,
			Err:  errors.New("negative offset"),
		}
	} else if err := mem.canMutate("writeat"); err != nil {
		return 0, err
	}

	if len(mem.data) < int(off)+len(p) {
		if err := mem.truncate(int(off) + len(p)); err != nil {
			return 0, err
		}
	}

	copy(mem.data[off:], p)
	return len(p), nil
}

// Close marks the file as closed. other operations are invalid after
// close.
func (mem *InMemory) Close() error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	mem.closed = true
	mem.data = nil
	return nil
}

// Truncate resizes the file to given size.
func (mem *InMemory) Truncate(size int64) error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	return mem.truncate(int(size))
}

// Size returns the size of the in-memory file. If the file is closed,
// always returns 0.
func (mem *InMemory) Size() (int64, error) {
	mem.mu.RLock()
	defer mem.mu.RUnlock()

	return int64(len(mem.data)), nil
}

// Bytes returns a copy of the current file contents.
func (mem *InMemory) Bytes() []byte {
	mem.mu.RLock()
	defer mem.mu.RUnlock()

	return append([]byte(nil), mem.data...)
}

// Name returns the InMemoryFilePath value.
func (mem *InMemory) Name() string { return InMemoryFilePath }

// Sync is a no-op.
func (mem *InMemory) Sync() error { return nil }

// MMap is a no-op.
func (mem *InMemory) MMap() error { return nil }

// MUnmap is a no-op.
func (mem *InMemory) MUnmap() error { return nil }

func (mem *InMemory) truncate(size int) error {
	if err := mem.canMutate("truncate"); err != nil {
		return err
	}

	if len(mem.data) > size {
		mem.data = mem.data[0:size]
	} else {
		mem.data = append(mem.data, make([]byte, size-len(mem.data))...)
	}

	return nil
}

func (mem *InMemory) canMutate(op string) error {
	if mem.readOnly {
		return &os.PathError{
			Op:   op,
			Path: InMemoryFilePath,
			Err:  ErrReadOnly,
		}
	} else if mem.closed {
		return os.ErrClosed
	}

	return nil
}
