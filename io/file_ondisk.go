package io

import (
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

var _ File = (*OnDisk)(nil)

// OnDisk is a wrapper around os.File and provides additional functions for
// dealing with files. When memory mapped, reads are served from the mapped
// region while writes always go through the file handle.
type OnDisk struct {
	mu       *sync.RWMutex
	fh       *os.File
	data     mmap.MMap
	readOnly bool
	closed   bool
}

// ReadAt uses ReadAt method of os.File in case this file is not memory
// mapped or the offset lies past the mapped region. Otherwise reads from
// the mapped region.
func (f *OnDisk) ReadAt(b []byte, offset int64) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return 0, os.ErrClosed
	}

	if f.data == nil || offset >= int64(len(f.data)) {
		return f.fh.ReadAt(b, offset)
	}

	n := copy(b, f.data[offset:])
	if n < len(b) {
		m, err := f.fh.ReadAt(b[n:], offset+int64(n))
		return n + m, err
	}
	return n, nil
}

// WriteAt writes through the file handle. The mapping is shared, so the
// change is visible to subsequent mapped reads.
func (f *OnDisk) WriteAt(b []byte, offset int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, os.ErrClosed
	} else if f.readOnly {
		return 0, ErrReadOnly
	}
	return f.fh.WriteAt(b, offset)
}

// Truncate truncates the file to given size. Truncate frees the memory
// mapping before resize.
func (f *OnDisk) Truncate(size int64) error {
	if f.readOnly {
		return ErrReadOnly
	}
	if err := f.MUnmap(); err != nil {
		return err
	}
	return f.fh.Truncate(size)
}

// Size returns the size of the file.
func (f *OnDisk) Size() (int64, error) {
	stat, err := f.fh.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "stat %s", f.fh.Name())
	}
	return stat.Size(), nil
}

// Sync commits the file contents to stable storage.
func (f *OnDisk) Sync() error {
	if f.readOnly {
		return nil
	}
	return f.fh.Sync()
}

// Close frees the memory mapping, releases the lock and closes the
// underlying file handle.
func (f *OnDisk) Close() error {
	if f.closed {
		return nil
	}
	_ = f.MUnmap()
	_ = unlockFile(f.fh)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.fh.Close()
}

// Name returns the name of the open file.
func (f *OnDisk) Name() string {
	return f.fh.Name()
}

// MMap memory maps the current extent of the file read-only. Empty files
// cannot be mapped, MMap is a no-op for them.
func (f *OnDisk) MMap() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data != nil {
		return nil
	}

	stat, err := f.fh.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", f.fh.Name())
	} else if stat.Size() == 0 {
		return nil
	}

	m, err := mmap.Map(f.fh, mmap.RDONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "mmap %s", f.fh.Name())
	}
	f.data = m
	return nil
}

// MUnmap frees the memory mapped region if any.
func (f *OnDisk) MUnmap() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data == nil {
		return nil
	}
	err := f.data.Unmap()
	f.data = nil
	return err
}

// Mapped reports whether reads are currently served from a mapping.
func (f *OnDisk) Mapped() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data != nil
}
