package pager

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/spy16/rowdb/internal/logger"
)

// DefaultOptions are used by Open and OpenFile when no options are given.
var DefaultOptions = Options{
	PageSize: 4096,
	MaxPages: 100,
	FileMode: 0644,
	ReadOnly: false,
	MMap:     true,
}

// Options represents configuration options for pager.
type Options struct {
	// PageSize is the unit of every read and write. Page N lives at byte
	// offset N*PageSize of the file.
	PageSize int

	// MaxPages is the highest page count the pager will hand out. Requests
	// beyond it fail with ErrPageOutOfBounds. 0 means no ceiling.
	MaxPages int

	// FileMode used when the backing file has to be created.
	FileMode os.FileMode

	// ReadOnly opens the file without write access. Flush fails in this
	// mode.
	ReadOnly bool

	// MMap serves page loads from a read-only memory mapping of the file
	// as it existed at open.
	MMap bool

	// Log receives page load/flush events. Defaults to the shared logger.
	Log logrus.FieldLogger
}

func (opts *Options) init() {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultOptions.PageSize
	}
	if opts.MaxPages < 0 {
		opts.MaxPages = 0
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultOptions.FileMode
	}
	if opts.Log == nil {
		opts.Log = logger.Component("pager")
	}
}

func (opts *Options) fileFlag() int {
	if opts.ReadOnly {
		return os.O_RDONLY
	}
	return os.O_CREATE | os.O_RDWR
}
