package table

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/spy16/rowdb/internal/logger"
	"github.com/spy16/rowdb/pager"
	"github.com/spy16/rowdb/row"
)

// DefaultOptions gives the classic layout: 4096 byte pages, 100 pages, 1400
// rows.
var DefaultOptions = Options{
	PageSize: row.DefaultPageSize,
	MaxPages: row.DefaultMaxPages,
	FileMode: 0644,
	MMap:     true,
}

// Options represents the configuration of a table and its pager.
type Options struct {
	PageSize int
	MaxPages int
	FileMode os.FileMode
	ReadOnly bool
	MMap     bool
	Log      logrus.FieldLogger
}

func (opts *Options) init() {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultOptions.PageSize
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultOptions.FileMode
	}
	if opts.Log == nil {
		opts.Log = logger.Component("table")
	}
}

func (opts Options) pagerOptions() *pager.Options {
	return &pager.Options{
		PageSize: opts.PageSize,
		MaxPages: opts.MaxPages,
		FileMode: opts.FileMode,
		ReadOnly: opts.ReadOnly,
		MMap:     opts.MMap,
		Log:      opts.Log,
	}
}
