package rowdb

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/spy16/rowdb/internal/logger"
	"github.com/spy16/rowdb/row"
	"github.com/spy16/rowdb/table"
)

// DefaultOptions are used by Open when no options are given.
var DefaultOptions = Options{
	PageSize: row.DefaultPageSize,
	MaxPages: row.DefaultMaxPages,
	FileMode: 0644,
	ReadOnly: false,
	MMap:     true,
}

// Options represents the initialization options for a rowdb database.
type Options struct {
	// PageSize and MaxPages fix the layout: rows per page and the row
	// ceiling follow from them. Must match between sessions on one file.
	PageSize int
	MaxPages int

	FileMode os.FileMode
	ReadOnly bool
	MMap     bool
	Log      logrus.FieldLogger
}

func (opts *Options) init() {
	if opts.Log == nil {
		opts.Log = logger.Component("rowdb")
	}
}

func (opts Options) tableOptions() *table.Options {
	return &table.Options{
		PageSize: opts.PageSize,
		MaxPages: opts.MaxPages,
		FileMode: opts.FileMode,
		ReadOnly: opts.ReadOnly,
		MMap:     opts.MMap,
		Log:      opts.Log,
	}
}
