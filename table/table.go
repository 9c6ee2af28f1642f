// Package table maps logical row numbers of the fixed-schema table onto
// pager pages and drives persistence on open and close.
package table

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/spy16/rowdb/io"
	"github.com/spy16/rowdb/pager"
	"github.com/spy16/rowdb/row"
)

// Open opens the named file (creating it if absent) as a table. The row
// count is derived from the file length; no page is read until a row on it
// is accessed. If 'opts' is nil, DefaultOptions are used.
func Open(filePath string, opts *Options) (*Table, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	opts.init()

	layout, err := row.NewLayout(opts.PageSize, opts.MaxPages)
	if err != nil {
		return nil, err
	}

	p, err := pager.OpenFile(filePath, opts.pagerOptions())
	if err != nil {
		return nil, err
	}

	t, err := newTable(p, layout, opts)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return t, nil
}

// New wraps an already open pager. The table takes ownership of the pager.
func New(p *pager.Pager, opts *Options) (*Table, error) {
	o := DefaultOptions
	if opts != nil {
		o = *opts
	}
	opts = &o
	opts.PageSize = p.PageSize()
	opts.MaxPages = p.MaxPages()
	opts.init()

	layout, err := row.NewLayout(opts.PageSize, opts.MaxPages)
	if err != nil {
		return nil, err
	}
	return newTable(p, layout, opts)
}

func newTable(p *pager.Pager, layout row.Layout, opts *Options) (*Table, error) {
	numRows := layout.RowsIn(p.FileLength())
	if layout.Bounded() && numRows > layout.MaxRows {
		return nil, errors.Wrapf(ErrFileTooLarge, "%d rows, capacity %d", numRows, layout.MaxRows)
	}

	t := &Table{
		pager:    p,
		layout:   layout,
		readOnly: opts.ReadOnly,
		numRows:  numRows,
		log:      opts.Log,
	}

	t.log.WithFields(logrus.Fields{
		"rows":  numRows,
		"bytes": p.FileLength(),
	}).Info("table opened")
	return t, nil
}

// Table is an append-only array of fixed-width rows. A Table is NOT safe
// for concurrent use.
type Table struct {
	pager    *pager.Pager
	layout   row.Layout
	log      logrus.FieldLogger
	readOnly bool
	closed   bool
	numRows  int
}

// Insert appends the row. Returns ErrTableFull without touching the table
// when it already holds MaxRows rows.
func (t *Table) Insert(r row.Row) error {
	if t.closed {
		return ErrClosed
	} else if t.readOnly {
		return io.ErrReadOnly
	} else if t.layout.Bounded() && t.numRows >= t.layout.MaxRows {
		return ErrTableFull
	}

	dst, err := t.slot(t.numRows)
	if err != nil {
		return err
	}
	row.Encode(t.layout, r, dst)
	t.numRows++
	return nil
}

// Scan decodes rows 0..NumRows-1 in order and passes each to fn. Scanning
// stops early when fn returns false.
func (t *Table) Scan(fn func(rowNum int, r row.Row) bool) error {
	if t.closed {
		return ErrClosed
	}

	for i := 0; i < t.numRows; i++ {
		src, err := t.slot(i)
		if err != nil {
			return err
		}
		if !fn(i, row.Decode(t.layout, src)) {
			break
		}
	}
	return nil
}

// Select returns every row in insertion order.
func (t *Table) Select() ([]row.Row, error) {
	rows := make([]row.Row, 0, t.numRows)
	err := t.Scan(func(_ int, r row.Row) bool {
		rows = append(rows, r)
		return true
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RowSlot returns the page number and the byte offset inside that page
// where the row with given index lives. Pure arithmetic, no bounds checks.
func (t *Table) RowSlot(rowNum int) (pageNum, byteOffset int) {
	pageNum = rowNum / t.layout.RowsPerPage
	byteOffset = (rowNum % t.layout.RowsPerPage) * t.layout.RowSize
	return pageNum, byteOffset
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int { return t.numRows }

// MaxRows returns the row ceiling, 0 if unbounded.
func (t *Table) MaxRows() int { return t.layout.MaxRows }

// Layout returns the row layout the table was opened with.
func (t *Table) Layout() row.Layout { return t.layout }

// Stats returns the pager stats.
func (t *Table) Stats() pager.Stats { return t.pager.Stats() }

// Close flushes every cached page holding live rows and closes the file.
// Full pages are written whole; the trailing partial page only up to its
// last row. Cached pages past the last row are dropped unwritten. Close is
// terminal, further calls are no-ops.
func (t *Table) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	flushErr := t.flush()
	if err := t.pager.Close(); err != nil && flushErr == nil {
		flushErr = err
	}

	t.log.WithFields(logrus.Fields{
		"rows": t.numRows,
	}).Info("table closed")
	return flushErr
}

func (t *Table) String() string {
	return fmt.Sprintf("Table{rows=%d, closed=%t, %s}", t.numRows, t.closed, t.layout)
}

func (t *Table) flush() error {
	if t.readOnly {
		return nil
	}

	fullPages := t.numRows / t.layout.RowsPerPage
	for i := 0; i < fullPages; i++ {
		if !t.pager.Cached(i) {
			continue
		}
		if err := t.pager.Flush(i, t.layout.PageSize); err != nil {
			return err
		}
		t.pager.Release(i)
	}

	if rem := t.numRows % t.layout.RowsPerPage; rem > 0 && t.pager.Cached(fullPages) {
		if err := t.pager.Flush(fullPages, rem*t.layout.RowSize); err != nil {
			return err
		}
		t.pager.Release(fullPages)
	}
	return nil
}

func (t *Table) slot(rowNum int) ([]byte, error) {
	pageNum, off := t.RowSlot(rowNum)
	pg, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	return pg.Slot(off, t.layout.RowSize)
}
