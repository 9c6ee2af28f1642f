package row

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Column widths of the fixed schema.
const (
	UsernameSize = 32
	EmailSize    = 255
)

// Defaults used by DefaultLayout.
const (
	DefaultPageSize = 4096
	DefaultMaxPages = 100
)

// DefaultLayout is the layout for 4096 byte pages and a 100 page table:
// 291 byte rows, 14 rows per page, 1400 rows at most.
var DefaultLayout = MustLayout(DefaultPageSize, DefaultMaxPages)

// Layout describes where each field of a row lives and how rows pack into
// pages. It is computed once and passed by value; nothing recomputes it per
// row.
type Layout struct {
	IDSize         int `json:"id_size"`
	UsernameSize   int `json:"username_size"`
	EmailSize      int `json:"email_size"`
	IDOffset       int `json:"id_offset"`
	UsernameOffset int `json:"username_offset"`
	EmailOffset    int `json:"email_offset"`
	RowSize        int `json:"row_size"`

	PageSize    int `json:"page_size"`
	RowsPerPage int `json:"rows_per_page"`
	MaxPages    int `json:"max_pages"`
	MaxRows     int `json:"max_rows"`
}

// NewLayout derives the layout for the given page size and page ceiling.
// maxPages of 0 leaves the table unbounded (MaxRows is then 0 as well and
// means no limit).
func NewLayout(pageSize, maxPages int) (Layout, error) {
	var r Row

	l := Layout{
		IDSize:       int(unsafe.Sizeof(r.ID)),
		UsernameSize: len(r.Username),
		EmailSize:    len(r.Email),
		PageSize:     pageSize,
		MaxPages:     maxPages,
	}
	l.IDOffset = 0
	l.UsernameOffset = l.IDOffset + l.IDSize
	l.EmailOffset = l.UsernameOffset + l.UsernameSize
	l.RowSize = l.IDSize + l.UsernameSize + l.EmailSize

	if pageSize < l.RowSize {
		return Layout{}, errors.Errorf("page size %d cannot hold a %d byte row", pageSize, l.RowSize)
	} else if maxPages < 0 {
		return Layout{}, errors.Errorf("max pages must not be negative, got %d", maxPages)
	}

	l.RowsPerPage = pageSize / l.RowSize
	l.MaxRows = l.RowsPerPage * maxPages
	return l, nil
}

// MustLayout is NewLayout that panics on invalid arguments.
func MustLayout(pageSize, maxPages int) Layout {
	l, err := NewLayout(pageSize, maxPages)
	if err != nil {
		panic(err)
	}
	return l
}

// Bounded reports whether the layout enforces a row ceiling.
func (l Layout) Bounded() bool { return l.MaxPages > 0 }

// RowsIn returns how many whole rows a file of the given length holds.
// Pages are flushed page-aligned, so every full page contributes
// RowsPerPage rows and the tail contributes whatever whole rows fit in it.
// Trailing partial-row bytes are ignored.
func (l Layout) RowsIn(fileLen int64) int {
	if fileLen <= 0 {
		return 0
	}
	pageSz := int64(l.PageSize)
	full := fileLen / pageSz
	tail := fileLen % pageSz

	tailRows := tail / int64(l.RowSize)
	if tailRows > int64(l.RowsPerPage) {
		tailRows = int64(l.RowsPerPage)
	}
	return int(full)*l.RowsPerPage + int(tailRows)
}

func (l Layout) String() string {
	return fmt.Sprintf(
		"Layout{rowSize=%d, pageSize=%d, rowsPerPage=%d, maxPages=%d, maxRows=%d}",
		l.RowSize, l.PageSize, l.RowsPerPage, l.MaxPages, l.MaxRows,
	)
}

// CeilDiv returns a/b rounded up. b must be positive.
func CeilDiv[T constraints.Integer](a, b T) T {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
