package pager

import "github.com/pkg/errors"

// Page is one page-sized buffer owned by a Pager. The buffer stays valid
// until the owning pager releases it.
type Page struct {
	num  int
	data []byte
}

// Num returns the page number.
func (pg *Page) Num() int { return pg.num }

// Bytes returns the whole page buffer.
func (pg *Page) Bytes() []byte { return pg.data }

// Slot returns the size bytes starting at offset. The returned slice has
// its capacity capped so it cannot be grown into the neighbouring bytes.
func (pg *Page) Slot(offset, size int) ([]byte, error) {
	end := offset + size
	if offset < 0 || size < 0 || end > len(pg.data) {
		return nil, errors.Wrapf(ErrSlotOutOfBounds,
			"page %d: [%d:%d] of %d", pg.num, offset, end, len(pg.data))
	}
	return pg.data[offset:end:end], nil
}
