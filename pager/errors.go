package pager

import "errors"

var (
	// ErrPageOutOfBounds is returned when a page beyond the configured
	// ceiling is requested.
	ErrPageOutOfBounds = errors.New("page number out of bounds")

	// ErrPageNotCached is returned by Flush for a page that was never
	// loaded.
	ErrPageNotCached = errors.New("page not cached")

	// ErrInvalidFlushSize is returned by Flush when the byte count is
	// negative or larger than a page.
	ErrInvalidFlushSize = errors.New("invalid flush size")

	// ErrSlotOutOfBounds is returned when a sub-slice would extend past the
	// page buffer.
	ErrSlotOutOfBounds = errors.New("slot out of page bounds")
)
