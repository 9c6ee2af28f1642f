package table

import "errors"

var (
	// ErrTableFull is returned by Insert when the table already holds
	// MaxRows rows. The table is left unchanged.
	ErrTableFull = errors.New("table full")

	// ErrClosed is returned by every operation on a closed table.
	ErrClosed = errors.New("table closed")

	// ErrFileTooLarge is returned by Open when the file holds more rows
	// than the layout allows.
	ErrFileTooLarge = errors.New("file holds more rows than table capacity")
)
