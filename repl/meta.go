package repl

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MetaCommandResult is the outcome of a dot-prefixed command.
type MetaCommandResult int

// Meta command outcomes.
const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandExit
	MetaCommandUnrecognized
)

func (r *REPL) doMetaCommand(input string) (MetaCommandResult, error) {
	switch input {
	case ".exit":
		return MetaCommandExit, nil

	case ".constants":
		l := r.db.Layout()
		r.printf("Constants:\n")
		r.printf("ROW_SIZE: %d\n", l.RowSize)
		r.printf("PAGE_SIZE: %d\n", l.PageSize)
		r.printf("ROWS_PER_PAGE: %d\n", l.RowsPerPage)
		r.printf("TABLE_MAX_PAGES: %d\n", l.MaxPages)
		r.printf("TABLE_MAX_ROWS: %d\n", l.MaxRows)
		return MetaCommandSuccess, nil

	case ".stats":
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.db.Stats()); err != nil {
			return MetaCommandSuccess, errors.Wrap(err, "encode stats")
		}
		return MetaCommandSuccess, nil

	default:
		return MetaCommandUnrecognized, nil
	}
}
