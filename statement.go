package rowdb

import "github.com/spy16/rowdb/row"

// StatementType identifies the operation a Statement performs.
type StatementType int

// Supported statements.
const (
	StatementInsert StatementType = iota
	StatementSelect
)

func (st StatementType) String() string {
	switch st {
	case StatementInsert:
		return "insert"
	case StatementSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Statement is a prepared, validated operation. Row is only used by
// inserts.
type Statement struct {
	Type StatementType
	Row  row.Row
}

// ExecuteStatus is the outcome of executing a statement.
type ExecuteStatus int

// Execution outcomes.
const (
	ExecuteSuccess ExecuteStatus = iota
	ExecuteTableFull
)

// Result holds the status of an executed statement and, for selects, the
// rows read.
type Result struct {
	Status ExecuteStatus
	Rows   []row.Row
}
