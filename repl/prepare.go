package repl

import (
	"math"
	"strconv"
	"strings"

	"github.com/spy16/rowdb"
	"github.com/spy16/rowdb/row"
)

// PrepareResult is the outcome of turning an input line into a statement.
type PrepareResult int

// Prepare outcomes.
const (
	PrepareSuccess PrepareResult = iota
	PrepareSyntaxError
	PrepareUnrecognizedStatement
	PrepareStringTooLong
	PrepareNegativeID
)

// Prepare parses one input line into a statement. Accepted forms are
// "insert <id> <username> <email>" and "select". Values are checked against
// the column widths and the id must be a non-negative 32 bit integer.
func Prepare(input string) (rowdb.Statement, PrepareResult) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return rowdb.Statement{}, PrepareUnrecognizedStatement
	}

	switch fields[0] {
	case "insert":
		return prepareInsert(fields[1:])

	case "select":
		if len(fields) != 1 {
			return rowdb.Statement{}, PrepareSyntaxError
		}
		return rowdb.Statement{Type: rowdb.StatementSelect}, PrepareSuccess

	default:
		return rowdb.Statement{}, PrepareUnrecognizedStatement
	}
}

func prepareInsert(args []string) (rowdb.Statement, PrepareResult) {
	if len(args) < 3 {
		return rowdb.Statement{}, PrepareSyntaxError
	}
	idStr, username, email := args[0], args[1], args[2]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return rowdb.Statement{}, PrepareSyntaxError
	} else if id < 0 {
		return rowdb.Statement{}, PrepareNegativeID
	} else if id > math.MaxUint32 {
		return rowdb.Statement{}, PrepareSyntaxError
	}

	if len(username) > row.UsernameSize || len(email) > row.EmailSize {
		return rowdb.Statement{}, PrepareStringTooLong
	}

	return rowdb.Statement{
		Type: rowdb.StatementInsert,
		Row:  row.New(uint32(id), username, email),
	}, PrepareSuccess
}
