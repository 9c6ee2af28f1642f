// Package rowdb applies insert and select statements to a single-file,
// fixed-schema row table.
package rowdb

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/spy16/rowdb/pager"
	"github.com/spy16/rowdb/row"
	"github.com/spy16/rowdb/table"
)

// Open opens the named file as a rowdb database and returns a DB instance
// for accessing it. If the file doesn't exist, it will be created if not in
// read-only mode.
func Open(filePath string, opts *Options) (*DB, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	opts.init()

	tbl, err := table.Open(filePath, opts.tableOptions())
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filePath)
	}

	return &DB{
		filePath:   filePath,
		isReadOnly: opts.ReadOnly,
		table:      tbl,
		log:        opts.Log,
	}, nil
}

// DB represents an open rowdb database.
type DB struct {
	// external configs
	filePath   string
	isReadOnly bool

	// internal state
	table *table.Table
	log   logrus.FieldLogger
}

// Execute applies the statement. A full table is reported through the
// result status, not as an error; errors are I/O or usage failures.
func (db *DB) Execute(stmt Statement) (Result, error) {
	switch stmt.Type {
	case StatementInsert:
		return db.Insert(stmt.Row)

	case StatementSelect:
		return db.Select()

	default:
		return Result{}, errors.Errorf("unknown statement type %d", stmt.Type)
	}
}

// Insert appends the row.
func (db *DB) Insert(r row.Row) (Result, error) {
	err := db.table.Insert(r)
	if err == table.ErrTableFull {
		db.log.WithField("rows", db.table.NumRows()).Warn("insert rejected, table full")
		return Result{Status: ExecuteTableFull}, nil
	} else if err != nil {
		return Result{}, err
	}
	return Result{Status: ExecuteSuccess}, nil
}

// Select returns every row in insertion order.
func (db *DB) Select() (Result, error) {
	rows, err := db.table.Select()
	if err != nil {
		return Result{}, err
	}
	return Result{Status: ExecuteSuccess, Rows: rows}, nil
}

// Layout returns the row layout of the underlying table.
func (db *DB) Layout() row.Layout { return db.table.Layout() }

// Stats returns the current state of the database.
func (db *DB) Stats() Stats {
	return Stats{
		Rows:    db.table.NumRows(),
		MaxRows: db.table.Layout().MaxRows,
		Pager:   db.table.Stats(),
	}
}

// Close flushes the table and closes the underlying file.
func (db *DB) Close() error {
	return db.table.Close()
}

func (db *DB) String() string {
	return fmt.Sprintf("DB{file='%s', readOnly=%t, rows=%d}",
		db.filePath, db.isReadOnly, db.table.NumRows())
}

// Stats represents the state of a DB instance.
type Stats struct {
	Rows    int         `json:"rows"`
	MaxRows int         `json:"max_rows,omitempty"`
	Pager   pager.Stats `json:"pager"`
}
