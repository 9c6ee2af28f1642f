package table

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spy16/rowdb/internal/logger"
	"github.com/spy16/rowdb/io"
	"github.com/spy16/rowdb/pager"
	"github.com/spy16/rowdb/row"
)

func testOptions() *Options {
	o := DefaultOptions
	o.Log = logger.Discard()
	return &o
}

func sampleRow(i int) row.Row {
	return row.New(uint32(i), fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@example.com", i))
}

func insertN(t *testing.T, tbl *Table, from, to int) {
	t.Helper()
	for i := from; i < to; i++ {
		require.NoError(t, tbl.Insert(sampleRow(i)), "insert %d", i)
	}
}

func openTemp(t *testing.T, path string) *Table {
	t.Helper()
	tbl, err := Open(path, testOptions())
	require.NoError(t, err)
	return tbl
}

func TestOpen_Empty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.db")
	tbl := openTemp(t, path)
	defer tbl.Close()

	assert.Equal(t, 0, tbl.NumRows())
	rows, err := tbl.Select()
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = os.Stat(path)
	assert.NoError(t, err, "open should create the file")
}

func TestTable_InsertSelect(t *testing.T) {
	t.Parallel()

	tbl, err := Open(io.InMemoryFilePath, testOptions())
	require.NoError(t, err)
	defer tbl.Close()

	require.NoError(t, tbl.Insert(row.New(1, "alice", "a@x.com")))

	rows, err := tbl.Select()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint32(1), rows[0].ID)
	assert.Equal(t, "alice", rows[0].UsernameString())
	assert.Equal(t, "a@x.com", rows[0].EmailString())
}

func TestTable_RowSlot(t *testing.T) {
	t.Parallel()

	tbl, err := Open(io.InMemoryFilePath, testOptions())
	require.NoError(t, err)
	defer tbl.Close()

	l := tbl.Layout()
	require.Equal(t, 291, l.RowSize)
	require.Equal(t, 14, l.RowsPerPage)
	assert.Equal(t, 14*100, l.MaxRows)
	assert.Equal(t, l.MaxRows, tbl.MaxRows())

	table := []struct {
		rowNum   int
		wantPage int
		wantOff  int
	}{
		{rowNum: 0, wantPage: 0, wantOff: 0},
		{rowNum: 1, wantPage: 0, wantOff: 291},
		{rowNum: 13, wantPage: 0, wantOff: 13 * 291},
		{rowNum: 14, wantPage: 1, wantOff: 0},
		{rowNum: 29, wantPage: 2, wantOff: 291},
	}

	for _, tt := range table {
		t.Run(fmt.Sprintf("Row%d", tt.rowNum), func(t *testing.T) {
			page, off := tbl.RowSlot(tt.rowNum)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantOff, off)
		})
	}
}

func TestTable_Capacity(t *testing.T) {
	t.Parallel()

	tbl, err := Open(io.InMemoryFilePath, testOptions())
	require.NoError(t, err)
	defer tbl.Close()

	maxRows := tbl.Layout().MaxRows
	insertN(t, tbl, 0, maxRows)
	assert.Equal(t, maxRows, tbl.NumRows())

	err = tbl.Insert(sampleRow(maxRows))
	assert.Equal(t, ErrTableFull, err)
	assert.Equal(t, maxRows, tbl.NumRows())

	rows, err := tbl.Select()
	require.NoError(t, err)
	require.Len(t, rows, maxRows)
	assert.Equal(t, uint32(maxRows-1), rows[maxRows-1].ID)
}

func TestTable_Durability(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "durable.db")

	tbl := openTemp(t, path)
	insertN(t, tbl, 0, 30)
	require.NoError(t, tbl.Close())

	tbl = openTemp(t, path)
	assert.Equal(t, 30, tbl.NumRows())

	rows, err := tbl.Select()
	require.NoError(t, err)
	require.Len(t, rows, 30)
	for i, r := range rows {
		assert.Equal(t, sampleRow(i), r)
	}

	// append to the partially filled last page and reopen again
	insertN(t, tbl, 30, 31)
	require.NoError(t, tbl.Close())

	tbl = openTemp(t, path)
	defer tbl.Close()

	rows, err = tbl.Select()
	require.NoError(t, err)
	require.Len(t, rows, 31)
	for i, r := range rows {
		assert.Equal(t, sampleRow(i), r)
	}
}

func TestTable_Close_PartialPage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.db")
	tbl := openTemp(t, path)
	l := tbl.Layout()

	insertN(t, tbl, 0, l.RowsPerPage+1)
	require.NoError(t, tbl.Close())

	st := tbl.Stats()
	assert.Equal(t, 2, st.Flushes)
	assert.Equal(t, int64(l.PageSize+l.RowSize), st.BytesFlushed)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(l.PageSize+l.RowSize), fi.Size())
}

func TestTable_Close_ManyPages(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "many.db")
	tbl := openTemp(t, path)
	l := tbl.Layout()

	// enough full pages for the unused page tails to add up past a row
	n := 15*l.RowsPerPage + 3
	insertN(t, tbl, 0, n)
	require.NoError(t, tbl.Close())

	tbl = openTemp(t, path)
	defer tbl.Close()
	assert.Equal(t, n, tbl.NumRows())

	rows, err := tbl.Select()
	require.NoError(t, err)
	require.Len(t, rows, n)
	assert.Equal(t, sampleRow(n-1), rows[n-1])
}

func TestTable_Close_SkipsUntouchedAndDeadPages(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "skip.db")
	tbl := openTemp(t, path)
	insertN(t, tbl, 0, 20)
	require.NoError(t, tbl.Close())

	tbl = openTemp(t, path)

	// touch a page past the live rows; it must not be written
	pg, err := tbl.pager.GetPage(5)
	require.NoError(t, err)
	copy(pg.Bytes(), "garbage")

	require.NoError(t, tbl.Close())
	assert.Equal(t, 0, tbl.Stats().Flushes, "no live page was loaded")

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4096+6*291), fi.Size())
}

func TestTable_Closed(t *testing.T) {
	t.Parallel()

	tbl, err := Open(io.InMemoryFilePath, testOptions())
	require.NoError(t, err)
	require.NoError(t, tbl.Close())
	require.NoError(t, tbl.Close(), "second close should be a no-op")

	assert.Equal(t, ErrClosed, tbl.Insert(sampleRow(1)))
	_, err = tbl.Select()
	assert.Equal(t, ErrClosed, err)
}

func TestTable_ReadOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ro.db")
	tbl := openTemp(t, path)
	insertN(t, tbl, 0, 3)
	require.NoError(t, tbl.Close())

	opts := testOptions()
	opts.ReadOnly = true
	tbl, err := Open(path, opts)
	require.NoError(t, err)

	err = tbl.Insert(sampleRow(3))
	assert.True(t, errors.Is(err, io.ErrReadOnly))

	rows, err := tbl.Select()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	require.NoError(t, tbl.Close())
}

func TestOpen_FileTooLarge(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "big.db")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096+291), 0644))

	opts := testOptions()
	opts.MaxPages = 1

	_, err := Open(path, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	// the file handle must have been released
	tbl := openTemp(t, path)
	assert.Equal(t, 15, tbl.NumRows())
	require.NoError(t, tbl.Close())
}

func TestNew_FromPager(t *testing.T) {
	t.Parallel()

	file := io.NewInMemory(nil)
	p, err := pager.Open(file, &pager.Options{PageSize: 1024, MaxPages: 2, Log: logger.Discard()})
	require.NoError(t, err)

	tbl, err := New(p, &Options{Log: logger.Discard()})
	require.NoError(t, err)

	l := tbl.Layout()
	assert.Equal(t, 3, l.RowsPerPage)
	assert.Equal(t, 6, l.MaxRows)

	insertN(t, tbl, 0, 6)
	assert.Equal(t, ErrTableFull, tbl.Insert(sampleRow(6)))

	// capture the bytes before close drops the in-memory file
	require.NoError(t, tbl.flush())
	assert.Len(t, file.Bytes(), 2*1024)
	require.NoError(t, tbl.Close())
}
