package row

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout

	assert.Equal(t, 4, l.IDSize)
	assert.Equal(t, 32, l.UsernameSize)
	assert.Equal(t, 255, l.EmailSize)
	assert.Equal(t, 0, l.IDOffset)
	assert.Equal(t, 4, l.UsernameOffset)
	assert.Equal(t, 36, l.EmailOffset)
	assert.Equal(t, 291, l.RowSize)
	assert.Equal(t, 4096, l.PageSize)
	assert.Equal(t, 14, l.RowsPerPage)
	assert.Equal(t, 100, l.MaxPages)
	assert.Equal(t, 1400, l.MaxRows)
	assert.True(t, l.Bounded())
}

func TestNewLayout(t *testing.T) {
	t.Run("SmallPage", func(t *testing.T) {
		l, err := NewLayout(1024, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, l.RowsPerPage)
		assert.Equal(t, 9, l.MaxRows)
	})

	t.Run("Unbounded", func(t *testing.T) {
		l, err := NewLayout(4096, 0)
		require.NoError(t, err)
		assert.False(t, l.Bounded())
		assert.Equal(t, 0, l.MaxRows)
	})

	t.Run("PageSmallerThanRow", func(t *testing.T) {
		_, err := NewLayout(100, 10)
		assert.Error(t, err)
	})

	t.Run("NegativeMaxPages", func(t *testing.T) {
		_, err := NewLayout(4096, -1)
		assert.Error(t, err)
	})
}

func TestLayout_RowsIn(t *testing.T) {
	l := DefaultLayout

	table := []struct {
		title   string
		fileLen int64
		want    int
	}{
		{title: "Empty", fileLen: 0, want: 0},
		{title: "OneRow", fileLen: 291, want: 1},
		{title: "PartialRowIgnored", fileLen: 291 + 100, want: 1},
		{title: "UnderOnePage", fileLen: 13 * 291, want: 13},
		{title: "FullPage", fileLen: 4096, want: 14},
		{title: "FullPagePlusOne", fileLen: 4096 + 291, want: 15},
		{title: "FifteenFullPages", fileLen: 15 * 4096, want: 15 * 14},
		{title: "FifteenFullPagesPlusTwo", fileLen: 15*4096 + 2*291, want: 15*14 + 2},
	}

	for _, tt := range table {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, l.RowsIn(tt.fileLen))
		})
	}

	// for files under one page the count is plain division
	for n := int64(0); n < 4096; n += 97 {
		assert.Equal(t, int(n/291), l.RowsIn(n), "fileLen=%d", n)
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, int64(0), CeilDiv(int64(0), 4096))
	assert.Equal(t, int64(1), CeilDiv(int64(1), 4096))
	assert.Equal(t, int64(1), CeilDiv(int64(4096), 4096))
	assert.Equal(t, int64(2), CeilDiv(int64(4097), 4096))
	assert.Equal(t, 3, CeilDiv(7, 3))
}
