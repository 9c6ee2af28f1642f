package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New()
	assert.Equal(t, "rowdb.db", c.DB.File)
	assert.Equal(t, 4096, c.DB.PageSize)
	assert.Equal(t, 100, c.DB.MaxPages)
	assert.Equal(t, "db > ", c.REPL.Prompt)

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, 4096, opts.PageSize)
	assert.Equal(t, 100, opts.MaxPages)
	assert.True(t, opts.MMap)
	assert.NotNil(t, opts.Log)
}

func TestOptions_BadLevel(t *testing.T) {
	c := New()
	c.LogLevel = "loud"
	_, err := c.Options()
	assert.Error(t, err)
}
