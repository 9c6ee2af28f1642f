package config

import (
	"github.com/spy16/rowdb"
	"github.com/spy16/rowdb/internal/logger"
)

type AppConfig struct {
	DB       *DBConfig
	REPL     *REPLConfig
	LogLevel string
}

func New() *AppConfig {
	return &AppConfig{
		DB:       NewDBConfig(),
		REPL:     NewREPLConfig(),
		LogLevel: "warning",
	}
}

// Options converts the database section into rowdb options, using the
// shared logger at the configured level.
func (c *AppConfig) Options() (*rowdb.Options, error) {
	if err := logger.SetLevel(c.LogLevel); err != nil {
		return nil, err
	}

	opts := rowdb.DefaultOptions
	opts.PageSize = c.DB.PageSize
	opts.MaxPages = c.DB.MaxPages
	opts.ReadOnly = c.DB.ReadOnly
	opts.MMap = c.DB.MMap
	opts.Log = logger.Component("rowdb")
	return &opts, nil
}
