package config

import "github.com/spy16/rowdb/row"

type DBConfig struct {
	File     string
	PageSize int
	MaxPages int
	ReadOnly bool
	MMap     bool
}

func NewDBConfig() *DBConfig {
	return &DBConfig{
		File:     "rowdb.db",
		PageSize: row.DefaultPageSize,
		MaxPages: row.DefaultMaxPages,
		MMap:     true,
	}
}
