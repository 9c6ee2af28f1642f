package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spy16/rowdb"
	"github.com/spy16/rowdb/config"
	"github.com/spy16/rowdb/internal/logger"
	"github.com/spy16/rowdb/repl"
)

func main() {
	cfg := config.New()

	flag.StringVar(&cfg.DB.File, "file", cfg.DB.File, "DB file path")
	flag.IntVar(&cfg.DB.PageSize, "page-size", cfg.DB.PageSize, "page size in bytes")
	flag.IntVar(&cfg.DB.MaxPages, "max-pages", cfg.DB.MaxPages, "table capacity in pages (0 = unbounded)")
	flag.BoolVar(&cfg.DB.ReadOnly, "read-only", cfg.DB.ReadOnly, "open the file read-only")
	flag.BoolVar(&cfg.DB.MMap, "mmap", cfg.DB.MMap, "serve page loads from a memory mapping")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warning, error)")
	flag.BoolVar(&cfg.REPL.Color, "color", cfg.REPL.Color, "colorize prompt and errors")
	flag.Parse()

	// positional filename, as in `rowdb mydb.db`
	if flag.NArg() > 0 {
		cfg.DB.File = flag.Arg(0)
	}

	if err := run(cfg); err != nil {
		fatal(err)
	}
}

func run(cfg *config.AppConfig) (err error) {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	db, err := rowdb.Open(cfg.DB.File, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	logger.L.WithField("db", db.String()).Info("ready")
	return repl.New(db, os.Stdin, os.Stdout, cfg.REPL).Run()
}

func fatal(val interface{}) {
	fmt.Fprintln(os.Stderr, val)
	os.Exit(1)
}
