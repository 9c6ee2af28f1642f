// Package repl implements the interactive read-eval-print loop on top of a
// rowdb database.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/spy16/rowdb"
	"github.com/spy16/rowdb/config"
)

// New returns a REPL reading statements from in and writing results to out.
func New(db *rowdb.DB, in io.Reader, out io.Writer, cfg *config.REPLConfig) *REPL {
	if cfg == nil {
		cfg = config.NewREPLConfig()
	}

	r := &REPL{
		db:     db,
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: cfg.Prompt,
		errStyle: func(s string) string {
			return s
		},
		promptStyle: func(s string) string {
			return s
		},
	}

	if cfg.Color {
		es := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		ps := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		r.errStyle = func(s string) string { return es.Render(s) }
		r.promptStyle = func(s string) string { return ps.Render(s) }
	}
	return r
}

// REPL reads one statement per line, executes it and prints the outcome.
type REPL struct {
	db     *rowdb.DB
	in     *bufio.Scanner
	out    io.Writer
	prompt string

	errStyle    func(string) string
	promptStyle func(string) string
}

// Run loops until ".exit" or end of input. Statement level problems are
// printed and the loop continues; only input and storage failures end it
// with an error. Run does not close the database.
func (r *REPL) Run() error {
	for {
		r.printf("%s", r.promptStyle(r.prompt))

		if !r.in.Scan() {
			if err := r.in.Err(); err != nil {
				return errors.Wrap(err, "read input")
			}
			return nil
		}

		input := strings.TrimSpace(r.in.Text())
		if input == "" {
			continue
		}

		done, err := r.handle(input)
		if err != nil {
			r.printf("%s\n", r.errStyle(fmt.Sprintf("Error: %v", err)))
			return err
		} else if done {
			return nil
		}
	}
}

func (r *REPL) handle(input string) (bool, error) {
	if strings.HasPrefix(input, ".") {
		res, err := r.doMetaCommand(input)
		if err != nil {
			return false, err
		}

		switch res {
		case MetaCommandExit:
			return true, nil
		case MetaCommandUnrecognized:
			r.printf("%s\n", r.errStyle(fmt.Sprintf("Unrecognized command '%s'", input)))
		}
		return false, nil
	}

	stmt, prep := Prepare(input)
	switch prep {
	case PrepareSuccess:
	case PrepareSyntaxError:
		r.printf("%s\n", r.errStyle("Syntax error. Could not parse statement."))
		return false, nil
	case PrepareStringTooLong:
		r.printf("%s\n", r.errStyle("String is too long."))
		return false, nil
	case PrepareNegativeID:
		r.printf("%s\n", r.errStyle("ID must be positive."))
		return false, nil
	case PrepareUnrecognizedStatement:
		r.printf("%s\n", r.errStyle(fmt.Sprintf("Unrecognized keyword at start of '%s'.", input)))
		return false, nil
	}

	res, err := r.db.Execute(stmt)
	if err != nil {
		return false, err
	}

	switch res.Status {
	case rowdb.ExecuteSuccess:
		for _, rw := range res.Rows {
			r.printf("%s\n", rw)
		}
		r.printf("Executed.\n")
	case rowdb.ExecuteTableFull:
		r.printf("%s\n", r.errStyle("Error: Table full."))
	}
	return false, nil
}

func (r *REPL) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
