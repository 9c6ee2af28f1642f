// Package logger holds the process wide logger used by rowdb components
// when no logger is supplied through options.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// L is the shared logger. Components log through logrus.FieldLogger so
// callers can substitute an entry with extra fields.
var L = &logrus.Logger{
	Out:   os.Stderr,
	Level: logrus.WarnLevel,
	Hooks: make(logrus.LevelHooks),
	Formatter: &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	},
}

// SetLevel parses the level name and applies it to L. Unknown names leave
// the level untouched and return the parse error.
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	L.SetLevel(lvl)
	return nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

// Component returns an entry tagged with the component name. The prefixed
// formatter renders the "prefix" field ahead of the message.
func Component(name string) logrus.FieldLogger {
	return L.WithField("prefix", name)
}
