// Package logging builds the logrus logger shared by the CLI commands.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps a level name to a logrus level. Unknown names fall back
// to info.
func ParseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// New returns a text logger writing to w at the given level.
func New(level string, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return log
}
