// Package logging configures the logrus logger used across savr.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup returns a logger writing to out at the given level. format is
// "json" or "text"; anything else falls back to text.
func Setup(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
	}
	if strings.EqualFold(format, "json") {
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		}
	}

	return &logrus.Logger{
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		Out:       out,
		Level:     lvl,
	}, nil
}

// Discard returns a logger that drops everything. Used as the default when
// no logger is injected.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
