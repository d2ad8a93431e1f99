// Package logging configures the logrus standard logger used across clemstats.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps the reports on stdout free of chatter
const DefaultLevel = "warn"

// Setup points the standard logger at stderr with the given level; debug wins over level
func Setup(level string, debug bool) error {
	return SetupWriter(os.Stderr, level, debug)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(w io.Writer, level string, debug bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if debug {
		lvl = logrus.DebugLevel
	}

	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !debug,
		PadLevelText:     true,
	})
	return nil
}

// ParseLevel is logrus.ParseLevel with an empty string meaning DefaultLevel
func ParseLevel(level string) (logrus.Level, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
