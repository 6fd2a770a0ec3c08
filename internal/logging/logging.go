// Package logging builds the structured loggers used by the library
// and the suite runner.
package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ParseLevel converts a level name such as "info" or "DEBUG" into a
// logrus level.
func ParseLevel(level string) (logrus.Level, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("unsupported log level %q", level)
	}

	return parsed, nil
}

// New returns a logger writing human readable lines at the given level.
func New(level string) (*logrus.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return log, nil
}
