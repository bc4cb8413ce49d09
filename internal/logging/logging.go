package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the process logger: JSON to stdout, level from config
// with info as the floor for anything unparsable.
func SetupLogging(level string) *logrus.Logger {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: parsed,
	}

	return &logger
}
