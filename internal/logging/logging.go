package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. JSON output so log lines stay
// machine-parseable; level comes from LOG_LEVEL and defaults to info.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
