package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. format is "json" or "text".
func NewLogger(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("unknown log level, using info")
	}
	log.SetLevel(lvl)
	return log
}
