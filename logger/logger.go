package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the process-wide logrus instance. Output goes
// to LOG_FILE when set and writable, otherwise stdout.
func InitLogger() {
	logrus.SetOutput(os.Stdout)

	if path := os.Getenv("LOG_FILE"); path != "" {
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file (%s), using stdout: %v", path, err)
		} else {
			logrus.SetOutput(logFile)
		}
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.Info("Logger initialized")
}
