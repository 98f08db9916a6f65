// README: Structured logger initialization.
package infra

import "github.com/sirupsen/logrus"

// NewLogger builds the process-wide logrus logger. Production gets JSON
// output for log shipping; development keeps the readable text format.
func NewLogger(level, environment string) *logrus.Logger {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
