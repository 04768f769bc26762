package bootstrap

import (
	"os"

	"github.com/sirupsen/logrus"
)

// setupLogger configures a logrus logger. The server logs JSON; the CLI logs
// text to stderr so command output stays clean.
func setupLogger(level string, json bool) *logrus.Logger {
	log := logrus.New()
	if json {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetOutput(os.Stdout)
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		log.SetOutput(os.Stderr)
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
