package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable before Init with
// logrus defaults, so packages can log from tests.
var Log = logrus.New()

// Init configures Log from the environment. Call once from main.
//
// LOG_LEVEL selects the level (default "info"); LOG_FORMAT=json switches to
// the JSON formatter, anything else gives coloured text.
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// SetOutput redirects the logger, e.g. to stderr while the terminal
// summary owns stdout.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}
