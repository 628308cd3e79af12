package util

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the application logger. InitLogger replaces it during startup.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogger configures Logger and the zerolog global logger.
// format "console" or env "development" gives human readable output.
func InitLogger(env, format string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if format == "console" || env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level := zerolog.InfoLevel
	switch env {
	case "development":
		level = zerolog.DebugLevel
	case "test":
		level = zerolog.WarnLevel
	}

	Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = Logger
	return Logger
}
