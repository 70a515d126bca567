package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/joserrivase/Accountability-Buddy-sub000/config"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configura o logger global de acordo com o ambiente.
func Init(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if strings.EqualFold(cfg.App.Environment, "development") {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(cfg.App.Environment, "production") {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	log = logger.Level(level).With().Timestamp().Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
