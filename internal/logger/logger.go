package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New возвращает логгер сервиса: человекочитаемый вывод в development,
// JSON во всех остальных окружениях.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		return zerolog.New(writer).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
