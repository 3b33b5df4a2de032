package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init cấu hình global zerolog logger.
// development => console writer, còn lại => JSON ra stdout
func Init(env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func Info(msg string, fields map[string]interface{}) {
	log.Info().Fields(fields).Msg(msg)
}

func Debug(msg string) {
	log.Debug().Msg(msg)
}

func Error(msg string, err error) {
	log.Error().Err(err).Msg(msg)
}

// AsynqLogger bridge asynq.Logger interface sang zerolog
type AsynqLogger struct{}

func (AsynqLogger) Debug(args ...interface{}) { log.Debug().Msg("[ASYNQ] " + fmt.Sprint(args...)) }
func (AsynqLogger) Info(args ...interface{})  { log.Info().Msg("[ASYNQ] " + fmt.Sprint(args...)) }
func (AsynqLogger) Warn(args ...interface{})  { log.Warn().Msg("[ASYNQ] " + fmt.Sprint(args...)) }
func (AsynqLogger) Error(args ...interface{}) { log.Error().Msg("[ASYNQ] " + fmt.Sprint(args...)) }
func (AsynqLogger) Fatal(args ...interface{}) { log.Fatal().Msg("[ASYNQ] " + fmt.Sprint(args...)) }
