package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 5
	logFileMaxAgeDays = 14
)

// InitLogger initializes and returns a structured logger. When file is set the
// log stream is duplicated into a size-rotated file.
func InitLogger(level, file string) zerolog.Logger {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsedLevel == zerolog.NoLevel {
		parsedLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(parsedLevel)

	return zerolog.New(logWriter(file)).With().Timestamp().Logger()
}

func logWriter(file string) io.Writer {
	file = strings.TrimSpace(file)
	if file == "" {
		return os.Stdout
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return os.Stdout
	}

	return zerolog.MultiLevelWriter(os.Stdout, &lumberjack.Logger{
		Filename:   file,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
		LocalTime:  true,
	})
}
