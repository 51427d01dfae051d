// Package logging configures the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Formats accepted by Config.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// MessageField is the JSON key that carries the log message. replay_log reads
// this key back, so it must stay stable.
const MessageField = "log"

// Config selects level, encoding and destination.
type Config struct {
	Level  string
	Format string
	Output io.Writer // nil means stderr
}

// New builds a logger from cfg. Records are newline-delimited JSON objects
// unless Format is "text".
func New(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: MessageField,
			},
		})
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return logger, nil
}
