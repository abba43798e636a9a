// Package logger builds the logrus loggers of both binaries.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FieldTime    = "timestamp"
	FieldLevel   = "severity"
	FieldMessage = "message"
)

// NewServer logs JSON to stdout.
func NewServer(level, service string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  FieldTime,
			logrus.FieldKeyLevel: FieldLevel,
			logrus.FieldKeyMsg:   FieldMessage,
		},
	})
	l.SetLevel(parseLevel(level, logrus.InfoLevel))
	return l.WithField("service", service)
}

type FileConfig struct {
	Path  string
	Level string
	Debug bool
}

// NewFile writes text logs to a rotating file so the terminal stays clean.
// In debug mode the same lines also go to stderr.
func NewFile(cfg FileConfig) (*logrus.Entry, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, err
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var out io.Writer = rotating
	level := parseLevel(cfg.Level, logrus.WarnLevel)
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, rotating)
		level = logrus.DebugLevel
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	l.SetLevel(level)
	l.SetReportCaller(cfg.Debug)

	return l.WithField("app", "niyam"), rotating, nil
}

func parseLevel(raw string, fallback logrus.Level) logrus.Level {
	if raw == "" {
		return fallback
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return fallback
	}
	return level
}
