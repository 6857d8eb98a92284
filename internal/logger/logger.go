// Package logger builds the process-wide *slog.Logger from config.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jeanpaul/contactbook/internal/config"
)

// New returns a logger for the given settings. Unusable settings fall back
// to defaults and the problem is logged through the fallback logger.
// The returned closer releases the log file, if one was opened.
func New(opts config.LogConfig) (*slog.Logger, io.Closer) {
	var handlerOpts slog.HandlerOptions
	switch strings.ToLower(opts.Level) {
	case "":
		handlerOpts.Level = nil
	case "debug":
		handlerOpts.Level = slog.LevelDebug
	case "info":
		handlerOpts.Level = slog.LevelInfo
	case "warn":
		handlerOpts.Level = slog.LevelWarn
	case "error":
		handlerOpts.Level = slog.LevelError
	default:
		bad := opts.Level
		opts.Level = ""
		logger, c := New(opts)
		logger.Warn("could not parse logger level", "level", bad)
		return logger, c
	}

	var output io.Writer
	var closer io.Closer = nopCloser{}
	switch opts.File {
	case "", "-":
		output = os.Stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler), closer
	default:
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			opts.File = ""
			logger, c := New(opts)
			logger.Warn("could not open logger output", "err", err)
			return logger, c
		}
		output, closer = f, f
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, &handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(output, &handlerOpts)
	default:
		closer.Close()
		opts.Format = "text"
		logger, c := New(opts)
		logger.Warn("could not parse logger format")
		return logger, c
	}

	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
