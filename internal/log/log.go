package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	levelVar = new(slog.LevelVar)
	loggerMu sync.RWMutex
	logger   = slog.New(newHandler(os.Stdout))
)

func init() {
	levelVar.Set(slog.LevelInfo)
}

// newHandler builds the logfmt handler shared by the server and the CLI.
func newHandler(w io.Writer) slog.Handler {
	opts := slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	}
	return slog.NewTextHandler(w, &opts)
}

// ParseLevel maps a LOG_LEVEL value onto a slog level.
// Supported levels are "debug", "info", "warn" and "error"; blank means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// SetLevel updates the minimum level accepted by the global logger.
func SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(parsed)
	return nil
}

// Logger returns the underlying slog.Logger instance.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// ReplaceLogger installs a custom slog.Logger.
func ReplaceLogger(l *slog.Logger) {
	if l == nil {
		panic("log: nil logger provided")
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// SetOutput redirects the global logger to w while keeping the logfmt layout.
func SetOutput(w io.Writer) {
	ReplaceLogger(slog.New(newHandler(w)))
}

func Debug(ctx context.Context, msg string, args ...any) {
	Logger().DebugContext(orBackground(ctx), msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	Logger().InfoContext(orBackground(ctx), msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	Logger().WarnContext(orBackground(ctx), msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	Logger().ErrorContext(orBackground(ctx), msg, args...)
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
