package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Console is the logging.file value that sends log output to stderr
const Console = "stderr"

// logLevel backs every handler built by InitLogger so that a config reload can
// change verbosity without rebuilding the logger.
var logLevel = new(slog.LevelVar)

// InitLogger builds the application logger from cfg and installs it as the
// slog default. File output is rotated by lumberjack.
func InitLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	logLevel.Set(ParseLogLevel(cfg.Level))

	if cfg.File == "" {
		cfg.File = filepath.Join(GetStateDir(), "reel.log")
	}

	var writer io.Writer = os.Stderr
	console := cfg.File == Console
	if !console {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
	}

	logger := slog.New(newHandler(writer, cfg.Format, cfg.Color && console))
	slog.SetDefault(logger)
	return logger, nil
}

// SetLogLevel changes the level of loggers created by InitLogger
func SetLogLevel(level string) {
	logLevel.Set(ParseLogLevel(level))
}

func newHandler(w io.Writer, format string, color bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: logLevel}
	switch {
	case strings.EqualFold(format, "json"):
		return slog.NewJSONHandler(w, opts)
	case color:
		return NewColoredTextHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "\033[90m",
	slog.LevelInfo:  "\033[32m",
	slog.LevelWarn:  "\033[33m",
	slog.LevelError: "\033[31m",
}

// ColoredTextHandler renders records like slog.TextHandler and tints the
// first field by level. It is meant for terminals only.
type ColoredTextHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	buf   *bytes.Buffer
	inner slog.Handler
}

// NewColoredTextHandler creates a ColoredTextHandler writing to w
func NewColoredTextHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredTextHandler {
	buf := &bytes.Buffer{}
	return &ColoredTextHandler{
		mu:    &sync.Mutex{},
		w:     w,
		buf:   buf,
		inner: slog.NewTextHandler(buf, opts),
	}
}

func (h *ColoredTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ColoredTextHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	line := h.buf.String()
	if color, ok := levelColors[r.Level]; ok {
		first, rest, _ := strings.Cut(line, " ")
		line = color + first + "\033[0m " + rest
	}
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *ColoredTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColoredTextHandler{mu: h.mu, w: h.w, buf: h.buf, inner: h.inner.WithAttrs(attrs)}
}

func (h *ColoredTextHandler) WithGroup(name string) slog.Handler {
	return &ColoredTextHandler{mu: h.mu, w: h.w, buf: h.buf, inner: h.inner.WithGroup(name)}
}

// ParseLogLevel maps a config string to a slog level, defaulting to info
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
