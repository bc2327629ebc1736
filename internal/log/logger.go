package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q: expected debug, info, warn or error", s)
	}
}

// Rotation bounds the log file. Zero MaxSizeMB means 100 MB; zero
// MaxBackups keeps every rotated file.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
}

// DefaultRotation keeps 25 rotated files of 10 MB each.
var DefaultRotation = Rotation{MaxSizeMB: 10, MaxBackups: 25}

// Option configures a file logger.
type Option func(*Rotation)

// WithRotation overrides DefaultRotation.
func WithRotation(r Rotation) Option {
	return func(dst *Rotation) { *dst = r }
}

// Logger writes levelled lines to a file and, optionally, echoes them to a console.
type Logger struct {
	mu           sync.Mutex
	out          io.WriteCloser
	minLevel     Level
	enabled      bool
	console      io.Writer
	consoleLevel Level
	now          func() time.Time
}

var (
	defaultLogger   *Logger
	defaultLoggerMu sync.RWMutex
)

// Init creates a file logger and installs it as the global logger.
func Init(logPath string, minLevel Level) error {
	l, err := New(logPath, minLevel)
	if err != nil {
		return err
	}
	SetDefault(l)
	return nil
}

// SetDefault replaces the global logger. Passing nil disables global logging.
func SetDefault(l *Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

// New creates a logger that appends to logPath and rotates it once it
// grows past the configured size.
func New(logPath string, minLevel Level, opts ...Option) (*Logger, error) {
	rotation := DefaultRotation
	for _, opt := range opts {
		opt(&rotation)
	}

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// Fix permissions of an existing file before opening it
	if info, err := os.Stat(logPath); err == nil {
		if info.Mode().Perm() != 0600 {
			if err := os.Chmod(logPath, 0600); err != nil {
				return nil, fmt.Errorf("chmod existing log file: %w", err)
			}
		}
	}

	// lumberjack opens lazily; fail here instead of on the first line.
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	_ = file.Close()

	return &Logger{
		out: &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			LocalTime:  true,
		},
		minLevel: minLevel,
		enabled:  true,
		now:      time.Now,
	}, nil
}

// NewConsole creates a logger that only writes to w.
func NewConsole(w io.Writer, minLevel Level) *Logger {
	return &Logger{
		minLevel:     minLevel,
		enabled:      true,
		console:      w,
		consoleLevel: minLevel,
		now:          time.Now,
	}
}

// Close closes the log file. The logger drops file output afterwards.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.out.Close()
	l.out = nil
	return err
}

// SetEnabled enables or disables logging.
func (l *Logger) SetEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// EchoTo mirrors every line at or above level to w (used by --verbose).
func (l *Logger) EchoTo(w io.Writer, level Level) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
	l.consoleLevel = level
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s: %s\n", l.now().Format("2006-01-02 15:04:05"), level.String(), message)

	if l.out != nil && level >= l.minLevel {
		if _, err := l.out.Write([]byte(line)); err != nil && level >= LevelError {
			fmt.Fprintf(os.Stderr, "logger: write failed: %v (message: %s)\n", err, message)
		}
	}

	if l.console != nil && level >= l.consoleLevel {
		_, _ = io.WriteString(l.console, line)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Writer returns an io.Writer that logs each write at the given level.
func (l *Logger) Writer(level Level) io.Writer {
	return &logWriter{logger: l, level: level}
}

type logWriter struct {
	logger *Logger
	level  Level
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.logger.log(w.level, "%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Convenience functions for the global logger

func Debug(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Debug(format, args...)
	}
}

func Info(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Info(format, args...)
	}
}

func Warn(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Warn(format, args...)
	}
}

func Error(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Error(format, args...)
	}
}

// Close closes the global logger.
func Close() error {
	if l := GetLogger(); l != nil {
		return l.Close()
	}
	return nil
}

// GetLogger returns the global logger (nil if not initialized).
func GetLogger() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// Global returns a domain.Logger that forwards to whatever global logger is
// installed at call time.
func Global() domain.Logger {
	return globalLogger{}
}

type globalLogger struct{}

func (globalLogger) Debug(format string, args ...any) { Debug(format, args...) }
func (globalLogger) Info(format string, args ...any)  { Info(format, args...) }
func (globalLogger) Warn(format string, args ...any)  { Warn(format, args...) }
func (globalLogger) Error(format string, args ...any) { Error(format, args...) }
func (globalLogger) Close() error                     { return nil }

// NopLogger is a logger that discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(_ string, _ ...any) {}
func (NopLogger) Info(_ string, _ ...any)  {}
func (NopLogger) Warn(_ string, _ ...any)  {}
func (NopLogger) Error(_ string, _ ...any) {}
func (NopLogger) Close() error             { return nil }

// Verify Logger implements domain.Logger
var _ domain.Logger = (*Logger)(nil)
var _ domain.Logger = NopLogger{}
