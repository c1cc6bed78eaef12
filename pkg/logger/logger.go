package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger логгер с printf-интерфейсом поверх slog (JSON в stdout и, опционально, в файл)
type Logger struct {
	log  *slog.Logger
	file *os.File
}

// New создает логгер. Если filePath пустой, пишет только в stdout.
// level: debug, info, warn, error (по умолчанию info)
func New(filePath string, level string) (*Logger, error) {
	var (
		out  io.Writer = os.Stdout
		file *os.File
	)

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file %s: %w", filePath, err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	h := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{log: slog.New(h), file: file}, nil
}

// NewWithWriter создает логгер, пишущий в w (используется в тестах)
func NewWithWriter(w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{log: slog.New(h)}
}

// With возвращает логгер с дополнительными атрибутами
func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), file: l.file}
}

// Debug пишет сообщение уровня DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(slog.LevelDebug, format, v...)
}

// Info пишет сообщение уровня INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(slog.LevelInfo, format, v...)
}

// Warn пишет сообщение уровня WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.logf(slog.LevelWarn, format, v...)
}

// Error пишет сообщение уровня ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(slog.LevelError, format, v...)
}

// Fatal пишет сообщение уровня ERROR и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logf(slog.LevelError, format, v...)
	l.Close()
	os.Exit(1)
}

// Close закрывает файл лога
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Sync()
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) logf(level slog.Level, format string, v ...interface{}) {
	if !l.log.Enabled(context.Background(), level) {
		return
	}
	l.log.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
