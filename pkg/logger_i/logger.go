package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/akolanti/SDKAssistant/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	inner *slog.Logger
}

type Options struct {
	// FilePath enables a rotating log file next to the console output
	FilePath string
	// Quiet drops console output, used by the terminal front ends
	Quiet bool
}

func Init() {
	InitWithOptions(Options{FilePath: config.Load().LogFilePath})
}

func InitWithOptions(opts Options) {
	options := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	var writers []io.Writer
	if !opts.Quiet {
		writers = append(writers, os.Stdout)
	}
	if opts.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		})
	}
	output := io.Discard
	if len(writers) > 0 {
		output = io.MultiWriter(writers...)
	}

	var handler slog.Handler
	if config.IS_PROD || opts.Quiet {
		options.Level = config.LOG_LEVEL_PROD
		handler = slog.NewJSONHandler(output, options)

	} else {
		handler = slog.NewTextHandler(output, options)

	}
	newLogger := slog.New(handler)
	slog.SetDefault(newLogger)
}

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logWithSource(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logWithSource(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logWithSource(slog.LevelDebug, msg, args...)
}

func (l *Logger) logWithSource(level slog.Level, msg string, args ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	// Skip 3 levels: runtime.Callers, logWithSource and the level wrapper
	runtime.Callers(3, pcs[:])
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.File != "" {
		args = append(args, "source", frame.Function)
	}
	l.inner.Log(context.Background(), level, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}

// WithTrace tags the logger with the trace id carried by ctx, if any.
func (l *Logger) WithTrace(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With("traceId", trace)
	}
	return l
}
