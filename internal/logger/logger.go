package logger

import (
	"context"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// global backs FromContext when the context carries no logger.
	//nolint:gochecknoglobals // Shared by both tools.
	global *zap.SugaredLogger
	// level is adjustable at runtime through SetLevel.
	//nolint:gochecknoglobals // Shared by both tools.
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() { //nolint:gochecknoinits // Commands log before flags are parsed.
	SetLogger(New(level))
}

// New builds a console logger writing to stdout. A nil enabler means the
// shared runtime level. Levels are coloured on a terminal only.
func New(enabler zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if enabler == nil {
		enabler = level
	}

	encodeLevel := zapcore.CapitalLevelEncoder
	if isatty.IsTerminal(os.Stdout.Fd()) {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}

	//nolint:exhaustruct // No timestamps, names or function keys in console output.
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		CallerKey:        "caller",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      encodeLevel,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: ", ",
	})

	return zap.New(zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), enabler), options...).Sugar()
}

// ParseLogLevel accepts the names zap knows ("debug" through "fatal") in any
// case. Unknown names yield info and false.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return zapcore.InfoLevel, false
	}

	return lvl, true
}

// Level is the current runtime level.
func Level() zapcore.Level {
	return level.Level()
}

// Logger returns the fallback logger.
func Logger() *zap.SugaredLogger {
	return global
}

// SetLogger replaces the fallback logger. Call it before any goroutine logs.
func SetLogger(l *zap.SugaredLogger) {
	global = l
}

// SetLevel changes the runtime level of every logger built by New(nil).
func SetLevel(lvl zapcore.Level) {
	defer func() {
		_ = global.Sync()
	}()

	level.SetLevel(lvl)
}

// The helpers below write through the logger carried by ctx.
// The f variants format, the KV variants take alternating keys and values.

func Debug(ctx context.Context, args ...any) { FromContext(ctx).Debug(args...) }

func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Debugf(format, args...)
}

func DebugKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Debugw(message, kvs...)
}

func Info(ctx context.Context, args ...any) { FromContext(ctx).Info(args...) }

func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Infof(format, args...)
}

func InfoKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Infow(message, kvs...)
}

func Warn(ctx context.Context, args ...any) { FromContext(ctx).Warn(args...) }

func Warnf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Warnf(format, args...)
}

func WarnKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Warnw(message, kvs...)
}

func Error(ctx context.Context, args ...any) { FromContext(ctx).Error(args...) }

func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Errorf(format, args...)
}

func ErrorKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Errorw(message, kvs...)
}
