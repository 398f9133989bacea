package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		" INFO ": zapcore.InfoLevel,
		"warn":   zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"fatal":  zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("verbose")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal checks that an empty context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers ensures WithName and WithKV decorate the entries written through the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "vbox-installer")
	ctx = WithKV(ctx, "version", "7.1.4")

	InfoKV(ctx, "Resolved version", "source", "LATEST-STABLE.TXT")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "vbox-installer", entries[0].LoggerName)
	require.Equal(t, "Resolved version", entries[0].Message)
	require.Equal(t, "7.1.4", entries[0].ContextMap()["version"])
	require.Equal(t, "LATEST-STABLE.TXT", entries[0].ContextMap()["source"])
}

// TestWithLevel verifies that the level option filters entries below the threshold.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core, WithLevel(zapcore.WarnLevel)).Sugar()
	ctx := ToContext(context.Background(), l)

	Info(ctx, "hidden")
	Warn(ctx, "shown")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "shown", logs.All()[0].Message)
}

// TestWithLevel_KeepsFields checks that fields added after the level gate survive.
func TestWithLevel_KeepsFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core, WithLevel(zapcore.InfoLevel)).Sugar().With("tool", "py-versions")

	l.Debug("hidden")
	l.Info("shown")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "py-versions", logs.All()[0].ContextMap()["tool"])
}
