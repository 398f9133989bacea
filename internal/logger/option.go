package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelCore gates a shared core behind its own minimum level, so one command
// can run quieter than the global logger without touching it.
type levelCore struct {
	zapcore.Core

	min zapcore.Level
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return c.min.Enabled(lvl)
}

//nolint:gocritic // zapcore.Core fixes the signature.
func (c *levelCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return checked
	}

	return checked.AddCore(entry, c)
}

//nolint:ireturn // zapcore.Core fixes the signature.
func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), min: c.min}
}

// WithLevel drops entries below lvl. py-versions uses it to keep installer
// chatter out of its report.
//
//nolint:ireturn // zap.Option is the extension point.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelCore{Core: core, min: lvl}
	})
}
