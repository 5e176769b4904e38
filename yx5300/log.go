package yx5300

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelCore drops entries below a level it doesn't own, this lets
// a player toggle its debug output without rebuilding the parent logger.
type levelCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func filterLevel(l *zap.Logger, level zap.AtomicLevel) *zap.Logger {
	return l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return &levelCore{Core: c, level: level}
	}))
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl) && c.Core.Enabled(lvl)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}
