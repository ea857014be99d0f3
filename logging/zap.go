package logging

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapCore is a zapcore.Core that hands every entry to a facade Logger.
type zapCore struct {
	zapcore.LevelEnabler
	logger Logger
	fields []zapcore.Field
}

// NewZapCore returns a zapcore.Core writing through logger. Entries below
// enabler are dropped before any encoding happens. A nil enabler follows
// the logger's own IsXEnabled predicates.
func NewZapCore(logger Logger, enabler zapcore.LevelEnabler) zapcore.Core {
	if enabler == nil {
		enabler = levelEnabler(logger)
	}
	return &zapCore{LevelEnabler: enabler, logger: logger}
}

// NewZapLogger wraps logger as a *zap.Logger.
func NewZapLogger(logger Logger, opts ...zap.Option) *zap.Logger {
	return zap.New(NewZapCore(logger, nil), opts...)
}

func levelEnabler(logger Logger) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool {
		switch {
		case l < zapcore.InfoLevel:
			return logger.IsDebugEnabled()
		case l == zapcore.InfoLevel:
			return logger.IsInfoEnabled()
		case l == zapcore.WarnLevel:
			return logger.IsWarnEnabled()
		default:
			return logger.IsErrorEnabled()
		}
	}
}

// With implements zapcore.Core.
func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &zapCore{
		LevelEnabler: c.LevelEnabler,
		logger:       c.logger,
		fields:       make([]zapcore.Field, 0, len(c.fields)+len(fields)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

// Check implements zapcore.Core.
func (c *zapCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

// Write implements zapcore.Core.
func (c *zapCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	msg, err := render(entry, append(c.fields[:len(c.fields):len(c.fields)], fields...))

	switch {
	case entry.Level < zapcore.InfoLevel:
		if err != nil {
			c.logger.DebugErr(msg, err)
		} else {
			c.logger.Debug(msg)
		}
	case entry.Level == zapcore.InfoLevel:
		if err != nil {
			c.logger.InfoErr(msg, err)
		} else {
			c.logger.Info(msg)
		}
	case entry.Level == zapcore.WarnLevel:
		if err != nil {
			c.logger.WarnErr(msg, err)
		} else {
			c.logger.Warn(msg)
		}
	default:
		if err != nil {
			c.logger.ErrorErr(msg, err)
		} else {
			c.logger.Error(msg)
		}
	}
	return nil
}

// Sync implements zapcore.Core.
func (c *zapCore) Sync() error {
	return nil
}

// render flattens an entry to "[name] message key=value ..." with keys
// sorted, and pulls out the first error-typed field.
func render(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	var err error
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		if f.Type == zapcore.ErrorType && err == nil {
			if e, ok := f.Interface.(error); ok {
				err = e
				continue
			}
		}
		f.AddTo(enc)
	}

	var sb strings.Builder
	if entry.LoggerName != "" {
		sb.WriteString("[")
		sb.WriteString(entry.LoggerName)
		sb.WriteString("] ")
	}
	sb.WriteString(entry.Message)

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, enc.Fields[k])
	}
	return sb.String(), err
}

// Ensure zapCore implements zapcore.Core.
var _ zapcore.Core = (*zapCore)(nil)
