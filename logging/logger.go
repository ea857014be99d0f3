package logging

// Logger is the leveled logging facade.
//
// Each level has a predicate, a message call and an error-aware call.
// The message call treats format as a plain message when no args are
// given, otherwise "{}" placeholders are replaced positionally (see Format).
type Logger interface {
	// Name returns the name the logger was looked up with.
	Name() string

	// IsTraceEnabled reports whether TRACE calls produce output.
	IsTraceEnabled() bool
	// Trace logs at TRACE.
	Trace(format string, args ...any)
	// TraceErr logs msg and err at TRACE.
	TraceErr(msg string, err error)

	// IsDebugEnabled reports whether DEBUG calls produce output.
	IsDebugEnabled() bool
	// Debug logs at DEBUG.
	Debug(format string, args ...any)
	// DebugErr logs msg and err at DEBUG.
	DebugErr(msg string, err error)

	// IsInfoEnabled reports whether INFO calls produce output.
	IsInfoEnabled() bool
	// Info logs at INFO.
	Info(format string, args ...any)
	// InfoErr logs msg and err at INFO.
	InfoErr(msg string, err error)

	// IsWarnEnabled reports whether WARN calls produce output.
	IsWarnEnabled() bool
	// Warn logs at WARN.
	Warn(format string, args ...any)
	// WarnErr logs msg and err at WARN.
	WarnErr(msg string, err error)

	// IsErrorEnabled reports whether ERROR calls produce output.
	IsErrorEnabled() bool
	// Error logs at ERROR.
	Error(format string, args ...any)
	// ErrorErr logs msg and err at ERROR.
	ErrorErr(msg string, err error)
}

// LoggerFactory hands out loggers by name.
type LoggerFactory interface {
	GetLogger(name string) (Logger, error)
}

// FactoryFunc adapts a function to LoggerFactory.
type FactoryFunc func(name string) (Logger, error)

// GetLogger calls f(name).
func (f FactoryFunc) GetLogger(name string) (Logger, error) {
	return f(name)
}
