package logging

// NopFactory returns loggers that discard everything.
var NopFactory LoggerFactory = FactoryFunc(func(name string) (Logger, error) {
	return Nop(name), nil
})

// Nop returns a logger that discards everything and reports every level disabled.
func Nop(name string) Logger {
	return nopLogger{name: name}
}

type nopLogger struct {
	name string
}

func (l nopLogger) Name() string { return l.name }

func (nopLogger) IsTraceEnabled() bool { return false }
func (nopLogger) Trace(string, ...any) {}
func (nopLogger) TraceErr(string, error) {}
func (nopLogger) IsDebugEnabled() bool { return false }
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) DebugErr(string, error) {}
func (nopLogger) IsInfoEnabled() bool { return false }
func (nopLogger) Info(string, ...any) {}
func (nopLogger) InfoErr(string, error) {}
func (nopLogger) IsWarnEnabled() bool { return false }
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) WarnErr(string, error) {}
func (nopLogger) IsErrorEnabled() bool { return false }
func (nopLogger) Error(string, ...any) {}
func (nopLogger) ErrorErr(string, error) {}

var _ Logger = nopLogger{}
