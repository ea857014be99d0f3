package logging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type panicky struct{}

func (*panicky) String() string { panic("no") }

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		expected string
	}{
		{"no args", "- {} -", nil, "- {} -"},
		{"one arg", "- {} -", []any{"value"}, "- value -"},
		{"two args", "- {}{} -", []any{"test", " 3"}, "- test 3 -"},
		{"n args", "{}{}{}", []any{"- ", "test", " 4 -"}, "- test 4 -"},
		{"surplus placeholders", "{} and {}", []any{"a"}, "a and {}"},
		{"surplus args", "{}", []any{"a", "b"}, "a"},
		{"escaped", `a \{} b {}`, []any{"x"}, "a {} b x"},
		{"double escaped", `path C:\\{}`, []any{"dir"}, `path C:\dir`},
		{"nil arg", "v={}", []any{nil}, "v=null"},
		{"int arg", "n={}", []any{42}, "n=42"},
		{"slice arg", "s={}", []any{[]int{1, 2}}, "s=[1 2]"},
		{"stringer", "d={}", []any{fmt.Stringer(&namedStringer{"x"})}, "d=<x>"},
		{"panicking stringer", "p={}", []any{&panicky{}}, "p=[FAILED toString()]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.template, tt.args...)
			assert.Equal(t, tt.expected, got.Message)
			assert.NoError(t, got.Err)
		})
	}
}

type namedStringer struct{ name string }

func (s *namedStringer) String() string { return "<" + s.name + ">" }

func TestFormatTrailingError(t *testing.T) {
	boom := errors.New("boom")

	got := Format("failed {}", "job", boom)
	assert.Equal(t, "failed job", got.Message)
	assert.Same(t, boom, got.Err)

	got = Format("failed {} {}", "job", boom)
	assert.Equal(t, "failed job boom", got.Message)
	assert.NoError(t, got.Err)

	got = Format("failed", boom)
	assert.Equal(t, "failed", got.Message)
	assert.Same(t, boom, got.Err)
}

// recorder is a Logger that keeps every call.
type recorder struct {
	name    string
	enabled map[string]bool
	lines   []string
}

func newRecorder(levels ...string) *recorder {
	r := &recorder{name: "rec", enabled: map[string]bool{}}
	for _, l := range levels {
		r.enabled[l] = true
	}
	return r
}

func (r *recorder) log(level, format string, args []any) {
	r.lines = append(r.lines, level+" "+Format(format, args...).Message)
}

func (r *recorder) logErr(level, msg string, err error) {
	r.lines = append(r.lines, level+" "+msg+" | "+err.Error())
}

func (r *recorder) Name() string                     { return r.name }
func (r *recorder) IsTraceEnabled() bool             { return r.enabled["TRACE"] }
func (r *recorder) Trace(format string, args ...any) { r.log("TRACE", format, args) }
func (r *recorder) TraceErr(msg string, err error)   { r.logErr("TRACE", msg, err) }
func (r *recorder) IsDebugEnabled() bool             { return r.enabled["DEBUG"] }
func (r *recorder) Debug(format string, args ...any) { r.log("DEBUG", format, args) }
func (r *recorder) DebugErr(msg string, err error)   { r.logErr("DEBUG", msg, err) }
func (r *recorder) IsInfoEnabled() bool              { return r.enabled["INFO"] }
func (r *recorder) Info(format string, args ...any)  { r.log("INFO", format, args) }
func (r *recorder) InfoErr(msg string, err error)    { r.logErr("INFO", msg, err) }
func (r *recorder) IsWarnEnabled() bool              { return r.enabled["WARN"] }
func (r *recorder) Warn(format string, args ...any)  { r.log("WARN", format, args) }
func (r *recorder) WarnErr(msg string, err error)    { r.logErr("WARN", msg, err) }
func (r *recorder) IsErrorEnabled() bool             { return r.enabled["ERROR"] }
func (r *recorder) Error(format string, args ...any) { r.log("ERROR", format, args) }
func (r *recorder) ErrorErr(msg string, err error)   { r.logErr("ERROR", msg, err) }

func TestZapLoggerRoutesLevels(t *testing.T) {
	rec := newRecorder("ERROR", "WARN", "INFO")
	zl := NewZapLogger(rec)

	zl.Debug("dropped")
	zl.Info("started", zap.String("mode", "dev"), zap.Int("port", 8080))
	zl.Warn("slow")
	zl.Error("failed", zap.Error(errors.New("disk full")))
	zl.Named("db").Info("connected")

	require.Equal(t, []string{
		"INFO started mode=dev port=8080",
		"WARN slow",
		"ERROR failed | disk full",
		"INFO [db] connected",
	}, rec.lines)
}

func TestZapLoggerWithFields(t *testing.T) {
	rec := newRecorder("ERROR", "WARN", "INFO", "DEBUG")
	zl := NewZapLogger(rec).With(zap.String("component", "auth"))

	zl.Debug("token", zap.Bool("valid", true))
	zl.Debug("again")

	assert.Equal(t, []string{
		"DEBUG token component=auth valid=true",
		"DEBUG again component=auth",
	}, rec.lines)
}

func TestZapCoreCustomEnabler(t *testing.T) {
	rec := newRecorder("ERROR", "WARN", "INFO", "DEBUG")
	zl := zap.New(NewZapCore(rec, zap.WarnLevel))

	zl.Info("dropped")
	zl.Warn("kept")

	assert.Equal(t, []string{"WARN kept"}, rec.lines)
}

func TestGlobalFactory(t *testing.T) {
	t.Cleanup(func() { SetFactory(nil) })

	l, err := GetLogger("x")
	require.NoError(t, err)
	assert.False(t, l.IsErrorEnabled())
	assert.Equal(t, "x", l.Name())

	rec := newRecorder("INFO")
	SetFactory(FactoryFunc(func(name string) (Logger, error) { return rec, nil }))
	assert.Same(t, rec, MustGetLogger("y"))

	SetFactory(FactoryFunc(func(name string) (Logger, error) { return nil, errors.New("bad config") }))
	_, err = GetLogger("z")
	require.Error(t, err)
	assert.Panics(t, func() { MustGetLogger("z") })
}

func TestContextLoggerStorage(t *testing.T) {
	rec := newRecorder()
	ctx := ToContext(context.Background(), rec)
	assert.Same(t, rec, FromContext(ctx))

	fallback := FromContext(context.Background())
	assert.NotNil(t, fallback)
	assert.False(t, fallback.IsTraceEnabled())
}
