package jcdp

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/leeforge/colorlog/errors"
	"github.com/leeforge/colorlog/logging"
	"github.com/leeforge/colorlog/printer"
)

// tracebackIndent prefixes every line after the message in an error call.
const tracebackIndent = "\t\t"

// Adapter implements logging.Logger on top of one printer per level.
//
// The printer table is filled at construction and never changes. Every
// call is written synchronously; the adapter adds no locking of its own.
type Adapter struct {
	name        string
	threshold   Level
	printers    [levelCount]printer.Printer
	fileEnabled bool
	filePrinter printer.Printer
	errorOutput zapcore.WriteSyncer
}

// NewAdapter returns an adapter for threshold. printers[i] serves the level
// of rank i+1; missing or nil slots get a default colored printer at the
// threshold, timestamped if timestamps is set.
func NewAdapter(name string, threshold Level, timestamps bool, printers ...printer.Printer) *Adapter {
	a := &Adapter{
		name:        name,
		threshold:   threshold,
		errorOutput: zapcore.Lock(os.Stderr),
	}
	for i := range a.printers {
		if i < len(printers) && printers[i] != nil {
			a.printers[i] = printers[i]
			continue
		}
		p := printer.NewBuilder(threshold.Rank(), timestamps).Build()
		p.SetLevel(threshold.Rank())
		a.printers[i] = p
	}
	return a
}

// SetFilePrinter mirrors every following call to p.
func (a *Adapter) SetFilePrinter(p printer.Printer) {
	if p == nil {
		return
	}
	a.filePrinter = p
	a.fileEnabled = true
}

// SetErrorOutput sets where failed writes are reported.
func (a *Adapter) SetErrorOutput(ws zapcore.WriteSyncer) {
	if ws != nil {
		a.errorOutput = zapcore.Lock(ws)
	}
}

// FileEnabled reports whether calls are mirrored to a file printer.
func (a *Adapter) FileEnabled() bool { return a.fileEnabled }

// FilePrinter returns the file printer, or nil.
func (a *Adapter) FilePrinter() printer.Printer { return a.filePrinter }

// Printer returns the printer serving level.
func (a *Adapter) Printer(level Level) printer.Printer {
	return a.printers[level.index()]
}

// Threshold returns the configured threshold.
func (a *Adapter) Threshold() Level { return a.threshold }

// Name returns the name the adapter was looked up with.
func (a *Adapter) Name() string { return a.name }

// Sync flushes every printer.
func (a *Adapter) Sync() error {
	var firstErr error
	for _, p := range a.printers {
		if err := p.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.fileEnabled {
		if err := a.filePrinter.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// admits reports whether any destination would keep a line at level.
func (a *Adapter) admits(level Level) bool {
	if a.threshold.Enables(level) {
		return true
	}
	return a.fileEnabled && printer.Admits(a.filePrinter.Level(), level.Rank())
}

func (a *Adapter) log(msg string, level Level) {
	a.report(a.Printer(level).DebugPrintln(msg, level.Rank()))
	if a.fileEnabled {
		a.report(a.filePrinter.DebugPrintln(msg, level.Rank()))
	}
}

func (a *Adapter) logf(level Level, format string, args []any) {
	if !a.admits(level) {
		return
	}
	ft := logging.Format(format, args...)
	if ft.Err != nil {
		a.logTraceback(ft.Message, ft.Err, level)
		return
	}
	a.log(ft.Message, level)
}

func (a *Adapter) logTraceback(msg string, err error, level Level) {
	if !a.admits(level) {
		return
	}
	lines := tracebackLines(msg, err)
	p := a.Printer(level)
	for _, line := range lines {
		a.report(p.DebugPrintln(line, level.Rank()))
	}
	if a.fileEnabled {
		for _, line := range lines {
			a.report(a.filePrinter.DebugPrintln(line, level.Rank()))
		}
	}
}

// tracebackLines renders msg, err, its causes and its captured frames.
func tracebackLines(msg string, err error) []string {
	lines := []string{msg}
	if err == nil {
		return lines
	}
	lines = append(lines, tracebackIndent+err.Error())
	for _, cause := range errors.Causes(err) {
		lines = append(lines, tracebackIndent+"caused by: "+cause)
	}
	for _, frame := range errors.StackTrace(err) {
		lines = append(lines, tracebackIndent+frame)
	}
	return lines
}

// report writes a failed write to the error output.
func (a *Adapter) report(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(a.errorOutput, "%v jcdp write error: %v\n", time.Now(), err)
	_ = a.errorOutput.Sync()
}

func (a *Adapter) IsTraceEnabled() bool {
	return a.threshold.Enables(TRACE)
}

func (a *Adapter) Trace(format string, args ...any) {
	a.logf(TRACE, format, args)
}

func (a *Adapter) TraceErr(msg string, err error) {
	a.logTraceback(msg, err, TRACE)
}

func (a *Adapter) IsDebugEnabled() bool {
	return a.threshold.Enables(DEBUG)
}

func (a *Adapter) Debug(format string, args ...any) {
	a.logf(DEBUG, format, args)
}

func (a *Adapter) DebugErr(msg string, err error) {
	a.logTraceback(msg, err, DEBUG)
}

func (a *Adapter) IsInfoEnabled() bool {
	return a.threshold.Enables(INFO)
}

func (a *Adapter) Info(format string, args ...any) {
	a.logf(INFO, format, args)
}

func (a *Adapter) InfoErr(msg string, err error) {
	a.logTraceback(msg, err, INFO)
}

func (a *Adapter) IsWarnEnabled() bool {
	return a.threshold.Enables(WARN)
}

func (a *Adapter) Warn(format string, args ...any) {
	a.logf(WARN, format, args)
}

func (a *Adapter) WarnErr(msg string, err error) {
	a.logTraceback(msg, err, WARN)
}

func (a *Adapter) IsErrorEnabled() bool {
	return a.threshold.Enables(ERROR)
}

func (a *Adapter) Error(format string, args ...any) {
	a.logf(ERROR, format, args)
}

func (a *Adapter) ErrorErr(msg string, err error) {
	a.logTraceback(msg, err, ERROR)
}

// Ensure Adapter implements logging.Logger.
var _ logging.Logger = (*Adapter)(nil)
