package printer

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// DefaultDateFormat is the timestamp layout used when none is configured.
const DefaultDateFormat = "02/01/2006 15:04:05"

// PrintAll is the printer level that admits every rank.
const PrintAll = 0

// Printer is a destination that accepts ranked lines.
type Printer interface {
	// DebugPrintln writes text followed by a newline if rank is admitted.
	DebugPrintln(text string, rank int) error
	// Level returns the printer's threshold rank.
	Level() int
	// SetLevel replaces the printer's threshold rank.
	SetLevel(level int)
	// Sync flushes buffered output.
	Sync() error
}

var pool = buffer.NewPool()

// stdout is shared by every printer that does not set its own output.
var stdout = zapcore.Lock(NewConsoleSyncer(os.Stdout))

// Admits reports whether a printer at level would print rank.
func Admits(level, rank int) bool {
	return level == PrintAll || rank <= level
}

// ColoredPrinter writes colored, optionally timestamped lines.
type ColoredPrinter struct {
	mu           sync.RWMutex
	level        int
	timestamping bool
	dateFormat   string
	attr         Attribute
	fg           FColor
	bg           BColor
	out          zapcore.WriteSyncer
	clock        func() time.Time
}

// Builder configures a ColoredPrinter.
type Builder struct {
	p ColoredPrinter
}

// NewBuilder starts a ColoredPrinter with the given level and timestamp flag.
func NewBuilder(level int, timestamping bool) *Builder {
	return &Builder{p: ColoredPrinter{
		level:        level,
		timestamping: timestamping,
		dateFormat:   DefaultDateFormat,
		fg:           FNone,
		bg:           BNone,
		out:          stdout,
		clock:        time.Now,
	}}
}

// Foreground sets the foreground color.
func (b *Builder) Foreground(c FColor) *Builder {
	b.p.fg = c
	return b
}

// Background sets the background color.
func (b *Builder) Background(c BColor) *Builder {
	b.p.bg = c
	return b
}

// Attribute sets the text attribute.
func (b *Builder) Attribute(a Attribute) *Builder {
	b.p.attr = a
	return b
}

// DateFormat sets the timestamp layout.
func (b *Builder) DateFormat(layout string) *Builder {
	if layout != "" {
		b.p.dateFormat = layout
	}
	return b
}

// Output sets the destination. The syncer is locked before use.
func (b *Builder) Output(ws zapcore.WriteSyncer) *Builder {
	if ws != nil {
		b.p.out = zapcore.Lock(ws)
	}
	return b
}

// Clock sets the time source used for timestamps.
func (b *Builder) Clock(clock func() time.Time) *Builder {
	if clock != nil {
		b.p.clock = clock
	}
	return b
}

// Build returns the configured printer.
func (b *Builder) Build() *ColoredPrinter {
	return &ColoredPrinter{
		level:        b.p.level,
		timestamping: b.p.timestamping,
		dateFormat:   b.p.dateFormat,
		attr:         b.p.attr,
		fg:           b.p.fg,
		bg:           b.p.bg,
		out:          b.p.out,
		clock:        b.p.clock,
	}
}

// GenerateCode returns the escape sequence this printer prefixes lines with.
func (p *ColoredPrinter) GenerateCode() string {
	return GenerateCode(p.attr, p.fg, p.bg)
}

// Foreground returns the configured foreground color.
func (p *ColoredPrinter) Foreground() FColor { return p.fg }

// Background returns the configured background color.
func (p *ColoredPrinter) Background() BColor { return p.bg }

// Timestamping reports whether lines carry a timestamp.
func (p *ColoredPrinter) Timestamping() bool { return p.timestamping }

func (p *ColoredPrinter) Level() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *ColoredPrinter) SetLevel(level int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

func (p *ColoredPrinter) DebugPrintln(text string, rank int) error {
	if !Admits(p.Level(), rank) {
		return nil
	}

	buf := pool.Get()
	defer buf.Free()

	buf.AppendString(p.GenerateCode())
	if p.timestamping {
		buf.AppendTime(p.clock(), p.dateFormat)
		buf.AppendByte(' ')
	}
	buf.AppendString(text)
	buf.AppendString(Reset)
	buf.AppendByte('\n')

	_, err := p.out.Write(buf.Bytes())
	return err
}

func (p *ColoredPrinter) Sync() error {
	return p.out.Sync()
}

// Ensure ColoredPrinter implements Printer.
var _ Printer = (*ColoredPrinter)(nil)
