package printer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink is a rotating file shared by any number of FilePrinters.
type FileSink struct {
	path string
	file *lumberjack.Logger
	out  zapcore.WriteSyncer
}

// OpenFileSink creates the parent directory of path and returns a sink.
// The file itself is opened on first write.
func OpenFileSink(path string, maxSize, maxBackups, maxAge int, compress bool) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("file printer: empty path")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("file printer: create directory %s: %w", dir, err)
		}
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   compress,
		LocalTime:  true,
	}
	return &FileSink{path: path, file: file, out: zapcore.AddSync(file)}, nil
}

// Path returns the destination file.
func (s *FileSink) Path() string { return s.path }

// Write implements io.Writer.
func (s *FileSink) Write(p []byte) (int, error) { return s.out.Write(p) }

// Sync is a no-op; lumberjack writes through on every call.
func (s *FileSink) Sync() error { return s.out.Sync() }

// Close closes the file. A later write reopens it.
func (s *FileSink) Close() error { return s.file.Close() }

// FilePrinter writes plain, optionally timestamped lines to a FileSink.
type FilePrinter struct {
	mu           sync.RWMutex
	level        int
	timestamping bool
	dateFormat   string
	sink         *FileSink
	clock        func() time.Time
}

// FileBuilder configures a FilePrinter.
type FileBuilder struct {
	path         string
	level        int
	timestamping bool
	dateFormat   string
	maxSize      int
	maxBackups   int
	maxAge       int
	compress     bool
	sink         *FileSink
	clock        func() time.Time
}

// NewFileBuilder starts a FilePrinter writing to path.
func NewFileBuilder(path string) *FileBuilder {
	return &FileBuilder{
		path:       path,
		level:      PrintAll,
		dateFormat: DefaultDateFormat,
		maxSize:    100,
		maxBackups: 10,
		maxAge:     7,
		clock:      time.Now,
	}
}

// Level sets the threshold rank.
func (b *FileBuilder) Level(level int) *FileBuilder {
	b.level = level
	return b
}

// Timestamping toggles the timestamp prefix.
func (b *FileBuilder) Timestamping(enabled bool) *FileBuilder {
	b.timestamping = enabled
	return b
}

// DateFormat sets the timestamp layout.
func (b *FileBuilder) DateFormat(layout string) *FileBuilder {
	if layout != "" {
		b.dateFormat = layout
	}
	return b
}

// MaxSize is the size in megabytes at which the file is rotated.
func (b *FileBuilder) MaxSize(mb int) *FileBuilder {
	b.maxSize = mb
	return b
}

// MaxBackups is the number of rotated files kept.
func (b *FileBuilder) MaxBackups(n int) *FileBuilder {
	b.maxBackups = n
	return b
}

// MaxAge is the number of days rotated files are kept.
func (b *FileBuilder) MaxAge(days int) *FileBuilder {
	b.maxAge = days
	return b
}

// Compress gzips rotated files.
func (b *FileBuilder) Compress(enabled bool) *FileBuilder {
	b.compress = enabled
	return b
}

// Sink writes to an existing sink instead of opening a new one.
// The rotation knobs are ignored when a sink is given.
func (b *FileBuilder) Sink(sink *FileSink) *FileBuilder {
	b.sink = sink
	return b
}

// Clock sets the time source used for timestamps.
func (b *FileBuilder) Clock(clock func() time.Time) *FileBuilder {
	if clock != nil {
		b.clock = clock
	}
	return b
}

// Build returns the printer, opening a sink unless one was given.
func (b *FileBuilder) Build() (*FilePrinter, error) {
	sink := b.sink
	if sink == nil {
		var err error
		sink, err = OpenFileSink(b.path, b.maxSize, b.maxBackups, b.maxAge, b.compress)
		if err != nil {
			return nil, err
		}
	}

	return &FilePrinter{
		level:        b.level,
		timestamping: b.timestamping,
		dateFormat:   b.dateFormat,
		sink:         sink,
		clock:        b.clock,
	}, nil
}

// Path returns the destination file.
func (p *FilePrinter) Path() string { return p.sink.Path() }

func (p *FilePrinter) Level() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *FilePrinter) SetLevel(level int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

func (p *FilePrinter) DebugPrintln(text string, rank int) error {
	if !Admits(p.Level(), rank) {
		return nil
	}

	buf := pool.Get()
	defer buf.Free()

	if p.timestamping {
		buf.AppendTime(p.clock(), p.dateFormat)
		buf.AppendByte(' ')
	}
	buf.AppendString(text)
	buf.AppendByte('\n')

	_, err := p.sink.Write(buf.Bytes())
	return err
}

func (p *FilePrinter) Sync() error {
	return p.sink.Sync()
}

// Sink returns the sink the printer writes to.
func (p *FilePrinter) Sink() *FileSink { return p.sink }

// Close closes the underlying sink.
func (p *FilePrinter) Close() error {
	return p.sink.Close()
}

// Ensure FilePrinter implements Printer.
var _ Printer = (*FilePrinter)(nil)
