package jcdp

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/leeforge/colorlog/logging"
	"github.com/leeforge/colorlog/printer"
)

// Fallback colors used when a configured name is not in the palette.
const (
	FallbackForeground = printer.FWhite
	FallbackBackground = printer.BBlack
)

// Factory builds a fresh Adapter on every lookup from the current properties.
type Factory struct {
	props       Properties
	output      zapcore.WriteSyncer
	errorOutput zapcore.WriteSyncer
	clock       func() time.Time

	mu    sync.Mutex
	sinks map[string]*printer.FileSink
}

// Option configures a Factory.
type Option func(*Factory)

// WithOutput sends console output to ws instead of stdout.
func WithOutput(ws zapcore.WriteSyncer) Option {
	return func(f *Factory) {
		f.output = ws
	}
}

// WithErrorOutput reports failed writes to ws instead of stderr.
func WithErrorOutput(ws zapcore.WriteSyncer) Option {
	return func(f *Factory) {
		f.errorOutput = ws
	}
}

// WithClock sets the time source for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(f *Factory) {
		f.clock = clock
	}
}

// NewFactory returns a factory reading props on every lookup.
func NewFactory(props Properties, opts ...Option) *Factory {
	f := &Factory{
		props: props,
		sinks: make(map[string]*printer.FileSink),
	}
	for _, opt := range opts {
		opt(f)
	}
	// One lock shared by every printer writing to the same output.
	if f.output != nil {
		f.output = zapcore.Lock(f.output)
	}
	return f
}

// GetLogger implements logging.LoggerFactory.
func (f *Factory) GetLogger(name string) (logging.Logger, error) {
	a, err := f.Adapter(name)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Adapter is GetLogger with the concrete return type.
func (f *Factory) Adapter(name string) (*Adapter, error) {
	return f.Build(name, LoadConfig(f.props))
}

// Build returns an adapter for an explicit configuration.
// The logger name is recorded but does not affect the configuration.
func (f *Factory) Build(name string, cfg Config) (*Adapter, error) {
	cfg.applyDefaults()

	threshold, err := cfg.ConsoleLevel()
	if err != nil {
		return nil, err
	}

	printers := make([]printer.Printer, levelCount)
	for _, level := range Levels() {
		fg, bg := ResolveColors(*cfg.Colors.For(level))
		p := printer.NewBuilder(threshold.Rank(), cfg.TimestampEnabled).
			Foreground(fg).
			Background(bg).
			Output(f.output).
			Clock(f.clock).
			Build()
		// Re-apply the threshold after construction.
		p.SetLevel(threshold.Rank())
		printers[level.index()] = p
	}

	adapter := NewAdapter(name, threshold, cfg.TimestampEnabled, printers...)
	adapter.SetErrorOutput(f.errorOutput)

	if cfg.File.Enabled {
		fileLevel, err := cfg.FileLevel()
		if err != nil {
			return nil, err
		}
		sink, err := f.sink(cfg.File.Path)
		if err != nil {
			return nil, err
		}
		fp, err := printer.NewFileBuilder(cfg.File.Path).
			Sink(sink).
			Level(fileLevel.Rank()).
			Timestamping(cfg.TimestampEnabled).
			Clock(f.clock).
			Build()
		if err != nil {
			return nil, err
		}
		adapter.SetFilePrinter(fp)
	}

	return adapter, nil
}

// sink returns the shared sink for path, opening it on first use.
func (f *Factory) sink(path string) (*printer.FileSink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.sinks[path]; ok {
		return s, nil
	}
	s, err := printer.OpenFileSink(path, 100, 10, 7, false)
	if err != nil {
		return nil, err
	}
	f.sinks[path] = s
	return s, nil
}

// Close closes every file opened by the factory's adapters.
// Adapters that write afterwards reopen their file.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var lastErr error
	for path, s := range f.sinks {
		if err := s.Close(); err != nil {
			lastErr = err
		}
		delete(f.sinks, path)
	}
	return lastErr
}

// ResolveColors looks up a configured pair in the palette. If either name
// is unknown the whole pair falls back to white on black.
func ResolveColors(c ColorConfig) (printer.FColor, printer.BColor) {
	fg, fgOK := printer.ParseFColor(c.Foreground)
	bg, bgOK := printer.ParseBColor(c.Background)
	if !fgOK || !bgOK {
		return FallbackForeground, FallbackBackground
	}
	return fg, bg
}

// Ensure Factory implements logging.LoggerFactory.
var _ logging.LoggerFactory = (*Factory)(nil)
