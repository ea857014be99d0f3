package jcdp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creasty/defaults"

	"github.com/leeforge/colorlog/json"
)

// Property keys.
const (
	KeyPrefix           = "jcdp."
	KeyLevel            = "jcdp.level"
	KeyTimestampEnabled = "jcdp.timestamp.enabled"
	KeyFileEnabled      = "jcdp.file.enabled"
	KeyFilePath         = "jcdp.file.path"
	KeyFileLevel        = "jcdp.file.level"
)

// ForegroundKey returns the foreground color key for level, e.g. "jcdp.ERROR.foreground".
func ForegroundKey(level Level) string {
	return KeyPrefix + level.String() + ".foreground"
}

// BackgroundKey returns the background color key for level, e.g. "jcdp.ERROR.background".
func BackgroundKey(level Level) string {
	return KeyPrefix + level.String() + ".background"
}

// Properties is a key/value configuration source.
type Properties interface {
	Get(key string) (string, bool)
}

// PropertyMap is a Properties backed by a plain map.
type PropertyMap map[string]string

// Get implements Properties.
func (m PropertyMap) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ColorConfig names a foreground/background pair from the printer palette.
type ColorConfig struct {
	Foreground string `default:"WHITE" json:"foreground"`
	Background string `default:"BLACK" json:"background"`
}

// LevelColors holds one color pair per level.
type LevelColors struct {
	Error ColorConfig `json:"ERROR"`
	Warn  ColorConfig `json:"WARN"`
	Info  ColorConfig `json:"INFO"`
	Debug ColorConfig `json:"DEBUG"`
	Trace ColorConfig `json:"TRACE"`
}

// For returns the pair for level.
func (c *LevelColors) For(level Level) *ColorConfig {
	switch level {
	case ERROR:
		return &c.Error
	case WARN:
		return &c.Warn
	case INFO:
		return &c.Info
	case DEBUG:
		return &c.Debug
	default:
		return &c.Trace
	}
}

// FileConfig controls mirroring to a file.
type FileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `default:"tmp/test.txt" json:"path"`
	Level   string `default:"INFO" json:"level"`
}

// Config is the resolved jcdp.* configuration for one lookup.
// Level names are kept as written and parsed when an adapter is built.
type Config struct {
	Level            string      `default:"INFO" json:"level"`
	TimestampEnabled bool        `json:"timestampEnabled"`
	File             FileConfig  `json:"file"`
	Colors           LevelColors `json:"colors"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// applyDefaults fills empty fields from the default tags.
func (c *Config) applyDefaults() {
	// Set only fails for non-pointer input.
	_ = defaults.Set(c)
}

// LoadConfig reads the jcdp.* keys from props on top of the defaults.
func LoadConfig(props Properties) Config {
	c := DefaultConfig()
	if props == nil {
		return c
	}

	if v, ok := props.Get(KeyLevel); ok {
		c.Level = v
	}
	if v, ok := props.Get(KeyTimestampEnabled); ok {
		c.TimestampEnabled = parseBool(v)
	}
	if v, ok := props.Get(KeyFileEnabled); ok {
		c.File.Enabled = parseBool(v)
	}
	if v, ok := props.Get(KeyFilePath); ok {
		c.File.Path = v
	}
	if v, ok := props.Get(KeyFileLevel); ok {
		c.File.Level = v
	}
	for _, level := range Levels() {
		pair := c.Colors.For(level)
		if v, ok := props.Get(ForegroundKey(level)); ok {
			pair.Foreground = v
		}
		if v, ok := props.Get(BackgroundKey(level)); ok {
			pair.Background = v
		}
	}

	c.applyDefaults()
	return c
}

// ParseConfig decodes a JSON document on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse jcdp config: %w", err)
	}
	c.applyDefaults()
	return c, nil
}

// ReadConfig is ParseConfig for a stream. Unknown fields are rejected.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("read jcdp config: %w", err)
	}
	c.applyDefaults()
	return c, nil
}

// colorPatch and configPatch mirror ColorConfig and Config with every
// value optional, so a decoded document tells which keys it sets.
type colorPatch struct {
	Foreground *string `json:"foreground"`
	Background *string `json:"background"`
}

type configPatch struct {
	Level            *string `json:"level"`
	TimestampEnabled *bool   `json:"timestampEnabled"`
	File             struct {
		Enabled *bool   `json:"enabled"`
		Path    *string `json:"path"`
		Level   *string `json:"level"`
	} `json:"file"`
	Colors struct {
		Error colorPatch `json:"ERROR"`
		Warn  colorPatch `json:"WARN"`
		Info  colorPatch `json:"INFO"`
		Debug colorPatch `json:"DEBUG"`
		Trace colorPatch `json:"TRACE"`
	} `json:"colors"`
}

func (p *configPatch) colors(level Level) colorPatch {
	switch level {
	case ERROR:
		return p.Colors.Error
	case WARN:
		return p.Colors.Warn
	case INFO:
		return p.Colors.Info
	case DEBUG:
		return p.Colors.Debug
	default:
		return p.Colors.Trace
	}
}

// ReadProperties decodes a JSON document in the ReadConfig layout and
// returns only the jcdp.* keys it sets. Unknown fields are rejected.
func ReadProperties(r io.Reader) (PropertyMap, error) {
	var p configPatch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("read jcdp config: %w", err)
	}

	m := PropertyMap{}
	setString := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			m[key] = strconv.FormatBool(*v)
		}
	}

	setString(KeyLevel, p.Level)
	setBool(KeyTimestampEnabled, p.TimestampEnabled)
	setBool(KeyFileEnabled, p.File.Enabled)
	setString(KeyFilePath, p.File.Path)
	setString(KeyFileLevel, p.File.Level)
	for _, level := range Levels() {
		pair := p.colors(level)
		setString(ForegroundKey(level), pair.Foreground)
		setString(BackgroundKey(level), pair.Background)
	}
	return m, nil
}

// Properties flattens c back into jcdp.* keys.
func (c Config) Properties() PropertyMap {
	m := PropertyMap{
		KeyLevel:            c.Level,
		KeyTimestampEnabled: strconv.FormatBool(c.TimestampEnabled),
		KeyFileEnabled:      strconv.FormatBool(c.File.Enabled),
		KeyFilePath:         c.File.Path,
		KeyFileLevel:        c.File.Level,
	}
	for _, level := range Levels() {
		pair := c.Colors.For(level)
		m[ForegroundKey(level)] = pair.Foreground
		m[BackgroundKey(level)] = pair.Background
	}
	return m
}

// ConsoleLevel parses the global threshold.
func (c Config) ConsoleLevel() (Level, error) {
	l, err := ParseLevel(c.Level)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLevel, err)
	}
	return l, nil
}

// FileLevel parses the file threshold.
func (c Config) FileLevel() (Level, error) {
	l, err := ParseLevel(c.File.Level)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", KeyFileLevel, err)
	}
	return l, nil
}

// parseBool is true only for "true" in any case.
func parseBool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}
