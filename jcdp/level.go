package jcdp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned when a level name is not one of the five levels.
var ErrUnknownLevel = errors.New("unknown log level")

// Level is a severity rank. ERROR is the least verbose, TRACE the most.
type Level int

// Rank 0 is the printer's "print everything" setting, so levels start at 1.
const (
	ERROR Level = iota + 1
	WARN
	INFO
	DEBUG
	TRACE
)

// levelCount is the size of a per-level table.
const levelCount = int(TRACE)

var levelNames = [...]string{"", "ERROR", "WARN", "INFO", "DEBUG", "TRACE"}

// Levels returns every level in rank order.
func Levels() []Level {
	return []Level{ERROR, WARN, INFO, DEBUG, TRACE}
}

// Rank returns the numeric rank, 1 for ERROR through 5 for TRACE.
func (l Level) Rank() int {
	return int(l)
}

// Valid reports whether l is one of the five levels.
func (l Level) Valid() bool {
	return l >= ERROR && l <= TRACE
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Enables reports whether a logger at threshold l emits level other.
func (l Level) Enables(other Level) bool {
	return l.Rank() >= other.Rank()
}

// index is the level's slot in a per-level table.
func (l Level) index() int {
	return int(l) - 1
}

// ParseLevel converts a level name, in any case, to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ERROR":
		return ERROR, nil
	case "WARN":
		return WARN, nil
	case "INFO":
		return INFO, nil
	case "DEBUG":
		return DEBUG, nil
	case "TRACE":
		return TRACE, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}
