package jcdp

import (
	"errors"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
	}{
		{"ERROR", ERROR},
		{"error", ERROR},
		{"Warn", WARN},
		{"WARN", WARN},
		{"info", INFO},
		{"INFO", INFO},
		{"dEbUg", DEBUG},
		{"trace", TRACE},
		{" TRACE ", TRACE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if err != nil {
				t.Fatalf("ParseLevel(%q) error: %v", tt.name, err)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestParseLevelUnknown(t *testing.T) {
	for _, name := range []string{"", "fatal", "WARNING", "1", "inf"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLevel(name)
			if !errors.Is(err, ErrUnknownLevel) {
				t.Errorf("ParseLevel(%q) error = %v, want ErrUnknownLevel", name, err)
			}
		})
	}
}

func TestLevelRanks(t *testing.T) {
	for i, l := range Levels() {
		if l.Rank() != i+1 {
			t.Errorf("%v.Rank() = %d, want %d", l, l.Rank(), i+1)
		}
		if l.index() != i {
			t.Errorf("%v.index() = %d, want %d", l, l.index(), i)
		}
		if !l.Valid() {
			t.Errorf("%v should be valid", l)
		}
	}
	if Level(0).Valid() || Level(6).Valid() {
		t.Error("out of range levels should be invalid")
	}
	if got := Level(9).String(); got != "Level(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestLevelEnables(t *testing.T) {
	for _, threshold := range Levels() {
		for _, l := range Levels() {
			want := threshold.Rank() >= l.Rank()
			if got := threshold.Enables(l); got != want {
				t.Errorf("%v.Enables(%v) = %v, want %v", threshold, l, got, want)
			}
		}
	}

	if !WARN.Enables(ERROR) || !WARN.Enables(WARN) || WARN.Enables(INFO) {
		t.Error("WARN should enable ERROR and WARN only")
	}
}
