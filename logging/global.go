package logging

import (
	"sync"
)

var (
	globalFactory LoggerFactory = NopFactory
	globalMu      sync.RWMutex
)

// Factory returns the process-wide logger factory.
func Factory() LoggerFactory {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalFactory
}

// SetFactory binds the process-wide logger factory. A nil factory restores
// the nop binding.
func SetFactory(factory LoggerFactory) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if factory == nil {
		factory = NopFactory
	}
	globalFactory = factory
}

// GetLogger looks up a logger from the process-wide factory.
func GetLogger(name string) (Logger, error) {
	return Factory().GetLogger(name)
}

// MustGetLogger is like GetLogger but panics on a lookup error.
func MustGetLogger(name string) Logger {
	l, err := GetLogger(name)
	if err != nil {
		panic(err)
	}
	return l
}
