package printer

import (
	"errors"
	"io"
	"syscall"

	"go.uber.org/zap/zapcore"
)

// consoleSyncer is a WriteSyncer for terminals and pipes.
type consoleSyncer struct {
	zapcore.WriteSyncer
}

// NewConsoleSyncer wraps w for console output. fsync on a terminal or a
// pipe fails with EINVAL or ENOTTY; Sync reports those as success.
func NewConsoleSyncer(w io.Writer) zapcore.WriteSyncer {
	return consoleSyncer{WriteSyncer: zapcore.AddSync(w)}
}

func (s consoleSyncer) Sync() error {
	err := s.WriteSyncer.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
