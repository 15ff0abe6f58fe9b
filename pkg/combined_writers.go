package pkg

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// CombinedWriter writes every chunk to all of its writers, e.g. stdout and a rotating
// log file. A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer

	mu      sync.Mutex
	lastErr error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write reports len(p) as long as at least one writer took the whole chunk; the
// errors of the others are combined and returned alongside.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		errs      error
		succeeded int
	)
	for _, w := range cw.Writers {
		written, err := w.Write(p)
		if err == nil && written < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		succeeded++
	}

	cw.mu.Lock()
	cw.lastErr = errs
	cw.mu.Unlock()

	if succeeded == 0 && len(cw.Writers) > 0 {
		return 0, errs
	}
	return len(p), errs
}

// LastErr returns the combined error of the most recent Write, if any.
func (cw *CombinedWriter) LastErr() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.lastErr
}
