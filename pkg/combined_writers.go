package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans out every write to all of its writers,
// used to send logs both to stdout and the rotated log file.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer{}, writers...),
	}
}

// Write returns the total number of bytes written across all writers,
// and the combined errors of the ones that failed.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
