package xmlio

import (
	"errors"
	"io"

	"github.com/rezonia/zugferd/internal/model"
)

type flusher interface {
	Flush() error
}

// WriteRestoring writes data at the current position of ws, flushes when
// the stream supports it and seeks back to the starting offset. The stream
// is never closed.
func WriteRestoring(ws io.WriteSeeker, data []byte) error {
	if ws == nil {
		return model.NewStreamAccessError("write", "stream is nil", nil)
	}
	start, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return model.NewStreamAccessError("seek", "stream is not seekable", err)
	}
	if _, err := ws.Write(data); err != nil {
		return model.NewStreamAccessError("write", "stream is not writable", err)
	}
	if f, ok := ws.(flusher); ok {
		if err := f.Flush(); err != nil {
			return model.NewStreamAccessError("flush", "flushing stream failed", err)
		}
	}
	if _, err := ws.Seek(start, io.SeekStart); err != nil {
		return model.NewStreamAccessError("seek", "restoring stream position failed", err)
	}
	return nil
}

// Buffer is an in-memory io.WriteSeeker for callers that want the encoded
// document as bytes. Writes past the end grow the buffer; seeking past the
// end and writing fills the gap with zero bytes.
type Buffer struct {
	data []byte
	pos  int
}

// Write writes p at the current position
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		if end > cap(b.data) {
			grown := make([]byte, end, 2*end)
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}
	copy(b.data[b.pos:], p)
	b.pos = end
	return len(p), nil
}

// Seek sets the position for the next Write
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.data))
	default:
		return 0, errors.New("xmlio: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("xmlio: negative position")
	}
	b.pos = int(next)
	return next, nil
}

// Bytes returns everything written so far
func (b *Buffer) Bytes() []byte { return b.data }
