package utils

import (
	"io"
	"sync"
)

// Flusher is implemented by buffered writers such as bufio.Writer.
type Flusher interface {
	Flush() error
}

// FlushingWriter serializes writes to an underlying writer and flushes it after each write when it buffers.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps writer. A nil writer yields io.Discard; an existing FlushingWriter is returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	switch typedWriter := writer.(type) {
	case nil:
		return io.Discard
	case *FlushingWriter:
		return typedWriter
	default:
		return &FlushingWriter{writer: writer}
	}
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	if flusher, buffered := flushingWriter.writer.(Flusher); buffered {
		return bytesWritten, flusher.Flush()
	}
	return bytesWritten, nil
}
