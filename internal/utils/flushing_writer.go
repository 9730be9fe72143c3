package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter is the status-line destination handed to the messenger.
// Each write is serialized and pushed through a buffered destination at once, so a status line
// reaches the terminal before a following fatal line ends the process.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps writer once. A nil writer stays nil.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write writes one rendered status line and flushes the destination when it buffers.
func (flushingWriter *FlushingWriter) Write(statusLine []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(statusLine)
	if writeError != nil {
		return bytesWritten, writeError
	}

	bufferedDestination, buffers := flushingWriter.writer.(flusher)
	if !buffers {
		return bytesWritten, nil
	}
	return bytesWritten, bufferedDestination.Flush()
}

// Unwrap exposes the destination so color detection can inspect the underlying terminal.
func (flushingWriter *FlushingWriter) Unwrap() io.Writer {
	if flushingWriter == nil {
		return nil
	}
	return flushingWriter.writer
}
