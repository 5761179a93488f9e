package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

var errWriterClosed = errors.New("logger: writer closed")

type sink struct {
	buf *bufio.Writer
	err error
}

// asyncWriter fans log lines out to its sinks from one goroutine. Sinks are
// flushed whenever the queue drains. A sink that fails is disabled and the
// others keep receiving lines; Write fails only once every sink has failed.
type asyncWriter struct {
	lines   chan []byte
	flushes chan chan error
	done    chan struct{}

	closeMu sync.RWMutex
	closed  bool

	mu    sync.Mutex
	sinks []*sink
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	w := &asyncWriter{
		lines:   make(chan []byte, 256),
		flushes: make(chan chan error),
		done:    make(chan struct{}),
	}
	for _, out := range writers {
		if out != nil {
			w.sinks = append(w.sinks, &sink{buf: bufio.NewWriterSize(out, bufSize)})
		}
	}
	go w.loop()
	return w
}

func (w *asyncWriter) loop() {
	defer close(w.done)
	for {
		select {
		case line, ok := <-w.lines:
			if !ok {
				_ = w.flush()
				return
			}
			w.write(line)
			if len(w.lines) == 0 {
				_ = w.flush()
			}
		case ack := <-w.flushes:
			ack <- w.flush()
		}
	}
}

// Write copies p and queues it. It blocks while the queue is full.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.failed(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	line := append([]byte(nil), p...)

	w.closeMu.RLock()
	defer w.closeMu.RUnlock()
	if w.closed {
		return errWriterClosed
	}
	w.lines <- line
	return nil
}

// Flush waits until everything queued so far reached the sinks.
func (w *asyncWriter) Flush() error {
	ack := make(chan error, 1)
	select {
	case w.flushes <- ack:
		return <-ack
	case <-w.done:
		return w.firstErr()
	}
}

// Close drains the queue and returns the first sink error.
func (w *asyncWriter) Close() error {
	w.closeMu.Lock()
	if !w.closed {
		w.closed = true
		close(w.lines)
	}
	w.closeMu.Unlock()
	<-w.done
	return w.firstErr()
}

func (w *asyncWriter) write(line []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.sinks {
		if s.err != nil {
			continue
		}
		if _, err := s.buf.Write(line); err != nil {
			s.err = err
		}
	}
}

func (w *asyncWriter) flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, s := range w.sinks {
		if s.err != nil {
			continue
		}
		if err := s.buf.Flush(); err != nil {
			s.err = err
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) firstErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.sinks {
		if s.err != nil {
			return s.err
		}
	}
	return nil
}

// failed returns an error once no sink is usable.
func (w *asyncWriter) failed() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.sinks) == 0 {
		return nil
	}
	for _, s := range w.sinks {
		if s.err == nil {
			return nil
		}
	}
	return w.sinks[0].err
}
