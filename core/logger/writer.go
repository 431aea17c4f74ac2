package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

var errWriterClosed = errors.New("logger: writer closed")

type writeItem struct {
	line []byte
	ack  chan error
}

// asyncWriter copies log lines to its sinks from a single goroutine so
// handlers never block on slow disks. Flush requests travel through the
// same queue and therefore observe every earlier line.
type asyncWriter struct {
	mu     sync.RWMutex
	closed bool
	items  chan writeItem
	done   chan struct{}
	sinks  []*bufio.Writer

	errMu sync.Mutex
	err   error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	w := &asyncWriter{
		items: make(chan writeItem, 256),
		done:  make(chan struct{}),
	}
	for _, out := range writers {
		if out != nil {
			w.sinks = append(w.sinks, bufio.NewWriterSize(out, bufSize))
		}
	}
	go w.loop()
	return w
}

func (w *asyncWriter) loop() {
	defer close(w.done)
	for it := range w.items {
		if it.ack != nil {
			it.ack <- w.flush()
			continue
		}
		for _, s := range w.sinks {
			if _, err := s.Write(it.line); err != nil {
				w.setErr(err)
			}
		}
		if len(w.items) == 0 {
			w.setErr(w.flush())
		}
	}
	w.setErr(w.flush())
}

func (w *asyncWriter) flush() error {
	var errs []error
	for _, s := range w.sinks {
		if err := s.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Write queues a copy of line. It blocks only when the queue is full.
func (w *asyncWriter) Write(line []byte) error {
	if len(line) == 0 {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return errWriterClosed
	}
	w.items <- writeItem{line: append([]byte(nil), line...)}
	return nil
}

// Flush waits until every line queued before the call reached the sinks.
func (w *asyncWriter) Flush() error {
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return w.getErr()
	}
	ack := make(chan error, 1)
	w.items <- writeItem{ack: ack}
	w.mu.RUnlock()
	return <-ack
}

// Close drains the queue and reports the first write error seen.
func (w *asyncWriter) Close() error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.items)
	}
	w.mu.Unlock()
	<-w.done
	return w.getErr()
}

func (w *asyncWriter) getErr() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	return w.err
}

func (w *asyncWriter) setErr(err error) {
	if err == nil {
		return
	}
	w.errMu.Lock()
	defer w.errMu.Unlock()
	if w.err == nil {
		w.err = err
	}
}
