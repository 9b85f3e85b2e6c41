package log

import (
	"errors"
	"fmt"
	"io"
)

var (
	errWriterAlreadyLoaded = errors.New("io.Writer already loaded")
	errShortWrite          = errors.New("short write")
)

// Add appends writer, each writer may only be added once
func (mw *multiWriter) Add(writer io.Writer) error {
	if writer == nil {
		return errOutputWriterIsNil
	}
	mw.mu.Lock()
	defer mw.mu.Unlock()
	for i := range mw.writers {
		if mw.writers[i] == writer {
			return errWriterAlreadyLoaded
		}
	}
	mw.writers = append(mw.writers, writer)
	return nil
}

// Write writes p to every writer. A failing writer does not stop the others,
// their errors are joined.
func (mw *multiWriter) Write(p []byte) (int, error) {
	mw.mu.RLock()
	defer mw.mu.RUnlock()
	var errs error
	for i := range mw.writers {
		n, err := mw.writers[i].Write(p)
		switch {
		case err != nil:
			errs = errors.Join(errs, fmt.Errorf("writer %d: %w", i, err))
		case n != len(p):
			errs = errors.Join(errs, fmt.Errorf("writer %d: %w %d of %d bytes", i, errShortWrite, n, len(p)))
		}
	}
	if errs != nil {
		return 0, errs
	}
	return len(p), nil
}

// MultiWriter returns a multiWriter fanning out to writers
func MultiWriter(writers ...io.Writer) (*multiWriter, error) {
	mw := &multiWriter{writers: make([]io.Writer, 0, len(writers))}
	for i := range writers {
		if err := mw.Add(writers[i]); err != nil {
			return nil, err
		}
	}
	return mw, nil
}
