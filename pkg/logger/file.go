package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"
)

// FileWriter appends each write to a log file, reopening it every time so the
// file can be rotated or removed underneath a running process.
type FileWriter struct {
	mutex  sync.Mutex
	fs     afero.Fs
	path   string
	report io.Writer
}

// NewFileWriter returns a FileWriter for path. Write failures are described on
// report instead of being returned.
func NewFileWriter(fs afero.Fs, path string, report io.Writer) *FileWriter {
	if report == nil {
		report = os.Stderr
	}
	return &FileWriter{fs: fs, path: path, report: report}
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if err := w.appendLine(p); err != nil {
		fmt.Fprintf(w.report, "Failed to write log: %v\n", err)
	}

	return len(p), nil
}

func (w *FileWriter) appendLine(p []byte) (err error) {
	f, err := w.fs.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(p)
	return err
}
