package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CSVLog appends rows to an append-only CSV file, writing the header only
// when the file does not yet exist. The existence check and the append run
// under a per-log mutex so concurrent writers cannot race a duplicate or
// garbled header into the file. Rows are never mutated or deleted.
type CSVLog struct {
	mu     sync.Mutex
	path   string
	header []string
}

func NewCSVLog(path string, header []string) *CSVLog {
	return &CSVLog{path: path, header: header}
}

func (l *CSVLog) Path() string { return l.path }

func (l *CSVLog) Append(row []string) error {
	if len(row) != len(l.header) {
		return fmt.Errorf("row has %d fields, header has %d", len(row), len(l.header))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(l.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		writeHeader = true
		if dir := filepath.Dir(l.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(l.header); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
