package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	logFileName      = "sysprefs.log"
	backupTimeLayout = "20060102-150405.000"
	logFilePerm      = 0o600
	logDirPerm       = 0o755
)

// FileWriter is an io.WriteCloser that appends to sysprefs.log in dir and
// rotates it once it grows past maxSize. Rotated files are gzipped and only
// the newest maxBackups are kept.
type FileWriter struct {
	mu         sync.Mutex
	dir        string
	maxSize    int64
	maxBackups int
	compress   bool

	file *os.File
	size int64
	now  func() time.Time
}

// NewFileWriter opens (or creates) the log file in dir.
// maxSizeMB <= 0 disables rotation; maxBackups <= 0 keeps every backup.
func NewFileWriter(dir string, maxSizeMB, maxBackups int, compress bool) (*FileWriter, error) {
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	w := &FileWriter{
		dir:        dir,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
		compress:   compress,
		now:        time.Now,
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the active log file path.
func (w *FileWriter) Path() string {
	return filepath.Join(w.dir, logFileName)
}

func (w *FileWriter) open() error {
	f, err := os.OpenFile(w.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	w.file = f
	w.size = info.Size()
	return nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		if err := w.open(); err != nil {
			return 0, err
		}
	}
	if w.maxSize > 0 && w.size > 0 && w.size+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *FileWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	w.file = nil

	backup := filepath.Join(w.dir, logFileName+"."+w.now().Format(backupTimeLayout))
	if err := os.Rename(w.Path(), backup); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	if w.compress {
		// A failed gzip leaves the plain backup in place.
		if err := gzipFile(backup); err == nil {
			_ = os.Remove(backup)
		}
	}
	w.prune()
	return w.open()
}

// prune removes the oldest backups beyond maxBackups. Backup names sort
// chronologically.
func (w *FileWriter) prune() {
	if w.maxBackups <= 0 {
		return
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}
	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), logFileName+".") {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) <= w.maxBackups {
		return
	}
	slices.Sort(backups)
	for _, name := range backups[:len(backups)-w.maxBackups] {
		_ = os.Remove(filepath.Join(w.dir, name))
	}
}

func gzipFile(path string) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(path+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := gzip.NewWriter(out)
	if _, err = io.Copy(zw, in); err != nil {
		return err
	}
	return zw.Close()
}

// Close closes the active log file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
