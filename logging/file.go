package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileWriter appends log lines to dir/filename and rolls the file over once
// it passes maxSize, keeping at most maxFiles gzipped generations.
type FileWriter struct {
	mu       sync.Mutex
	dir      string
	filename string
	maxSize  int64
	maxFiles int
	file     *os.File
	size     int64
	seq      int
}

// NewFileWriter opens (or creates) the active log file.
func NewFileWriter(dir, filename string, maxSizeMB, maxFiles int) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}
	fw := &FileWriter{
		dir:      dir,
		filename: filename,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxFiles: maxFiles,
	}
	if err := fw.open(); err != nil {
		return nil, err
	}
	return fw, nil
}

// Path is the active file.
func (fw *FileWriter) Path() string {
	return filepath.Join(fw.dir, fw.filename)
}

func (fw *FileWriter) open() error {
	f, err := os.OpenFile(fw.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	fw.file = f
	fw.size = info.Size()
	return nil
}

func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.size > 0 && fw.size+int64(len(p)) > fw.maxSize {
		if err := fw.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := fw.file.Write(p)
	fw.size += int64(n)
	return n, err
}

// rotate runs with fw.mu held.
func (fw *FileWriter) rotate() error {
	if err := fw.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	fw.seq++
	rolled := fmt.Sprintf("%s.%s.%04d", fw.Path(), time.Now().UTC().Format("20060102-150405"), fw.seq)
	if err := os.Rename(fw.Path(), rolled); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename log file: %w", err)
	}
	if err := gzipFile(rolled); err == nil {
		_ = os.Remove(rolled)
	}
	fw.prune()
	return fw.open()
}

func (fw *FileWriter) prune() {
	matches, err := filepath.Glob(fw.Path() + ".*")
	if err != nil || len(matches) <= fw.maxFiles {
		return
	}
	// Generations carry a sortable UTC stamp.
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-fw.maxFiles] {
		_ = os.Remove(path)
	}
}

// Close closes the active file.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.file == nil {
		return nil
	}
	err := fw.file.Close()
	fw.file = nil
	return err
}

func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		os.Remove(path + ".gz")
		return err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
