package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/tools/imports"
)

// Writer writes the generated units to the target directory, skipping
// the unchanged ones when a cache is attached.
type Writer struct {
	dir   string
	cache *Cache

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	FilesUnchanged int
	TotalBytes     int64
	FormatTime     time.Duration
	WriteTime      time.Duration
}

// NewWriter creates a writer for the given target directory.
func NewWriter(dir string, cache *Cache) *Writer {
	return &Writer{dir: dir, cache: cache}
}

// Metrics returns a snapshot of the generation metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteUnit writes a generated unit to name, relative to the target.
func (w *Writer) WriteUnit(name string, content []byte) error {
	if w.cache != nil && w.cache.Unchanged(name, content) {
		w.mu.Lock()
		w.metrics.FilesUnchanged++
		w.mu.Unlock()
		return nil
	}
	start := time.Now()
	fullPath := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		w.forget(name)
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		w.forget(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(content))
	w.metrics.WriteTime += time.Since(start)
	w.mu.Unlock()
	return nil
}

// WriteGo formats a generated Go file with goimports before writing it.
func (w *Writer) WriteGo(name string, content []byte) error {
	start := time.Now()
	fullPath := filepath.Join(w.dir, name)
	formatted, err := imports.Process(fullPath, content, nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, content, 0o644)
		return fmt.Errorf("format %s: %w (unformatted written to %s)", name, err, debugPath)
	}
	w.mu.Lock()
	w.metrics.FormatTime += time.Since(start)
	w.mu.Unlock()
	return w.WriteUnit(name, formatted)
}

// Remove deletes a unit written by a previous run.
func (w *Writer) Remove(name string) error {
	if err := os.Remove(filepath.Join(w.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (w *Writer) forget(name string) {
	if w.cache != nil {
		w.cache.Forget(name)
	}
}
