package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// CacheFile is the name of the fingerprint cache in the target directory.
const CacheFile = ".reflector.cache"

// cacheVersion is bumped whenever the layout of the generated units changes
// in a way that requires rewriting every file.
const cacheVersion = 1

// Cache holds the fingerprints of the files written by a previous run.
// It is safe for concurrent use.
type Cache struct {
	path string

	mu      sync.Mutex
	prev    map[string]string
	current map[string]string
}

// cacheDocument is the msgpack form of the cache.
type cacheDocument struct {
	Version int               `msgpack:"version"`
	Files   map[string]string `msgpack:"files"`
}

// LoadCache reads the cache of the given target directory. A missing,
// unreadable or outdated cache yields an empty one.
func LoadCache(dir string) (*Cache, error) {
	c := &Cache{
		path:    filepath.Join(dir, CacheFile),
		prev:    make(map[string]string),
		current: make(map[string]string),
	}
	buf, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	var doc cacheDocument
	if err := msgpack.Unmarshal(buf, &doc); err != nil || doc.Version != cacheVersion {
		return c, nil
	}
	if doc.Files != nil {
		c.prev = doc.Files
	}
	return c, nil
}

// Fingerprint returns the hex encoded sha256 of content.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Unchanged records the fingerprint of name and reports if it matches the
// previous run and the file still exists on disk.
func (c *Cache) Unchanged(name string, content []byte) bool {
	fp := Fingerprint(content)
	c.mu.Lock()
	prev, ok := c.prev[name]
	c.current[name] = fp
	c.mu.Unlock()
	if !ok || prev != fp {
		return false
	}
	_, err := os.Stat(filepath.Join(filepath.Dir(c.path), name))
	return err == nil
}

// Forget drops name from the current run, e.g. after a failed write.
func (c *Cache) Forget(name string) {
	c.mu.Lock()
	delete(c.current, name)
	c.mu.Unlock()
}

// Stale returns the files of the previous run that were not produced by
// the current one, sorted by name.
func (c *Cache) Stale() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var stale []string
	for name := range c.prev {
		if _, ok := c.current[name]; !ok {
			stale = append(stale, name)
		}
	}
	sort.Strings(stale)
	return stale
}

// Len returns the number of files recorded by the current run.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.current)
}

// Save persists the fingerprints of the current run.
func (c *Cache) Save() error {
	c.mu.Lock()
	buf, err := msgpack.Marshal(&cacheDocument{Version: cacheVersion, Files: c.current})
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(c.path, buf, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
