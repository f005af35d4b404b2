package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DiskStore is the filesystem-backed Store. Audio files land directly in
// basePath, named by cache key, so they can be played or copied without
// going through herald at all.
type DiskStore struct {
	basePath string

	mu    sync.RWMutex
	stats Stats
}

// NewDiskStore creates a disk store rooted at basePath, creating the
// directory if needed.
func NewDiskStore(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &DiskStore{basePath: basePath}, nil
}

// Path returns the directory backing this store.
func (ds *DiskStore) Path() string {
	return ds.basePath
}

// Lookup checks for a cached entry under any known format, preferring mp3.
func (ds *DiskStore) Lookup(key string) (string, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.stats.LastAccess = time.Now()

	if !validKey(key) {
		ds.stats.Misses++
		return "", false
	}

	for _, format := range knownFormats {
		path := filepath.Join(ds.basePath, key+"."+format)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			ds.stats.Hits++
			ds.stats.BytesOut += info.Size()
			return path, true
		}
	}

	ds.stats.Misses++
	return "", false
}

// Store writes audio for key using a write-to-temp-then-rename pattern so a
// concurrent Lookup never observes a half-written file.
func (ds *DiskStore) Store(key string, audio []byte, format string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if !validFormat(format) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	path := filepath.Join(ds.basePath, key+"."+format)

	// Entries are immutable: the first write wins and repeats are no-ops.
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, nil
	}

	if err := ds.writeFile(path, audio); err != nil {
		return "", fmt.Errorf("failed to write cache entry: %w", err)
	}

	ds.mu.Lock()
	ds.stats.Writes++
	ds.mu.Unlock()

	return path, nil
}

// Stats returns a copy of the store counters.
func (ds *DiskStore) Stats() Stats {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.stats
}

// Entries returns the cache keys currently on disk, derived from the
// directory listing. Unrecognized files are ignored.
func (ds *DiskStore) Entries() ([]string, error) {
	dirEntries, err := os.ReadDir(ds.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var keys []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == "" {
			continue
		}
		key := e.Name()[:len(e.Name())-len(ext)]
		if validKey(key) && validFormat(ext[1:]) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// TotalSize returns the summed size of all cache entries in bytes.
func (ds *DiskStore) TotalSize() (int64, error) {
	dirEntries, err := os.ReadDir(ds.basePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var total int64
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		if info, err := e.Info(); err == nil {
			total += info.Size()
		}
	}
	return total, nil
}

// Clear removes every cache entry. Unrecognized files are left alone.
func (ds *DiskStore) Clear() error {
	keys, err := ds.Entries()
	if err != nil {
		return err
	}

	for _, key := range keys {
		for _, format := range knownFormats {
			path := filepath.Join(ds.basePath, key+"."+format)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
	}
	return nil
}

// writeFile writes data to a temp file in the cache directory, then renames
// it into place. Rename is atomic on the same filesystem.
func (ds *DiskStore) writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(ds.basePath, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	closeErr := tmp.Close()

	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return closeErr
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Ensure DiskStore implements Store.
var _ Store = (*DiskStore)(nil)
