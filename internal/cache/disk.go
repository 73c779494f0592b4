package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Disk is a persistent cache surviving process restarts, so repeat
// assessments of the same recording across sessions stay cheap.
// Entries are sharded into subdirectories by key suffix to keep
// directory listings manageable for large batch runs.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates a disk cache rooted at dir.
func NewDisk(dir string, ttl time.Duration) *Disk {
	return &Disk{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value, removing it if expired.
func (c *Disk) Get(key string) ([]byte, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}
	return entry.Data, true
}

// Set stores a value with the given TTL; zero means the default.
func (c *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := diskEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Delete removes a value from the disk cache.
func (c *Disk) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes all cached files.
func (c *Disk) Clear() error {
	return os.RemoveAll(c.dir)
}

// path maps a cache key to a sharded file path. Keys contain colons,
// which some filesystems dislike, so they are flattened first.
func (c *Disk) path(key string) string {
	flat := strings.ReplaceAll(key, ":", "_")
	shard := "00"
	if len(flat) >= 2 {
		shard = flat[len(flat)-2:]
	}
	return filepath.Join(c.dir, shard, flat+".cache")
}
