// Package cache stores provider responses on disk so repeated queries skip
// the network round trip.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

type cacheEntry struct {
	Key       string                 `json:"key"`
	Response  ports.ProviderResponse `json:"response"`
	CreatedAt time.Time              `json:"created_at"`
}

// FileCache stores provider responses as JSON blobs addressed by digest key.
type FileCache struct {
	dir        string
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
}

// NewFileCache returns a cache rooted at dir. Entries older than an hour or
// beyond 100 files are evicted.
func NewFileCache(dir string) *FileCache {
	return &FileCache{
		dir:        dir,
		maxEntries: 100,
		ttl:        time.Hour,
	}
}

// Get retrieves a cached response. Expired entries are removed on read.
func (c *FileCache) Get(key string) (ports.ProviderResponse, bool, error) {
	if key == "" {
		return ports.ProviderResponse{}, false, nil
	}
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ports.ProviderResponse{}, false, nil
		}
		return ports.ProviderResponse{}, false, err
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return ports.ProviderResponse{}, false, nil
	}
	if c.ttl > 0 && time.Since(entry.CreatedAt) > c.ttl {
		_ = os.Remove(c.pathFor(key))
		return ports.ProviderResponse{}, false, nil
	}
	return entry.Response, true, nil
}

// Set stores a response under the given key.
func (c *FileCache) Set(key string, resp ports.ProviderResponse) error {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(cacheEntry{Key: key, Response: resp, CreatedAt: time.Now()})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(key), data, domain.SecureFilePermissions); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

// Clear removes all cached entries.
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) evictIfNeeded() error {
	if c.maxEntries <= 0 {
		return nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) <= c.maxEntries {
		return nil
	}
	type fileInfo struct {
		name string
		mod  time.Time
	}
	var infos []fileInfo
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{name: f.Name(), mod: info.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].mod.Before(infos[j].mod) })
	for len(infos) > c.maxEntries {
		old := infos[0]
		_ = os.Remove(filepath.Join(c.dir, old.name))
		infos = infos[1:]
	}
	return nil
}

var _ ports.CacheStore = (*FileCache)(nil)
