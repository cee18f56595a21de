package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"mirwalk/internal/explore"
)

// Bump when the cached payload format changes.
const cacheSchemaVersion uint16 = 1

// Digest is the content hash used as the cache key.
type Digest [sha256.Size]byte

// HashBytes hashes a module dump's raw bytes into a cache key.
func HashBytes(data []byte) Digest {
	return sha256.Sum256(data)
}

// DiskCache stores analysis results keyed by the dump's content hash.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the serialized form of one cached analysis.
type CachePayload struct {
	Schema uint16
	Saved  time.Time
	Data   *explore.Module
}

// OpenDiskCache initializes the cache under the standard user cache
// location ($XDG_CACHE_HOME or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "dumps", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload. The write goes through a temp file
// and a rename so readers never observe a partial entry.
func (c *DiskCache) Put(key Digest, data *explore.Module) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&CachePayload{
		Schema: cacheSchemaVersion,
		Saved:  time.Now(),
		Data:   data,
	}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a cached analysis. Entries with a stale schema count as
// misses, not errors.
func (c *DiskCache) Get(key Digest) (*explore.Module, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion || payload.Data == nil {
		return nil, false, nil
	}
	return payload.Data, true, nil
}

// DropAll removes every cache entry, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
