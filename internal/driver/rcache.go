package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the cached payload changes.
const resultCacheSchemaVersion uint16 = 1

// Digest keys one (content, severity policy) pair.
type Digest [32]byte

// ResultKey derives the cache key. The severity policy is part of the
// key because the same bytes can pass tolerant and fail strict.
func ResultKey(contentHash [32]byte, strict bool) Digest {
	h := sha256.New()
	h.Write(contentHash[:])
	if strict {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// ResultCache persists validation outcomes keyed by Digest.
// Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema  uint16
	Outcome Outcome
}

// OpenResultCache initializes and returns a cache at the standard
// XDG location for the given application name.
func OpenResultCache(app string) (*ResultCache, error) {
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
	return &ResultCache{dir: dir}, nil
}

// OpenResultCacheAt opens a cache rooted at an explicit directory.
func OpenResultCacheAt(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "runs" для удобства читаемости/очистки.
	return filepath.Join(c.dir, "runs", hexKey+".mp")
}

// Put serializes and writes an outcome to the cache atomically.
func (c *ResultCache) Put(key Digest, outcome *Outcome) error {
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
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{Schema: resultCacheSchemaVersion, Outcome: *outcome}); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an outcome from the cache. A missing entry or a schema
// mismatch is a clean miss, not an error.
func (c *ResultCache) Get(key Digest, out *Outcome) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return false, err
	}
	if payload.Schema != resultCacheSchemaVersion {
		return false, nil
	}
	*out = payload.Outcome
	return true, nil
}
