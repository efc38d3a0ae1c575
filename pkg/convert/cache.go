package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the digest cache.
const DefaultCacheSize = 1024

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestCache remembers the last converted digest per key so unchanged
// content can be skipped. Least recently used keys are evicted.
type DigestCache struct {
	cache *lru.Cache[string, string]
}

// NewDigestCache creates a cache holding up to size keys; size <= 0 uses
// DefaultCacheSize.
func NewDigestCache(size int) (*DigestCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create digest cache: %w", err)
	}
	return &DigestCache{cache: cache}, nil
}

// Unchanged reports whether key was last stored with digest.
func (d *DigestCache) Unchanged(key, digest string) bool {
	last, ok := d.cache.Get(key)
	return ok && last == digest
}

// Store records digest for key.
func (d *DigestCache) Store(key, digest string) {
	d.cache.Add(key, digest)
}

// Forget drops key.
func (d *DigestCache) Forget(key string) {
	d.cache.Remove(key)
}

// Len returns the number of cached keys.
func (d *DigestCache) Len() int {
	return d.cache.Len()
}
