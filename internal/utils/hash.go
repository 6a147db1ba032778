package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher computes keyed HMAC-SHA256 digests. It is safe for concurrent use:
// hash instances are reused through a pool that belongs to the Hasher.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey.
//
// Example usage:
//
//	h := utils.NewHasher(serviceRoleKey)
//	key := "verify:" + h.HashString(token)
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Hash returns the HMAC-SHA256 digest of data.
func (h *Hasher) Hash(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// HashString returns the hex-encoded HMAC-SHA256 digest of data.
func (h *Hasher) HashString(data string) string {
	return hex.EncodeToString(h.Hash([]byte(data)))
}
