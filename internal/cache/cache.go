package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for completion caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CompletionKey derives a cache key from everything that determines a
// completion: the model, the full prompt text, and the attached image bytes.
// Any change to slide content or prompt wording produces a fresh key.
func CompletionKey(model, prompt string, image []byte) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	h.Write(image)
	return "deckaudit:v1:" + hex.EncodeToString(h.Sum(nil))
}
