package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devcopilot/assistant-api/internal/core/ports"
)

const embeddingTTL = 24 * time.Hour

// EmbeddingCache memoizes embedding vectors in Redis, keyed by content hash.
// Key format: emb:<sha256(text)>
type EmbeddingCache struct {
	client *redis.Client
	inner  ports.Embedder
}

// NewEmbeddingCache wraps an Embedder with a Redis read-through cache.
func NewEmbeddingCache(client *redis.Client, inner ports.Embedder) *EmbeddingCache {
	return &EmbeddingCache{client: client, inner: inner}
}

func (c *EmbeddingCache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)

	// A miss and an unreachable cache are handled the same way: ask the
	// embedder.
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var vec []float32
		if json.Unmarshal(raw, &vec) == nil && len(vec) > 0 {
			return vec, nil
		}
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(vec); err == nil {
		_ = c.client.Set(ctx, key, encoded, embeddingTTL).Err()
	}
	return vec, nil
}

func (c *EmbeddingCache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("emb:%s", hex.EncodeToString(sum[:]))
}
