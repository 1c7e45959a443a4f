package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/killallgit/scribe-api/internal/metrics"
	"github.com/killallgit/scribe-api/internal/services/translation"
)

// CachedTranslator serves repeated segments from a cache and only stores
// successful translations, so failed segments are retried on the next run
type CachedTranslator struct {
	next    translation.Translator
	cache   Cache
	ttl     time.Duration
	prefix  string
	metrics *metrics.Metrics
}

// NewCachedTranslator wraps next. The namespace should identify the model
// and target language so different configurations never share entries.
func NewCachedTranslator(next translation.Translator, c Cache, ttl time.Duration, namespace string, m *metrics.Metrics) *CachedTranslator {
	return &CachedTranslator{
		next:    next,
		cache:   c,
		ttl:     ttl,
		prefix:  "translation:" + namespace + ":",
		metrics: m,
	}
}

// Translate returns a cached translation or delegates to the wrapped translator
func (t *CachedTranslator) Translate(ctx context.Context, segment string) (string, error) {
	key := t.key(segment)

	if v, ok := t.cache.Get(ctx, key); ok {
		t.metrics.RecordCacheLookup(true)
		return string(v), nil
	}
	t.metrics.RecordCacheLookup(false)

	out, err := t.next.Translate(ctx, segment)
	if err != nil {
		return "", err
	}

	if err := t.cache.Set(ctx, key, []byte(out), t.ttl); err != nil {
		log.Printf("[WARN] Failed to cache translated segment: %v", err)
	}
	return out, nil
}

func (t *CachedTranslator) key(segment string) string {
	sum := sha256.Sum256([]byte(segment))
	return t.prefix + hex.EncodeToString(sum[:])
}
