package security

import (
	"context"
	"os"
	"time"

	"github.com/flexprice/azpay/internal/cache"
	ierr "github.com/flexprice/azpay/internal/errors"
)

// KeySource yields signing key material at call time
type KeySource interface {
	Key(ctx context.Context) ([]byte, error)
}

// FileKey reads the key file on every call. The bytes are used verbatim,
// trailing newlines included, because they are part of the signed input.
type FileKey struct {
	Path string
}

func (k FileKey) Key(_ context.Context) ([]byte, error) {
	if k.Path == "" {
		return nil, ierr.NewError("signing key file not configured").
			WithHint("Configure the gateway key file path").
			Mark(ierr.ErrConfiguration)
	}

	key, err := os.ReadFile(k.Path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Signing key file could not be read").
			WithReportableDetails(map[string]any{"path": k.Path}).
			Mark(ierr.ErrConfiguration)
	}
	if len(key) == 0 {
		return nil, ierr.NewError("signing key file is empty").
			WithHint("Signing key file is empty").
			WithReportableDetails(map[string]any{"path": k.Path}).
			Mark(ierr.ErrConfiguration)
	}
	return key, nil
}

// StaticKey is key material already held in memory
type StaticKey []byte

func (k StaticKey) Key(_ context.Context) ([]byte, error) {
	if len(k) == 0 {
		return nil, ierr.NewError("signing key not configured").
			WithHint("Configure the gateway signing key").
			Mark(ierr.ErrConfiguration)
	}
	return append([]byte(nil), k...), nil
}

// CachedKey memoises another source for ttl. Only used when caching is asked for
// explicitly, the default is to re-read key material per call.
type CachedKey struct {
	source KeySource
	cache  cache.Cache
	key    string
	ttl    time.Duration
}

// NewCachedKey caches source under name for ttl
func NewCachedKey(source KeySource, name string, ttl time.Duration) *CachedKey {
	return &CachedKey{
		source: source,
		cache:  cache.NewInMemoryCache(ttl),
		key:    cache.GenerateKey(cache.PrefixSigningKey, name),
		ttl:    ttl,
	}
}

func (k *CachedKey) Key(ctx context.Context) ([]byte, error) {
	if v, ok := k.cache.Get(ctx, k.key); ok {
		if b, ok := v.([]byte); ok {
			return append([]byte(nil), b...), nil
		}
	}

	key, err := k.source.Key(ctx)
	if err != nil {
		return nil, err
	}
	k.cache.Set(ctx, k.key, append([]byte(nil), key...), k.ttl)
	return key, nil
}

// Invalidate drops the cached key so the next call reads the source again
func (k *CachedKey) Invalidate(ctx context.Context) {
	k.cache.Delete(ctx, k.key)
}
