package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IdentityCache remembers account ids that were recently confirmed to exist
// so the identity middleware does not hit the database on every request.
type IdentityCache struct {
	cache *cache.Cache
}

func NewIdentityCache(ttl time.Duration) *IdentityCache {
	// Purge expired items every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &IdentityCache{
		cache: c,
	}
}

func (r *IdentityCache) Remember(userId uuid.UUID) {
	r.cache.Set(userId.String(), true, cache.DefaultExpiration)
}

func (r *IdentityCache) Known(userId uuid.UUID) bool {
	_, found := r.cache.Get(userId.String())
	return found
}

func (r *IdentityCache) Forget(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
