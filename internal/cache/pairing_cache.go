package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/carebridge/caregiver-service/internal/models"
)

// PairingCache holds in-flight invitations keyed by hashed phone number.
// Entries expire automatically after their TTL; expiry is the only cleanup
// besides explicit consumption at verify time.
type PairingCache interface {
	// Put stores inv at key, overwriting any existing entry (last-write-wins).
	Put(key string, inv models.PendingInvitation, ttl time.Duration)
	// Get returns the entry and whether it was found and unexpired.
	Get(key string) (models.PendingInvitation, bool)
	// Delete removes the entry. No error if absent.
	Delete(key string)
}

type pairingCache struct {
	store *gocache.Cache
}

// NewPairingCache builds a PairingCache with the given default TTL. The
// backing store runs a janitor that evicts expired entries in the background.
func NewPairingCache(defaultTTL time.Duration) PairingCache {
	return &pairingCache{
		store: gocache.New(defaultTTL, defaultTTL/2),
	}
}

func (c *pairingCache) Put(key string, inv models.PendingInvitation, ttl time.Duration) {
	c.store.Set(key, inv, ttl)
}

func (c *pairingCache) Get(key string) (models.PendingInvitation, bool) {
	v, found := c.store.Get(key)
	if !found {
		return models.PendingInvitation{}, false
	}
	inv, ok := v.(models.PendingInvitation)
	if !ok {
		return models.PendingInvitation{}, false
	}
	return inv, true
}

func (c *pairingCache) Delete(key string) {
	c.store.Delete(key)
}
