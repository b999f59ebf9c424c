// Package cache keeps read-through copies of the reference data the rule
// resolver consults on every posting.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

var (
	_ port.MappingSource   = (*ReferenceCache)(nil)
	_ port.GLAccountSource = (*ReferenceCache)(nil)
	_ port.ReferenceCache  = (*ReferenceCache)(nil)
)

type mappingKey struct {
	tenantID    uuid.UUID
	productType valueobject.ProductType
	productID   uuid.UUID
}

type accountKey struct {
	tenantID uuid.UUID
	id       uuid.UUID
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// ReferenceCache serves mapping sets and GL accounts from memory, loading
// misses from the underlying sources. Concurrent misses for the same key
// share one load. A zero TTL keeps entries until they are invalidated.
type ReferenceCache struct {
	mappings port.MappingSource
	accounts port.GLAccountSource
	ttl      time.Duration
	now      func() time.Time

	mu   sync.RWMutex
	sets map[mappingKey]entry[model.MappingSet]
	gl   map[accountKey]entry[model.GLAccount]
	// gen changes on every invalidation so a load that raced with one is not stored.
	gen uint64

	group singleflight.Group
}

func New(mappings port.MappingSource, accounts port.GLAccountSource, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{
		mappings: mappings,
		accounts: accounts,
		ttl:      ttl,
		now:      time.Now,
		sets:     make(map[mappingKey]entry[model.MappingSet]),
		gl:       make(map[accountKey]entry[model.GLAccount]),
	}
}

func (c *ReferenceCache) MappingsFor(ctx context.Context, tenantID uuid.UUID, productType valueobject.ProductType, productID uuid.UUID) (model.MappingSet, error) {
	key := mappingKey{tenantID: tenantID, productType: productType, productID: productID}

	c.mu.RLock()
	e, ok := c.sets[key]
	gen := c.gen
	c.mu.RUnlock()
	if ok && c.fresh(e.expiresAt) {
		return e.value, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("m/%s/%s/%s", tenantID, productType, productID), func() (any, error) {
		set, err := c.mappings.MappingsFor(ctx, tenantID, productType, productID)
		if err != nil {
			return model.MappingSet{}, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.sets[key] = entry[model.MappingSet]{value: set, expiresAt: c.expiry()}
		}
		c.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return model.MappingSet{}, fmt.Errorf("load mappings of %s %s: %w", productType, productID, err)
	}
	return v.(model.MappingSet), nil
}

func (c *ReferenceCache) GLAccount(ctx context.Context, tenantID, id uuid.UUID) (model.GLAccount, error) {
	key := accountKey{tenantID: tenantID, id: id}

	c.mu.RLock()
	e, ok := c.gl[key]
	gen := c.gen
	c.mu.RUnlock()
	if ok && c.fresh(e.expiresAt) {
		return e.value, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("a/%s/%s", tenantID, id), func() (any, error) {
		acct, err := c.accounts.GLAccount(ctx, tenantID, id)
		if err != nil {
			return model.GLAccount{}, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.gl[key] = entry[model.GLAccount]{value: acct, expiresAt: c.expiry()}
		}
		c.mu.Unlock()
		return acct, nil
	})
	if err != nil {
		return model.GLAccount{}, err
	}
	return v.(model.GLAccount), nil
}

// InvalidateMappings drops one product's set, or every set of the product
// type when productID is nil.
func (c *ReferenceCache) InvalidateMappings(tenantID uuid.UUID, productType valueobject.ProductType, productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if productID != uuid.Nil {
		delete(c.sets, mappingKey{tenantID: tenantID, productType: productType, productID: productID})
		return
	}
	for k := range c.sets {
		if k.tenantID == tenantID && k.productType == productType {
			delete(c.sets, k)
		}
	}
}

func (c *ReferenceCache) InvalidateGLAccount(tenantID, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	delete(c.gl, accountKey{tenantID: tenantID, id: id})
}

// Len reports the number of cached mapping sets and GL accounts.
func (c *ReferenceCache) Len() (sets, accounts int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets), len(c.gl)
}

func (c *ReferenceCache) fresh(expiresAt time.Time) bool {
	return expiresAt.IsZero() || c.now().Before(expiresAt)
}

func (c *ReferenceCache) expiry() time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(c.ttl)
}
