package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
)

type slotsCacheEntry struct {
	Slots    []domain.TimeSlot
	StoredAt time.Time
}

// CacheAdapter keeps generated slot sequences in an LRU cache with a short
// TTL. Entries are advisory only; booking validation never consults them.
type CacheAdapter struct {
	cache  *lru.Cache[string, *slotsCacheEntry]
	ttl    time.Duration
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	slotsCache, err := lru.New[string, *slotsCacheEntry](cfg.Cache.SlotsSize)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SlotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  slotsCache,
		ttl:    time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetSlots(ctx context.Context, key out.SlotCacheKey) ([]domain.TimeSlot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(key.String())
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"key": key.String(),
		})
		return nil, false
	}

	if c.ttl > 0 && time.Since(entry.StoredAt) > c.ttl {
		c.logger.Debug("cache.get.expired", out.LogFields{
			"key": key.String(),
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"key":        key.String(),
		"slotsCount": len(entry.Slots),
	})
	return entry.Slots, true
}

func (c *CacheAdapter) StoreSlots(ctx context.Context, key out.SlotCacheKey, slots []domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.store", out.LogFields{
		"key":        key.String(),
		"slotsCount": len(slots),
	})

	c.cache.Add(key.String(), &slotsCacheEntry{
		Slots:    slots,
		StoredAt: time.Now(),
	})
}

// InvalidateEmployee drops every cached sequence for one employee. Keys are
// prefixed with the employee identifier.
func (c *CacheAdapter) InvalidateEmployee(ctx context.Context, employeeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, employeeID+"|") {
			c.cache.Remove(key)
			removed++
		}
	}

	c.logger.Debug("cache.invalidate.employee", out.LogFields{
		"employeeId": employeeID,
		"removed":    removed,
	})
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()

	c.logger.Debug("cache.invalidate.all", out.LogFields{})
}
