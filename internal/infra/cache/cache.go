// Package cache кэш доступности в памяти процесса с TTL
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// entry значение вместе с диапазоном дат, который оно покрывает
type entry struct {
	from  time.Time
	to    time.Time
	value any
}

// Cache кэш с TTL и инвалидацией по дате
type Cache struct {
	store *gocache.Cache
}

// New создает кэш. cleanupInterval задает период удаления просроченных записей
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get возвращает значение по ключу
func (c *Cache) Get(_ context.Context, key string) (any, bool, error) {
	raw, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	e, ok := raw.(entry)
	if !ok {
		c.store.Delete(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set сохраняет значение, покрывающее даты [from, to]
func (c *Cache) Set(_ context.Context, key string, value any, from, to time.Time, ttl time.Duration) error {
	c.store.Set(key, entry{
		from:  domain.DateOnly(from),
		to:    domain.DateOnly(to),
		value: value,
	}, ttl)
	return nil
}

// InvalidateDate удаляет все записи, диапазон которых содержит дату
func (c *Cache) InvalidateDate(_ context.Context, date time.Time) error {
	d := domain.DateOnly(date)
	for key, item := range c.store.Items() {
		e, ok := item.Object.(entry)
		if !ok {
			continue
		}
		if !d.Before(e.from) && !d.After(e.to) {
			c.store.Delete(key)
		}
	}
	return nil
}

// Flush очищает кэш
func (c *Cache) Flush() {
	c.store.Flush()
}

// Len возвращает число записей, включая еще не удаленные просроченные
func (c *Cache) Len() int {
	return c.store.ItemCount()
}
