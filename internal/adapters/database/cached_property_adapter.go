package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/providers"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
)

// Cache TTLs (in seconds)
const (
	propertyByIDTTL   = 300 // single listing
	ownerListTTL      = 120 // per-owner listings
)

func propertyCacheKey(id string) string {
	return fmt.Sprintf("property:%s", id)
}

func ownerPropertiesCacheKey(email string) string {
	return fmt.Sprintf("properties:owner:%s", email)
}

// CachedPropertyAdapter wraps a PropertyRepository with a Redis cache-aside
// layer. Reads prefer the cache; writes go straight through and drop the
// affected keys so the next read repopulates.
type CachedPropertyAdapter struct {
	adapter repositories.PropertyRepository
	cache   providers.CacheProvider
}

// NewCachedPropertyAdapter creates a new cached property adapter
func NewCachedPropertyAdapter(adapter repositories.PropertyRepository, cache providers.CacheProvider) repositories.PropertyRepository {
	return &CachedPropertyAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// GetByID retrieves a property by ID with caching
func (a *CachedPropertyAdapter) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	cacheKey := propertyCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var property entities.Property
		if err := json.Unmarshal(cached, &property); err == nil {
			return &property, nil
		}
		log.Warn().Str("property_id", id).Msg("failed to unmarshal cached property, falling through")
	}

	property, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Populate asynchronously so the response is not blocked on Redis.
	go func() {
		if data, err := json.Marshal(property); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, propertyByIDTTL); err != nil {
				log.Warn().Err(err).Str("property_id", id).Msg("failed to cache property")
			}
		}
	}()

	return property, nil
}

// ListByOwner retrieves per-owner listings with caching
func (a *CachedPropertyAdapter) ListByOwner(ctx context.Context, ownerEmail string) ([]*entities.Property, error) {
	cacheKey := ownerPropertiesCacheKey(ownerEmail)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var properties []*entities.Property
		if err := json.Unmarshal(cached, &properties); err == nil {
			return properties, nil
		}
	}

	properties, err := a.adapter.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	go func() {
		if data, err := json.Marshal(properties); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, ownerListTTL); err != nil {
				log.Warn().Err(err).Str("owner", ownerEmail).Msg("failed to cache owner properties")
			}
		}
	}()

	return properties, nil
}

// Upsert writes through and invalidates the affected keys
func (a *CachedPropertyAdapter) Upsert(ctx context.Context, property *entities.Property) error {
	if err := a.adapter.Upsert(ctx, property); err != nil {
		return err
	}
	a.invalidate(ctx, property.ID, property.Owner.Email)
	return nil
}

// Delete writes through and invalidates the affected keys
func (a *CachedPropertyAdapter) Delete(ctx context.Context, id string) error {
	// Fetch first so the owner list key can be dropped too; a miss is fine.
	var ownerEmail string
	if existing, err := a.adapter.GetByID(ctx, id); err == nil {
		ownerEmail = existing.Owner.Email
	}

	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id, ownerEmail)
	return nil
}

// List is not cached: filters are high-cardinality and the dynamic catalog
// query is already a single indexed scan.
func (a *CachedPropertyAdapter) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error) {
	return a.adapter.List(ctx, filter)
}

// ListIDs is not cached
func (a *CachedPropertyAdapter) ListIDs(ctx context.Context) ([]string, error) {
	return a.adapter.ListIDs(ctx)
}

func (a *CachedPropertyAdapter) invalidate(ctx context.Context, id, ownerEmail string) {
	if err := a.cache.Delete(ctx, propertyCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("property_id", id).Msg("failed to invalidate property cache")
	}
	if ownerEmail != "" {
		if err := a.cache.Delete(ctx, ownerPropertiesCacheKey(ownerEmail)); err != nil {
			log.Warn().Err(err).Str("owner", ownerEmail).Msg("failed to invalidate owner cache")
		}
	}
}
