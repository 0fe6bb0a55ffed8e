package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/providers"
)

// CacheInvalidationService drops cached listing data when catalog events
// arrive on the event bus. It covers writes made by other instances; the
// cached adapter already invalidates its own.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for listing events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelListingUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to listing updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.ListingEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent drops the cache entries a single listing change can stale.
// Merged-catalog list responses are not cached at all, so only the
// per-property and per-owner keys need attention here.
func (s *CacheInvalidationService) handleEvent(event *entities.ListingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	keys := []string{fmt.Sprintf("property:%s", event.PropertyID)}
	if event.OwnerEmail != "" {
		keys = append(keys, fmt.Sprintf("properties:owner:%s", event.OwnerEmail))
	}

	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Str("event_id", event.ID).
				Msg("failed to invalidate cache key")
		}
	}
}

// InvalidatePropertyCaches drops every cached listing entry. Only for
// maintenance or bulk imports.
func (s *CacheInvalidationService) InvalidatePropertyCaches(ctx context.Context) error {
	for _, pattern := range []string{"property:*", "properties:owner:*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
		log.Info().Str("pattern", pattern).Msg("invalidated cache pattern")
	}
	return nil
}
