package providers

import (
	"context"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to listing
// events.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.ListingEvent) error

	// Subscribe subscribes to events on a channel; the channel closes when
	// ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ListingEvent, error)

	// Unsubscribe tears down a channel subscription
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelListingUpdates carries every catalog change
	EventChannelListingUpdates = "listings:updates"

	// EventChannelListingPrefix is the prefix for per-property channels
	EventChannelListingPrefix = "listings:"
)

// GetListingChannel returns the channel name for a specific property.
func GetListingChannel(propertyID string) string {
	return EventChannelListingPrefix + propertyID
}
