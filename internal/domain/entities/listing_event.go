package entities

import (
	"time"

	"github.com/google/uuid"
)

// ListingEventType represents the type of listing event
type ListingEventType string

const (
	ListingEventTypeCreated ListingEventType = "listing_created"
	ListingEventTypeUpdated ListingEventType = "listing_updated"
	ListingEventTypeDeleted ListingEventType = "listing_deleted"
)

// ListingEvent represents a real-time catalog change for a property.
type ListingEvent struct {
	ID         string           `json:"id"`
	PropertyID string           `json:"property_id"`
	EventType  ListingEventType `json:"event_type"`
	City       string           `json:"city,omitempty"`
	OwnerEmail string           `json:"owner_email,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewListingEvent creates a new listing event for a property.
func NewListingEvent(property *Property, eventType ListingEventType) *ListingEvent {
	return &ListingEvent{
		ID:         uuid.New().String(),
		PropertyID: property.ID,
		EventType:  eventType,
		City:       property.City,
		OwnerEmail: property.Owner.Email,
		Timestamp:  time.Now().UTC(),
	}
}
