package repositories

import (
	"context"
	"strings"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

// PropertyFilter narrows catalog queries. Zero values mean "no constraint".
type PropertyFilter struct {
	City      string
	MinPrice  *float64
	MaxPrice  *float64
	Bedrooms  *int
	Amenities []string
	Query     string
	Limit     int
	Offset    int
}

// Matches applies the filter predicate to a single property. The same
// semantics are used for the SQL-backed dynamic catalog and the in-memory
// built-in catalog so merged results stay consistent.
func (f PropertyFilter) Matches(p *entities.Property) bool {
	if f.City != "" && !strings.EqualFold(p.City, f.City) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms < *f.Bedrooms {
		return false
	}
	if !p.HasAmenities(f.Amenities) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.City), q) &&
			!strings.Contains(strings.ToLower(p.Location), q) {
			return false
		}
	}
	return true
}

// PropertyRepository defines the interface for the dynamic (owner-managed)
// catalog. The built-in catalog lives outside this interface and is merged
// in by the property service.
type PropertyRepository interface {
	// Upsert replaces the record in place when the id exists, otherwise
	// inserts a new one
	Upsert(ctx context.Context, property *entities.Property) error

	// GetByID retrieves a dynamic property by ID
	GetByID(ctx context.Context, id string) (*entities.Property, error)

	// Delete removes a property by ID; deleting an absent id is a no-op
	Delete(ctx context.Context, id string) error

	// List returns dynamic properties matching the filter, newest first
	List(ctx context.Context, filter PropertyFilter) ([]*entities.Property, error)

	// ListIDs returns the ids of every dynamic property
	ListIDs(ctx context.Context) ([]string, error)

	// ListByOwner returns dynamic properties whose owner snapshot carries
	// the given email
	ListByOwner(ctx context.Context, ownerEmail string) ([]*entities.Property, error)
}
