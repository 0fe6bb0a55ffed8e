package entities

import (
	"strings"
	"time"
)

// PropertyType enumerates the supported listing categories.
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeCommercial PropertyType = "commercial"
)

// ValidPropertyType reports whether t is one of the supported categories.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeVilla,
		PropertyTypeStudio, PropertyTypeCommercial:
		return true
	}
	return false
}

// Owner is a snapshot of the listing owner embedded in the property record.
// It is deliberately not a foreign key: listings keep rendering even if the
// account changes or disappears.
type Owner struct {
	Name   string `json:"name" db:"owner_name"`
	Email  string `json:"email" db:"owner_email"`
	Phone  string `json:"phone" db:"owner_phone"`
	Avatar string `json:"avatar,omitempty" db:"owner_avatar"`
}

// Property represents a rental listing
type Property struct {
	ID            string       `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	Description   string       `json:"description" db:"description"`
	City          string       `json:"city" db:"city"`
	Location      string       `json:"location" db:"location"`
	Price         float64      `json:"price" db:"price"`
	Bedrooms      int          `json:"bedrooms" db:"bedrooms"`
	Bathrooms     int          `json:"bathrooms" db:"bathrooms"`
	AreaSqFt      float64      `json:"area_sqft" db:"area_sqft"`
	PropertyType  PropertyType `json:"property_type" db:"property_type"`
	Amenities     []string     `json:"amenities" db:"-"`
	Images        []string     `json:"images" db:"-"` // first entry is the cover image
	Owner         Owner        `json:"owner" db:"-"`
	Rating        float64      `json:"rating" db:"rating"`
	ReviewCount   int          `json:"review_count" db:"review_count"`
	IsPremium     bool         `json:"is_premium" db:"is_premium"`
	IsFeatured    bool         `json:"is_featured" db:"is_featured"`
	AvailableFrom time.Time    `json:"available_from" db:"available_from"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// HasAmenities reports whether the property offers every requested amenity
// (subset semantics, case-insensitive). An empty request always matches.
func (p *Property) HasAmenities(required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(p.Amenities))
	for _, a := range p.Amenities {
		have[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	for _, want := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(want))]; !ok {
			return false
		}
	}
	return true
}
