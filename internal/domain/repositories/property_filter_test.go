package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testProperty() *entities.Property {
	return &entities.Property{
		ID:           "prop-1",
		Name:         "Sea Breeze Apartment",
		Description:  "Airy 2BHK facing the sea",
		City:         "Mumbai",
		Location:     "Bandra West, Mumbai",
		Price:        85000,
		Bedrooms:     2,
		Bathrooms:    2,
		PropertyType: entities.PropertyTypeApartment,
		Amenities:    []string{"AC", "WiFi", "Parking"},
	}
}

func TestPropertyFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter PropertyFilter
		want   bool
	}{
		{"empty filter matches", PropertyFilter{}, true},
		{"city case-insensitive", PropertyFilter{City: "mumbai"}, true},
		{"city mismatch", PropertyFilter{City: "Delhi"}, false},
		{"min price inclusive", PropertyFilter{MinPrice: floatPtr(85000)}, true},
		{"min price above", PropertyFilter{MinPrice: floatPtr(85001)}, false},
		{"max price inclusive", PropertyFilter{MaxPrice: floatPtr(85000)}, true},
		{"max price below", PropertyFilter{MaxPrice: floatPtr(50000)}, false},
		{"bedrooms at least", PropertyFilter{Bedrooms: intPtr(2)}, true},
		{"bedrooms too many", PropertyFilter{Bedrooms: intPtr(3)}, false},
		{"amenity subset", PropertyFilter{Amenities: []string{"ac", "parking"}}, true},
		{"amenity missing", PropertyFilter{Amenities: []string{"AC", "Pool"}}, false},
		{"query matches name", PropertyFilter{Query: "breeze"}, true},
		{"query matches location", PropertyFilter{Query: "bandra"}, true},
		{"query no match", PropertyFilter{Query: "penthouse"}, false},
		{"combined all pass", PropertyFilter{City: "Mumbai", MinPrice: floatPtr(50000), Amenities: []string{"WiFi"}}, true},
		{"combined one fails", PropertyFilter{City: "Mumbai", MaxPrice: floatPtr(10000)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(testProperty()))
		})
	}
}
