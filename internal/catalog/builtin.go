// Package catalog holds the built-in property listings that ship with the
// service. They are always available, even with an empty database, and a
// stored property with a matching id overrides the built-in one.
package catalog

import (
	"time"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

var launchDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

var builtin = []entities.Property{
	{
		ID:           "1",
		Name:         "Sea Breeze Apartment",
		Description:  "Airy 2BHK with a balcony facing the Arabian Sea, five minutes from Bandstand promenade.",
		City:         "Mumbai",
		Location:     "Bandra West, Mumbai",
		Price:        85000,
		Bedrooms:     2,
		Bathrooms:    2,
		AreaSqFt:     950,
		PropertyType: entities.PropertyTypeApartment,
		Amenities:    []string{"AC", "WiFi", "Parking", "Lift", "Security"},
		Images: []string{
			"https://images.rentora.example/builtin/1/cover.jpg",
			"https://images.rentora.example/builtin/1/living.jpg",
		},
		Owner: entities.Owner{
			Name:  "Priya Sharma",
			Email: "priya.sharma@rentora.example",
			Phone: "+91 98200 11001",
		},
		Rating:        4.7,
		ReviewCount:   32,
		IsPremium:     true,
		IsFeatured:    true,
		AvailableFrom: launchDate,
		CreatedAt:     launchDate,
		UpdatedAt:     launchDate,
	},
	{
		ID:           "2",
		Name:         "Indiranagar Garden House",
		Description:  "Independent 3BHK house with a private garden and covered parking, walking distance to 100 Feet Road.",
		City:         "Bangalore",
		Location:     "Indiranagar, Bangalore",
		Price:        65000,
		Bedrooms:     3,
		Bathrooms:    3,
		AreaSqFt:     1800,
		PropertyType: entities.PropertyTypeHouse,
		Amenities:    []string{"WiFi", "Parking", "Garden", "Power Backup"},
		Images: []string{
			"https://images.rentora.example/builtin/2/cover.jpg",
		},
		Owner: entities.Owner{
			Name:  "Arjun Rao",
			Email: "arjun.rao@rentora.example",
			Phone: "+91 98450 22002",
		},
		Rating:        4.5,
		ReviewCount:   21,
		IsFeatured:    true,
		AvailableFrom: launchDate,
		CreatedAt:     launchDate,
		UpdatedAt:     launchDate,
	},
	{
		ID:           "3",
		Name:         "Hauz Khas Studio",
		Description:  "Compact fully furnished studio overlooking the deer park, ideal for a single professional.",
		City:         "Delhi",
		Location:     "Hauz Khas Village, Delhi",
		Price:        32000,
		Bedrooms:     1,
		Bathrooms:    1,
		AreaSqFt:     420,
		PropertyType: entities.PropertyTypeStudio,
		Amenities:    []string{"AC", "WiFi", "Furnished"},
		Images: []string{
			"https://images.rentora.example/builtin/3/cover.jpg",
		},
		Owner: entities.Owner{
			Name:  "Meera Kapoor",
			Email: "meera.kapoor@rentora.example",
			Phone: "+91 98100 33003",
		},
		Rating:        4.2,
		ReviewCount:   14,
		AvailableFrom: launchDate,
		CreatedAt:     launchDate,
		UpdatedAt:     launchDate,
	},
	{
		ID:           "4",
		Name:         "Koregaon Park Villa",
		Description:  "Four bedroom villa with a private pool and staff quarters on a quiet tree-lined lane.",
		City:         "Pune",
		Location:     "Koregaon Park, Pune",
		Price:        145000,
		Bedrooms:     4,
		Bathrooms:    5,
		AreaSqFt:     3600,
		PropertyType: entities.PropertyTypeVilla,
		Amenities:    []string{"AC", "WiFi", "Parking", "Pool", "Garden", "Security", "Power Backup"},
		Images: []string{
			"https://images.rentora.example/builtin/4/cover.jpg",
			"https://images.rentora.example/builtin/4/pool.jpg",
		},
		Owner: entities.Owner{
			Name:  "Vikram Deshpande",
			Email: "vikram.deshpande@rentora.example",
			Phone: "+91 98220 44004",
		},
		Rating:        4.9,
		ReviewCount:   47,
		IsPremium:     true,
		IsFeatured:    true,
		AvailableFrom: launchDate,
		CreatedAt:     launchDate,
		UpdatedAt:     launchDate,
	},
	{
		ID:           "5",
		Name:         "HITEC City Office Suite",
		Description:  "Plug-and-play commercial suite with eight workstations, a cabin and a meeting room.",
		City:         "Hyderabad",
		Location:     "HITEC City, Hyderabad",
		Price:        95000,
		Bedrooms:     0,
		Bathrooms:    2,
		AreaSqFt:     1200,
		PropertyType: entities.PropertyTypeCommercial,
		Amenities:    []string{"AC", "WiFi", "Parking", "Lift", "Power Backup", "Security"},
		Images: []string{
			"https://images.rentora.example/builtin/5/cover.jpg",
		},
		Owner: entities.Owner{
			Name:  "Sanjay Reddy",
			Email: "sanjay.reddy@rentora.example",
			Phone: "+91 98490 55005",
		},
		Rating:        4.3,
		ReviewCount:   9,
		AvailableFrom: launchDate,
		CreatedAt:     launchDate,
		UpdatedAt:     launchDate,
	},
	{
		ID:           "6",
		Name:         "Anjuna Beach Cottage",
		Description:  "Two bedroom Portuguese-style cottage a short walk from Anjuna beach, rented furnished.",
		City:         "Goa",
		Location:     "Anjuna, North Goa",
		Price:        55000,
		Bedrooms:     2,
		Bathrooms:    2,
		AreaSqFt:     1100,
		PropertyType: entities.PropertyTypeHouse,
		Amenities:    []string{"WiFi", "Garden", "Furnished", "Parking"},
		Images: []string{
			"https://images.rentora.example/builtin/6/cover.jpg",
			"https://images.rentora.example/builtin/6/veranda.jpg",
		},
		Owner: entities.Owner{
			Name:  "Natasha D'Souza",
			Email: "natasha.dsouza@rentora.example",
			Phone: "+91 98230 66006",
		},
		Rating:        4.6,
		ReviewCount:   28,
		IsFeatured:    true,
		AvailableFrom: launchDate,
		CreatedAt:     launchDate,
		UpdatedAt:     launchDate,
	},
}

// All returns a copy of every built-in property. Callers may mutate the
// returned slice freely.
func All() []*entities.Property {
	out := make([]*entities.Property, 0, len(builtin))
	for i := range builtin {
		p := builtin[i]
		p.Amenities = append([]string(nil), builtin[i].Amenities...)
		p.Images = append([]string(nil), builtin[i].Images...)
		out = append(out, &p)
	}
	return out
}

// GetByID returns a copy of the built-in property with the given id, or nil
// if there is none.
func GetByID(id string) *entities.Property {
	for i := range builtin {
		if builtin[i].ID == id {
			p := builtin[i]
			p.Amenities = append([]string(nil), builtin[i].Amenities...)
			p.Images = append([]string(nil), builtin[i].Images...)
			return &p
		}
	}
	return nil
}
