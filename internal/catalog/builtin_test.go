package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

func TestAll_ReturnsCopies(t *testing.T) {
	first := All()
	require.NotEmpty(t, first)

	first[0].Name = "mutated"
	first[0].Amenities[0] = "mutated"

	second := All()
	assert.NotEqual(t, "mutated", second[0].Name)
	assert.NotEqual(t, "mutated", second[0].Amenities[0])
}

func TestAll_EntriesAreValid(t *testing.T) {
	for _, p := range All() {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.City)
		assert.True(t, entities.ValidPropertyType(p.PropertyType), "property %s has type %q", p.ID, p.PropertyType)
		assert.NotEmpty(t, p.Owner.Email)
		assert.Greater(t, p.Price, 0.0)
	}
}

func TestGetByID(t *testing.T) {
	p := GetByID("1")
	require.NotNil(t, p)
	assert.Equal(t, "Sea Breeze Apartment", p.Name)

	p.Name = "mutated"
	again := GetByID("1")
	assert.Equal(t, "Sea Breeze Apartment", again.Name)

	assert.Nil(t, GetByID("does-not-exist"))
}
