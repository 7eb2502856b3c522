package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/models/response_models"
)

func TestPOICacheRoundTrip(t *testing.T) {
	cache := NewPOICache()
	pois := []response_models.POI{{Name: "Louvre", Lat: 48.86, Lon: 2.33}}

	cache.Set("Paris", []string{"art"}, pois, time.Minute)

	got, ok := cache.Get("Paris", []string{"art"})
	require.True(t, ok)
	assert.Equal(t, pois, got)
}

func TestPOICacheMiss(t *testing.T) {
	cache := NewPOICache()
	_, ok := cache.Get("Paris", nil)
	assert.False(t, ok)
}

func TestPOICacheKeyNormalization(t *testing.T) {
	cache := NewPOICache()
	pois := []response_models.POI{{Name: "Louvre"}}

	cache.Set("Paris", []string{"Art", "Food"}, pois, time.Minute)

	// Case and interest order must not matter.
	_, ok := cache.Get("paris", []string{"food", "art"})
	assert.True(t, ok)
}

func TestPOICacheExpiry(t *testing.T) {
	cache := NewPOICache()
	cache.Set("Paris", nil, []response_models.POI{{Name: "Louvre"}}, -time.Second)

	_, ok := cache.Get("Paris", nil)
	assert.False(t, ok)
}

func TestPOICacheLastWriterWins(t *testing.T) {
	cache := NewPOICache()
	cache.Set("Paris", nil, []response_models.POI{{Name: "Old"}}, time.Minute)
	cache.Set("Paris", nil, []response_models.POI{{Name: "New"}}, time.Minute)

	got, ok := cache.Get("Paris", nil)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Name)
}
