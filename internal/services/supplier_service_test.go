package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
)

type stubPlaces struct {
	results []response_models.POI
	errs    []error
	calls   int
}

func (s *stubPlaces) SearchPlaces(ctx context.Context, destination string, interests []string, limit int) ([]response_models.POI, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return s.results, nil
}

type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func supplierRequest(interests ...string) *request_models.TripRequest {
	req := &request_models.TripRequest{
		Destination: "Paris",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-03",
		Interests:   interests,
	}
	req.Normalize()
	return req
}

func TestStaticSupplierServesSeedCatalog(t *testing.T) {
	s := NewStaticSupplier(nil, nil, mem.NewPOICache())

	pois, err := s.Fetch(context.Background(), supplierRequest())

	require.NoError(t, err)
	require.NotEmpty(t, pois)
	for _, p := range pois {
		assert.True(t, p.HasCoordinates(), "%s missing coordinates", p.Name)
		assert.Greater(t, p.EstStayMin, 0)
	}
}

func TestStaticSupplierUnknownDestination(t *testing.T) {
	s := NewStaticSupplier(nil, nil, mem.NewPOICache())

	pois, err := s.Fetch(context.Background(), &request_models.TripRequest{Destination: "Atlantis"})

	require.NoError(t, err)
	assert.Empty(t, pois)
}

func TestStaticSupplierRelevanceOrder(t *testing.T) {
	s := NewStaticSupplier(nil, nil, mem.NewPOICache())

	pois, err := s.Fetch(context.Background(), supplierRequest("art"))

	require.NoError(t, err)
	require.NotEmpty(t, pois)
	// Art-tagged entries must sort before unrelated ones.
	assert.Greater(t, interestMatches(pois[0], []string{"art"}), 0)
	last := pois[len(pois)-1]
	assert.GreaterOrEqual(t,
		interestMatches(pois[0], []string{"art"}),
		interestMatches(last, []string{"art"}))
}

func TestStaticSupplierUsesCache(t *testing.T) {
	cache := mem.NewPOICache()
	s := NewStaticSupplier(nil, nil, cache)

	first, err := s.Fetch(context.Background(), supplierRequest("art"))
	require.NoError(t, err)

	cached, ok := cache.Get("Paris", []string{"art"})
	require.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestLiveSupplierRateLimited(t *testing.T) {
	s := NewLiveSupplier(&stubPlaces{}, denyAll{}, mem.NewPOICache())

	_, err := s.Fetch(context.Background(), supplierRequest())

	assert.ErrorIs(t, err, utils.ErrRateLimited)
}

func TestLiveSupplierRetriesTransientFailure(t *testing.T) {
	places := &stubPlaces{
		results: []response_models.POI{poi("Louvre", 48.8606, 2.3376)},
		errs:    []error{utils.NewExternalSourceError("places", assert.AnError), nil},
	}
	s := NewLiveSupplier(places, allowAll{}, mem.NewPOICache())

	pois, err := s.Fetch(context.Background(), supplierRequest())

	require.NoError(t, err)
	assert.Len(t, pois, 1)
	assert.Equal(t, 2, places.calls)
}

func TestLiveSupplierDoesNotRetryMissingKey(t *testing.T) {
	places := &stubPlaces{errs: []error{utils.NewExternalSourceError("places", utils.ErrAPIKeyMissing)}}
	s := NewLiveSupplier(places, allowAll{}, mem.NewPOICache())

	_, err := s.Fetch(context.Background(), supplierRequest())

	require.Error(t, err)
	assert.Equal(t, 1, places.calls)
}

func TestLiveSupplierEmptyResults(t *testing.T) {
	s := NewLiveSupplier(&stubPlaces{}, allowAll{}, mem.NewPOICache())

	_, err := s.Fetch(context.Background(), supplierRequest())

	assert.ErrorIs(t, err, utils.ErrNoCandidates)
}

func TestLiveSupplierCachesResults(t *testing.T) {
	places := &stubPlaces{results: []response_models.POI{poi("Louvre", 48.8606, 2.3376)}}
	cache := mem.NewPOICache()
	s := NewLiveSupplier(places, allowAll{}, cache)

	_, err := s.Fetch(context.Background(), supplierRequest())
	require.NoError(t, err)
	_, err = s.Fetch(context.Background(), supplierRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, places.calls)

	_, ok := cache.Get("Paris", nil)
	assert.True(t, ok)
}

func TestDedupeMergesNearbySameName(t *testing.T) {
	pois := []response_models.POI{
		{Name: "Louvre", Lat: 48.8606, Lon: 2.3376, Description: "short"},
		{Name: "louvre", Lat: 48.86061, Lon: 2.33761, Description: "a much richer description of the museum", Rating: 4.7},
		{Name: "Louvre", Lat: 48.9000, Lon: 2.4000, Description: "different place, far away"},
	}

	out := dedupePOIs(pois)

	require.Len(t, out, 2)
	assert.Equal(t, "a much richer description of the museum", out[0].Description)
}

func TestDedupeKeepsDistinctPlaces(t *testing.T) {
	pois := []response_models.POI{
		poi("Louvre", 48.8606, 2.3376),
		poi("Orsay", 48.8600, 2.3266),
	}

	out := dedupePOIs(pois)
	assert.Len(t, out, 2)
}

func TestDedupeNamePrefixWithinRadius(t *testing.T) {
	pois := []response_models.POI{
		{Name: "Louvre Museum", Lat: 48.8606, Lon: 2.3376, Description: "full listing with details"},
		{Name: "Louvre", Lat: 48.86065, Lon: 2.33762, Description: "bare"},
	}

	out := dedupePOIs(pois)
	require.Len(t, out, 1)
	assert.Equal(t, "full listing with details", out[0].Description)
}

func TestSortByRelevanceTieBreaks(t *testing.T) {
	pois := []response_models.POI{
		{Name: "Zeta Garden", Tags: []string{"nature"}, Rating: 4.0},
		{Name: "Alpha Garden", Tags: []string{"nature"}, Rating: 4.0},
		{Name: "Beta Museum", Tags: []string{"art"}, Rating: 5.0},
	}

	sortByRelevance(pois, []string{"nature"})

	assert.Equal(t, "Alpha Garden", pois[0].Name)
	assert.Equal(t, "Zeta Garden", pois[1].Name)
	assert.Equal(t, "Beta Museum", pois[2].Name)
}

func TestLiveSupplierBackoffHonorsContext(t *testing.T) {
	places := &stubPlaces{errs: []error{
		utils.NewExternalSourceError("places", assert.AnError),
		utils.NewExternalSourceError("places", assert.AnError),
		utils.NewExternalSourceError("places", assert.AnError),
	}}
	s := NewLiveSupplier(places, allowAll{}, mem.NewPOICache())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := s.Fetch(ctx, supplierRequest())
	assert.ErrorIs(t, err, utils.ErrTimeout)
}
