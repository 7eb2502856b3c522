package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"wayfarer/internal/collaborators"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
)

const (
	staticCacheTTL = time.Hour
	liveCacheTTL   = 15 * time.Minute

	liveFetchAttempts = 3
	liveFetchBackoff  = 500 * time.Millisecond

	// Two stops closer than this with matching names are the same place.
	dedupeRadiusKM = 0.05
)

// POISupplierInterface produces candidate stops for a trip, relevance-ordered.
type POISupplierInterface interface {
	Fetch(ctx context.Context, req *request_models.TripRequest) ([]response_models.POI, error)
}

// Embedder turns interest text into a vector for catalog similarity search.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

type staticSupplier struct {
	catalog  repositories.CatalogRepository
	embedder Embedder
	cache    mem.POICache
}

// NewStaticSupplier serves candidates from the curated catalog. Both the
// database repository and the embedder are optional; the built-in seed
// catalog always remains as the floor.
func NewStaticSupplier(catalog repositories.CatalogRepository, embedder Embedder, cache mem.POICache) POISupplierInterface {
	return &staticSupplier{catalog: catalog, embedder: embedder, cache: cache}
}

func (s *staticSupplier) Fetch(ctx context.Context, req *request_models.TripRequest) ([]response_models.POI, error) {
	if cached, ok := s.cache.Get(req.Destination, req.Interests); ok {
		return cached, nil
	}

	pois := s.fromCatalog(ctx, req)
	if len(pois) == 0 {
		pois = seedCatalogFor(req.Destination)
	}

	pois = dedupePOIs(pois)
	sortByRelevance(pois, req.Interests)

	s.cache.Set(req.Destination, req.Interests, pois, staticCacheTTL)
	return pois, nil
}

func (s *staticSupplier) fromCatalog(ctx context.Context, req *request_models.TripRequest) []response_models.POI {
	if s.catalog == nil {
		return nil
	}

	rows, err := s.catalog.ListByDestination(ctx, req.Destination, 40)
	if err != nil {
		log.Printf("catalog lookup failed for %q: %v", req.Destination, err)
		return nil
	}

	// Semantic retrieval narrows the catalog to interest-adjacent rows.
	// A failed embedding call degrades to the full destination listing.
	if s.embedder != nil && len(req.Interests) > 0 && len(rows) > 0 {
		if vec, err := s.embedder.EmbedText(ctx, strings.Join(req.Interests, ", ")); err == nil {
			matches, err := s.catalog.SearchByVector(ctx, req.Destination, pgvector.NewVector(vec), 20)
			if err == nil && len(matches) > 0 {
				keep := make(map[string]bool, len(matches))
				for _, m := range matches {
					keep[m.POIID] = true
				}
				filtered := rows[:0]
				for _, r := range rows {
					if keep[r.ID.String()] {
						filtered = append(filtered, r)
					}
				}
				if len(filtered) > 0 {
					rows = filtered
				}
			}
		} else {
			log.Printf("interest embedding failed: %v", err)
		}
	}

	pois := make([]response_models.POI, 0, len(rows))
	for _, r := range rows {
		pois = append(pois, catalogToPOI(r))
	}
	return pois
}

func catalogToPOI(r db_models.CatalogPOI) response_models.POI {
	return response_models.POI{
		Name:        r.Name,
		Category:    r.Category,
		Lat:         r.Lat,
		Lon:         r.Lon,
		Description: r.Description,
		URL:         r.URL,
		EstStayMin:  r.EstStayMin,
		Rating:      r.Rating,
		PriceLevel:  r.PriceLevel,
		Tags:        append([]string(nil), r.Tags...),
	}
}

type liveSupplier struct {
	places  collaborators.PlacesServiceInterface
	limiter mem.RateLimiter
	cache   mem.POICache
}

// NewLiveSupplier queries the live places source. Failures surface as errors
// so the caller can fall back to the static path.
func NewLiveSupplier(places collaborators.PlacesServiceInterface, limiter mem.RateLimiter, cache mem.POICache) POISupplierInterface {
	return &liveSupplier{places: places, limiter: limiter, cache: cache}
}

func (s *liveSupplier) Fetch(ctx context.Context, req *request_models.TripRequest) ([]response_models.POI, error) {
	if cached, ok := s.cache.Get(req.Destination, req.Interests); ok {
		return cached, nil
	}
	if !s.limiter.Allow("places") {
		return nil, utils.ErrRateLimited
	}

	var pois []response_models.POI
	var err error
	backoff := liveFetchBackoff
	for attempt := 0; attempt < liveFetchAttempts; attempt++ {
		pois, err = s.places.SearchPlaces(ctx, req.Destination, req.Interests, 20)
		if err == nil {
			break
		}
		if !retryableFetch(err) || attempt == liveFetchAttempts-1 {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, utils.ErrTimeout
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	if len(pois) == 0 {
		return nil, utils.ErrNoCandidates
	}

	pois = dedupePOIs(pois)
	sortByRelevance(pois, req.Interests)

	s.cache.Set(req.Destination, req.Interests, pois, liveCacheTTL)
	return pois, nil
}

func retryableFetch(err error) bool {
	if errors.Is(err, utils.ErrRateLimited) || errors.Is(err, utils.ErrAPIKeyMissing) {
		return false
	}
	var srcErr *utils.ExternalSourceError
	return errors.As(err, &srcErr)
}

// dedupePOIs collapses entries that are the same place under slightly
// different listings. The entry with the richer description survives.
func dedupePOIs(pois []response_models.POI) []response_models.POI {
	out := make([]response_models.POI, 0, len(pois))
	for _, p := range pois {
		merged := false
		for i := range out {
			if !samePlace(out[i], p) {
				continue
			}
			if len(p.Description) > len(out[i].Description) {
				keep := out[i]
				out[i] = p
				if out[i].Rating == 0 {
					out[i].Rating = keep.Rating
				}
			}
			merged = true
			break
		}
		if !merged {
			out = append(out, p)
		}
	}
	return out
}

func samePlace(a, b response_models.POI) bool {
	an := strings.ToLower(strings.TrimSpace(a.Name))
	bn := strings.ToLower(strings.TrimSpace(b.Name))
	if an != bn && !strings.HasPrefix(an, bn) && !strings.HasPrefix(bn, an) {
		return false
	}
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return an == bn
	}
	return haversineKM(a.Lat, a.Lon, b.Lat, b.Lon) <= dedupeRadiusKM
}

func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	return (&routerService{}).Distance(lat1, lon1, lat2, lon2)
}

// sortByRelevance orders by interest matches, then rating, then name. The
// sort is stable so equal candidates keep their source order.
func sortByRelevance(pois []response_models.POI, interests []string) {
	sort.SliceStable(pois, func(i, j int) bool {
		mi, mj := interestMatches(pois[i], interests), interestMatches(pois[j], interests)
		if mi != mj {
			return mi > mj
		}
		if pois[i].Rating != pois[j].Rating {
			return pois[i].Rating > pois[j].Rating
		}
		return pois[i].Name < pois[j].Name
	})
}

func interestMatches(p response_models.POI, interests []string) int {
	if len(interests) == 0 {
		return 0
	}
	haystack := strings.ToLower(p.Name + " " + p.Category + " " + p.Description + " " + strings.Join(p.Tags, " "))
	count := 0
	for _, interest := range interests {
		if strings.Contains(haystack, strings.ToLower(strings.TrimSpace(interest))) {
			count++
		}
	}
	return count
}
