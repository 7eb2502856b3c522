package services

import (
	"context"
	"log"
	"math"

	"wayfarer/internal/collaborators"
	"wayfarer/internal/models/response_models"
)

// Mode speeds in km/h used for transfer estimates when no directions
// collaborator is configured.
const (
	speedWalkingKMH = 4.5
	speedCyclingKMH = 12.0
	speedTransitKMH = 20.0
	speedDrivingKMH = 30.0

	earthRadiusKM = 6371.0

	// Any nonzero transfer takes at least this long door to door.
	minTransferMin = 5
)

type RouterServiceInterface interface {
	// Order arranges stops by greedy nearest-neighbor starting from the
	// anchor. Stops without coordinates come last in their input order.
	Order(anchorLat, anchorLon float64, stops []response_models.POI) []response_models.POI

	// EstimateTransfer computes a transfer leg between consecutive stops.
	EstimateTransfer(ctx context.Context, from, to response_models.POI, mode string) response_models.Transfer

	// Distance returns the great-circle distance in kilometers.
	Distance(lat1, lon1, lat2, lon2 float64) float64
}

type routerService struct {
	directions collaborators.DirectionsServiceInterface
}

// NewRouterService builds the geometric router. The directions client is
// optional; pass nil to always use haversine estimates.
func NewRouterService(directions collaborators.DirectionsServiceInterface) RouterServiceInterface {
	return &routerService{directions: directions}
}

func (s *routerService) Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

func modeSpeedKMH(mode string) float64 {
	switch mode {
	case "cycling":
		return speedCyclingKMH
	case "transit":
		return speedTransitKMH
	case "driving":
		return speedDrivingKMH
	default:
		return speedWalkingKMH
	}
}

// travelMinutes converts a distance to minutes for the given mode, with a
// floor so adjacent stops never report a zero-minute hop.
func travelMinutes(distanceKM float64, mode string) int {
	if distanceKM <= 0 {
		return 0
	}
	min := int(math.Ceil(distanceKM / modeSpeedKMH(mode) * 60))
	if min < minTransferMin {
		min = minTransferMin
	}
	return min
}

func (s *routerService) Order(anchorLat, anchorLon float64, stops []response_models.POI) []response_models.POI {
	routable := make([]response_models.POI, 0, len(stops))
	unroutable := make([]response_models.POI, 0)
	for _, p := range stops {
		if p.HasCoordinates() {
			routable = append(routable, p)
		} else {
			unroutable = append(unroutable, p)
		}
	}

	ordered := make([]response_models.POI, 0, len(stops))
	curLat, curLon := anchorLat, anchorLon
	for len(routable) > 0 {
		best := 0
		bestDist := s.Distance(curLat, curLon, routable[0].Lat, routable[0].Lon)
		for i := 1; i < len(routable); i++ {
			d := s.Distance(curLat, curLon, routable[i].Lat, routable[i].Lon)
			// Strict comparison keeps the earlier candidate on ties, so
			// ordering is deterministic for identical inputs.
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		next := routable[best]
		ordered = append(ordered, next)
		routable = append(routable[:best], routable[best+1:]...)
		curLat, curLon = next.Lat, next.Lon
	}

	return append(ordered, unroutable...)
}

func (s *routerService) EstimateTransfer(ctx context.Context, from, to response_models.POI, mode string) response_models.Transfer {
	t := response_models.Transfer{
		FromPlace: from.Name,
		ToPlace:   to.Name,
		Mode:      mode,
	}
	if !from.HasCoordinates() || !to.HasCoordinates() {
		return t
	}

	dist := s.Distance(from.Lat, from.Lon, to.Lat, to.Lon)
	t.DistanceKM = math.Round(dist*100) / 100
	t.TravelMin = travelMinutes(dist, mode)

	if s.directions != nil {
		leg, err := s.directions.EstimateLeg(ctx, from.Lat, from.Lon, to.Lat, to.Lon, mode)
		if err == nil && leg.DurationMin > 0 {
			t.TravelMin = leg.DurationMin
			if leg.DistanceMeters > 0 {
				t.DistanceKM = math.Round(float64(leg.DistanceMeters)/10) / 100
			}
		} else if err != nil {
			log.Printf("directions estimate failed, keeping geometric estimate: %v", err)
		}
	}
	return t
}
