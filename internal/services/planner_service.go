package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"wayfarer/internal/collaborators"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

const (
	ModeGraph = "graph"
	ModeCrew  = "crew"

	DefaultCrewTimeout = 60 * time.Second
)

// PlannerServiceInterface is the single entry point for itinerary requests.
// It validates, picks the planning mode, runs it with fallback, and
// assembles the final itinerary.
type PlannerServiceInterface interface {
	Plan(ctx context.Context, req *request_models.TripRequest, mode string) (*response_models.PlanResult, error)
}

type plannerService struct {
	geocoder  collaborators.GeocodeServiceInterface
	weather   collaborators.WeatherServiceInterface
	localInfo collaborators.LocalInfoServiceInterface
	supplier  POISupplierInterface
	scheduler SchedulerServiceInterface
	pipeline  PipelineServiceInterface

	crewTimeout time.Duration
}

// NewPlannerService wires the deterministic path plus the optional crew
// pipeline. Pass a nil pipeline to force graph mode.
func NewPlannerService(
	geocoder collaborators.GeocodeServiceInterface,
	weather collaborators.WeatherServiceInterface,
	localInfo collaborators.LocalInfoServiceInterface,
	supplier POISupplierInterface,
	scheduler SchedulerServiceInterface,
	pipeline PipelineServiceInterface,
	crewTimeout time.Duration,
) PlannerServiceInterface {
	if crewTimeout <= 0 {
		crewTimeout = DefaultCrewTimeout
	}
	return &plannerService{
		geocoder:    geocoder,
		weather:     weather,
		localInfo:   localInfo,
		supplier:    supplier,
		scheduler:   scheduler,
		pipeline:    pipeline,
		crewTimeout: crewTimeout,
	}
}

func (s *plannerService) Plan(ctx context.Context, req *request_models.TripRequest, mode string) (*response_models.PlanResult, error) {
	started := time.Now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeGraph
	}
	if mode != ModeGraph && mode != ModeCrew {
		return nil, fmt.Errorf("%w: mode must be graph or crew", utils.ErrValidation)
	}

	var itinerary *response_models.Itinerary
	var err error
	producedBy := mode

	if mode == ModeCrew {
		itinerary, err = s.runCrew(ctx, req)
		if err != nil {
			if !utils.IsFallbackTrigger(err) {
				return nil, err
			}
			log.Printf("crew planning failed, falling back to graph mode: %v", err)
			producedBy = ModeGraph
			itinerary, err = s.runGraph(ctx, req)
			if itinerary != nil {
				itinerary.Warnings = append(itinerary.Warnings,
					"crew planning was unavailable; this itinerary was built by the deterministic planner")
			}
		}
	} else {
		itinerary, err = s.runGraph(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	s.enrichItinerary(ctx, req, itinerary)

	return &response_models.PlanResult{
		Itinerary:      *itinerary,
		Success:        true,
		Message:        fmt.Sprintf("Itinerary for %s generated", req.Destination),
		Mode:           producedBy,
		ProcessingTime: time.Since(started).Seconds(),
	}, nil
}

func (s *plannerService) runCrew(ctx context.Context, req *request_models.TripRequest) (*response_models.Itinerary, error) {
	if s.pipeline == nil {
		return nil, utils.NewAgentStageError("research", utils.ErrAPIKeyMissing)
	}

	crewCtx, cancel := context.WithTimeout(ctx, s.crewTimeout)
	defer cancel()

	out, err := s.pipeline.Run(crewCtx, req)
	if err != nil {
		if crewCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("crew planning: %w", utils.ErrTimeout)
		}
		return nil, err
	}

	itinerary := s.assemble(req, out.Days, out.Omitted)
	itinerary.Tips = out.Tips
	itinerary.Warnings = append(itinerary.Warnings, out.Warnings...)
	if out.Overview != "" {
		itinerary.Summary = out.Overview + " " + itinerary.Summary
	}
	return itinerary, nil
}

func (s *plannerService) runGraph(ctx context.Context, req *request_models.TripRequest) (*response_models.Itinerary, error) {
	anchorLat, anchorLon := 0.0, 0.0
	if lat, lon, err := s.geocoder.Geocode(ctx, req.Destination); err == nil {
		anchorLat, anchorLon = lat, lon
	} else {
		log.Printf("geocoding %q failed, routing from first candidate: %v", req.Destination, err)
	}

	candidates, err := s.supplier.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if anchorLat == 0 && anchorLon == 0 {
		for _, c := range candidates {
			if c.HasCoordinates() {
				anchorLat, anchorLon = c.Lat, c.Lon
				break
			}
		}
	}

	days, omitted, err := s.scheduler.Schedule(ctx, req, anchorLat, anchorLon, candidates)
	if err != nil {
		return nil, err
	}

	itinerary := s.assemble(req, days, omitted)
	itinerary.Tips = DefaultTips()
	return itinerary, nil
}

// assemble builds the itinerary envelope around the scheduled days.
func (s *plannerService) assemble(req *request_models.TripRequest, days []response_models.Day, omitted []response_models.POI) *response_models.Itinerary {
	summary := fmt.Sprintf("%s %s~%s", req.Destination, req.StartDate, req.EndDate)
	if len(req.Interests) > 0 {
		summary += ", interests: " + strings.Join(req.Interests, ", ")
	}

	itinerary := &response_models.Itinerary{
		Summary: summary,
		Days:    days,
		Omitted: omitted,
	}

	empty := true
	var unroutable []string
	for _, day := range days {
		for _, stop := range day.Stops() {
			empty = false
			if !stop.HasCoordinates() {
				unroutable = append(unroutable, stop.Name)
			}
		}
	}
	if empty {
		itinerary.Warnings = append(itinerary.Warnings,
			fmt.Sprintf("no attraction data available for %s; days are left open", req.Destination))
	}
	if len(unroutable) > 0 {
		itinerary.Warnings = append(itinerary.Warnings,
			"no location data for "+strings.Join(unroutable, ", ")+"; these stops are scheduled but excluded from route ordering")
	}
	return itinerary
}

// enrichItinerary attaches the optional weather and local info sections.
// Both are best effort; failures become warnings, never errors.
func (s *plannerService) enrichItinerary(ctx context.Context, req *request_models.TripRequest, itinerary *response_models.Itinerary) {
	if !req.IncludeWeather && !req.IncludeLocalInfo {
		return
	}

	lat, lon, err := s.geocoder.Geocode(ctx, req.Destination)
	if err != nil {
		itinerary.Warnings = append(itinerary.Warnings, "weather and local info skipped: destination could not be located")
		return
	}

	if req.IncludeWeather && s.weather != nil {
		forecast, err := s.weather.GetWeather(ctx, lat, lon, req.Start(), req.End())
		if err != nil {
			log.Printf("weather lookup failed: %v", err)
			itinerary.Warnings = append(itinerary.Warnings, "weather forecast unavailable")
		} else {
			itinerary.Weather = forecast
		}
	}

	if req.IncludeLocalInfo && s.localInfo != nil {
		info, err := s.localInfo.GetLocalInfo(ctx, req.Destination, localeLanguage(req.Locale))
		if err != nil {
			log.Printf("local info lookup failed: %v", err)
			itinerary.Warnings = append(itinerary.Warnings, "local info unavailable")
		} else if info.Summary != "" {
			itinerary.Summary += " About the destination: " + info.Summary
		}
	}
}

func localeLanguage(locale string) string {
	if i := strings.IndexAny(locale, "_-"); i > 0 {
		return locale[:i]
	}
	return locale
}

// DefaultTips is the stock advice used when no enrichment stage supplies
// destination-specific tips.
func DefaultTips() response_models.Tips {
	return response_models.Tips{
		Etiquette: []string{
			"Learn a few greetings in the local language",
			"Check dress codes before visiting religious sites",
			"Tipping customs vary; look up the local norm",
		},
		Packing: []string{
			"Comfortable walking shoes",
			"A refillable water bottle",
			"A light layer for changing weather",
		},
		Safety: []string{
			"Keep copies of your travel documents",
			"Watch belongings in crowded areas",
			"Save the local emergency number",
		},
	}
}
