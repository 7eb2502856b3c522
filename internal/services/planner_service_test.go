package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/collaborators"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

type stubPipeline struct {
	out   *PipelineOutput
	err   error
	calls int
}

func (s *stubPipeline) Run(ctx context.Context, req *request_models.TripRequest) (*PipelineOutput, error) {
	s.calls++
	return s.out, s.err
}

type stubWeather struct {
	days []response_models.WeatherDay
	err  error
}

func (s *stubWeather) GetWeather(ctx context.Context, lat, lon float64, start, end time.Time) ([]response_models.WeatherDay, error) {
	return s.days, s.err
}

type stubLocalInfo struct {
	info *collaborators.LocalInfo
	err  error
}

func (s *stubLocalInfo) GetLocalInfo(ctx context.Context, destination, language string) (*collaborators.LocalInfo, error) {
	return s.info, s.err
}

func newTestPlanner(supplier POISupplierInterface, pipeline PipelineServiceInterface) PlannerServiceInterface {
	scheduler := NewSchedulerService(NewRouterService(nil), DefaultSchedulerConfig())
	return NewPlannerService(
		&stubGeocoder{lat: 48.8566, lon: 2.3522},
		&stubWeather{},
		&stubLocalInfo{},
		supplier,
		scheduler,
		pipeline,
		time.Second,
	)
}

func plannerRequest() *request_models.TripRequest {
	return &request_models.TripRequest{
		Destination: "Paris",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-03",
		Interests:   []string{"art"},
	}
}

func TestPlanRejectsInvalidRequest(t *testing.T) {
	p := newTestPlanner(&stubSupplier{}, nil)

	req := plannerRequest()
	req.StartDate = "not-a-date"

	_, err := p.Plan(context.Background(), req, ModeGraph)
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestPlanRejectsUnknownMode(t *testing.T) {
	p := newTestPlanner(&stubSupplier{}, nil)

	_, err := p.Plan(context.Background(), plannerRequest(), "psychic")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestPlanGraphMode(t *testing.T) {
	supplier := &stubSupplier{pois: seedCatalogFor("Paris")}
	p := newTestPlanner(supplier, nil)

	result, err := p.Plan(context.Background(), plannerRequest(), ModeGraph)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, ModeGraph, result.Mode)
	assert.Len(t, result.Itinerary.Days, 3)
	assert.Contains(t, result.Itinerary.Summary, "Paris 2026-09-01~2026-09-03")
	assert.Contains(t, result.Itinerary.Summary, "interests: art")
	assert.Equal(t, DefaultTips(), result.Itinerary.Tips)
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)
}

func TestPlanDefaultsToGraphMode(t *testing.T) {
	supplier := &stubSupplier{pois: seedCatalogFor("Paris")}
	p := newTestPlanner(supplier, nil)

	result, err := p.Plan(context.Background(), plannerRequest(), "")

	require.NoError(t, err)
	assert.Equal(t, ModeGraph, result.Mode)
}

func TestPlanCrewSuccess(t *testing.T) {
	pipeline := &stubPipeline{out: &PipelineOutput{
		Overview: "A city of art.",
		Days: []response_models.Day{
			{Date: "2026-09-01", Morning: []response_models.POI{poi("Louvre", 48.86, 2.33)}},
			{Date: "2026-09-02"},
			{Date: "2026-09-03"},
		},
		Tips: response_models.Tips{Etiquette: []string{"Say bonjour"}},
	}}
	p := newTestPlanner(&stubSupplier{}, pipeline)

	result, err := p.Plan(context.Background(), plannerRequest(), ModeCrew)

	require.NoError(t, err)
	assert.Equal(t, ModeCrew, result.Mode)
	assert.Equal(t, 1, pipeline.calls)
	assert.Contains(t, result.Itinerary.Summary, "A city of art.")
	assert.Equal(t, []string{"Say bonjour"}, result.Itinerary.Tips.Etiquette)
}

func TestPlanCrewFallsBackToGraph(t *testing.T) {
	pipeline := &stubPipeline{err: utils.NewAgentStageError("research", assert.AnError)}
	supplier := &stubSupplier{pois: seedCatalogFor("Paris")}
	p := newTestPlanner(supplier, pipeline)

	result, err := p.Plan(context.Background(), plannerRequest(), ModeCrew)

	require.NoError(t, err)
	assert.Equal(t, ModeGraph, result.Mode)
	require.NotEmpty(t, result.Itinerary.Warnings)
	assert.Contains(t, result.Itinerary.Warnings[0], "deterministic planner")
}

func TestPlanCrewFallbackIsRepeatable(t *testing.T) {
	pipeline := &stubPipeline{err: utils.ErrRateLimited}
	supplier := &stubSupplier{pois: seedCatalogFor("Paris")}
	p := newTestPlanner(supplier, pipeline)

	first, err := p.Plan(context.Background(), plannerRequest(), ModeCrew)
	require.NoError(t, err)
	second, err := p.Plan(context.Background(), plannerRequest(), ModeCrew)
	require.NoError(t, err)

	assert.Equal(t, first.Itinerary.Days, second.Itinerary.Days)
	assert.Equal(t, first.Mode, second.Mode)
}

func TestPlanCrewWithoutPipelineFallsBack(t *testing.T) {
	supplier := &stubSupplier{pois: seedCatalogFor("Paris")}
	p := newTestPlanner(supplier, nil)

	result, err := p.Plan(context.Background(), plannerRequest(), ModeCrew)

	require.NoError(t, err)
	assert.Equal(t, ModeGraph, result.Mode)
}

func TestPlanCrewNonFallbackErrorPropagates(t *testing.T) {
	pipeline := &stubPipeline{err: fmt.Errorf("%w: bad span", utils.ErrInvalidInput)}
	p := newTestPlanner(&stubSupplier{}, pipeline)

	_, err := p.Plan(context.Background(), plannerRequest(), ModeCrew)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestPlanEmptyCandidatesWarns(t *testing.T) {
	p := newTestPlanner(&stubSupplier{}, nil)

	result, err := p.Plan(context.Background(), plannerRequest(), ModeGraph)

	require.NoError(t, err)
	require.Len(t, result.Itinerary.Days, 3)
	require.NotEmpty(t, result.Itinerary.Warnings)
	assert.Contains(t, result.Itinerary.Warnings[0], "no attraction data")
}

func TestPlanWarnsAboutStopsWithoutCoordinates(t *testing.T) {
	supplier := &stubSupplier{pois: []response_models.POI{
		{Name: "Louvre Museum", Category: "museum", Lat: 48.8606, Lon: 2.3376, EstStayMin: 120},
		{Name: "Mystery Market", Category: "food", EstStayMin: 60},
	}}
	p := newTestPlanner(supplier, nil)

	result, err := p.Plan(context.Background(), plannerRequest(), ModeGraph)

	require.NoError(t, err)
	scheduled := false
	for _, day := range result.Itinerary.Days {
		for _, stop := range day.Stops() {
			if stop.Name == "Mystery Market" {
				scheduled = true
			}
		}
	}
	assert.True(t, scheduled, "stop without coordinates stays scheduled")

	flagged := false
	for _, w := range result.Itinerary.Warnings {
		if strings.Contains(w, "Mystery Market") {
			flagged = true
		}
	}
	assert.True(t, flagged, "stop without coordinates must be flagged")
}

func TestPlanIncludesWeatherOnRequest(t *testing.T) {
	scheduler := NewSchedulerService(NewRouterService(nil), DefaultSchedulerConfig())
	weather := &stubWeather{days: []response_models.WeatherDay{{Date: "2026-09-01", TempC: 21, Condition: "clear"}}}
	p := NewPlannerService(
		&stubGeocoder{lat: 48.8566, lon: 2.3522},
		weather,
		&stubLocalInfo{},
		&stubSupplier{pois: seedCatalogFor("Paris")},
		scheduler,
		nil,
		time.Second,
	)

	req := plannerRequest()
	req.IncludeWeather = true

	result, err := p.Plan(context.Background(), req, ModeGraph)

	require.NoError(t, err)
	require.Len(t, result.Itinerary.Weather, 1)
	assert.Equal(t, "clear", result.Itinerary.Weather[0].Condition)
}

func TestPlanLocalInfoAppendsSummary(t *testing.T) {
	scheduler := NewSchedulerService(NewRouterService(nil), DefaultSchedulerConfig())
	p := NewPlannerService(
		&stubGeocoder{lat: 48.8566, lon: 2.3522},
		&stubWeather{},
		&stubLocalInfo{info: &collaborators.LocalInfo{Summary: "Capital of France."}},
		&stubSupplier{pois: seedCatalogFor("Paris")},
		scheduler,
		nil,
		time.Second,
	)

	req := plannerRequest()
	req.IncludeLocalInfo = true

	result, err := p.Plan(context.Background(), req, ModeGraph)

	require.NoError(t, err)
	assert.Contains(t, result.Itinerary.Summary, "Capital of France.")
}

func TestPlanWeatherFailureBecomesWarning(t *testing.T) {
	scheduler := NewSchedulerService(NewRouterService(nil), DefaultSchedulerConfig())
	p := NewPlannerService(
		&stubGeocoder{lat: 48.8566, lon: 2.3522},
		&stubWeather{err: assert.AnError},
		&stubLocalInfo{},
		&stubSupplier{pois: seedCatalogFor("Paris")},
		scheduler,
		nil,
		time.Second,
	)

	req := plannerRequest()
	req.IncludeWeather = true

	result, err := p.Plan(context.Background(), req, ModeGraph)

	require.NoError(t, err)
	assert.Contains(t, result.Itinerary.Warnings, "weather forecast unavailable")
	assert.Empty(t, result.Itinerary.Weather)
}
