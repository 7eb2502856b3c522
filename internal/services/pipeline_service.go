package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"wayfarer/internal/collaborators"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

const (
	// Stage names, in execution order.
	stageResearch   = "research"
	stageSelection  = "selection"
	stageDrafting   = "drafting"
	stageEnrichment = "enrichment"
	stageCritique   = "critique"

	maxSelectedCandidates = 20

	// A day asking for more than this much walking fails critique.
	maxDailyWalkMin = 120
)

// PipelineOutput is the crew pipeline's final artifact set.
type PipelineOutput struct {
	Overview string
	Days     []response_models.Day
	Omitted  []response_models.POI
	Tips     response_models.Tips
	Warnings []string
}

// PipelineServiceInterface runs the staged planning pipeline: research,
// selection, drafting, enrichment, critique. Stages run sequentially and
// each consumes the previous stage's artifacts without mutating them.
type PipelineServiceInterface interface {
	Run(ctx context.Context, req *request_models.TripRequest) (*PipelineOutput, error)
}

type pipelineService struct {
	llm       utils.LLMClientInterface
	geocoder  collaborators.GeocodeServiceInterface
	supplier  POISupplierInterface
	scheduler SchedulerServiceInterface
}

func NewPipelineService(
	llm utils.LLMClientInterface,
	geocoder collaborators.GeocodeServiceInterface,
	supplier POISupplierInterface,
	scheduler SchedulerServiceInterface,
) PipelineServiceInterface {
	return &pipelineService{
		llm:       llm,
		geocoder:  geocoder,
		supplier:  supplier,
		scheduler: scheduler,
	}
}

type researchNotes struct {
	Overview string                `json:"overview"`
	Places   []response_models.POI `json:"places"`
}

func (s *pipelineService) Run(ctx context.Context, req *request_models.TripRequest) (*PipelineOutput, error) {
	if s.llm == nil {
		return nil, utils.NewAgentStageError(stageResearch, utils.ErrAPIKeyMissing)
	}

	notes, err := s.research(ctx, req)
	if err != nil {
		return nil, utils.NewAgentStageError(stageResearch, err)
	}

	candidates, err := s.selection(ctx, req, notes)
	if err != nil {
		return nil, utils.NewAgentStageError(stageSelection, err)
	}

	anchorLat, anchorLon, err := s.geocoder.Geocode(ctx, req.Destination)
	if err != nil {
		return nil, utils.NewAgentStageError(stageDrafting, err)
	}

	days, omitted, err := s.scheduler.Schedule(ctx, req, anchorLat, anchorLon, candidates)
	if err != nil {
		return nil, utils.NewAgentStageError(stageDrafting, err)
	}

	tips := s.enrichment(ctx, req)

	// Critique gets exactly one shot at a revision. A second failure only
	// produces warnings; the schedule ships as-is.
	violations, reduced := s.critique(days, candidates)
	var warnings []string
	if len(violations) > 0 && len(reduced) < len(candidates) {
		log.Printf("critique flagged %d issue(s), revising schedule once", len(violations))
		revisedDays, revisedOmitted, err := s.scheduler.Schedule(ctx, req, anchorLat, anchorLon, reduced)
		if err != nil {
			return nil, utils.NewAgentStageError(stageCritique, err)
		}
		// Candidates the critique removed still belong in the omission
		// audit; every original candidate is either scheduled or omitted.
		days, omitted = revisedDays, append(revisedOmitted, diffPOIs(candidates, reduced)...)
		if remaining, _ := s.critique(days, reduced); len(remaining) > 0 {
			warnings = remaining
		}
	} else {
		warnings = violations
	}

	return &PipelineOutput{
		Overview: notes.Overview,
		Days:     days,
		Omitted:  omitted,
		Tips:     tips,
		Warnings: warnings,
	}, nil
}

func (s *pipelineService) research(ctx context.Context, req *request_models.TripRequest) (*researchNotes, error) {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("Research %s for a %d-day trip.\n", req.Destination, req.Days()))
	if len(req.Interests) > 0 {
		prompt.WriteString(fmt.Sprintf("Traveler interests: %s.\n", strings.Join(req.Interests, ", ")))
	}
	prompt.WriteString(fmt.Sprintf("Budget level: %s. Pace: %s.\n\n", req.BudgetLevel, req.Pace))
	prompt.WriteString("Return JSON in this exact format:\n")
	prompt.WriteString(`{
  "overview": "two sentence destination overview",
  "places": [
    {
      "name": "place name",
      "category": "museum|landmark|park|food|neighborhood",
      "lat": 0.0,
      "lon": 0.0,
      "description": "one sentence",
      "est_stay_min": 60
    }
  ]
}`)
	prompt.WriteString("\nList 10 to 15 places with real coordinates. Return ONLY valid JSON.")

	raw, err := s.llm.GenerateJSON(ctx, prompt.String())
	if err != nil {
		return nil, err
	}

	var notes researchNotes
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("research notes: %w", utils.ErrUnexpectedLLM)
	}
	if len(notes.Places) == 0 {
		return nil, fmt.Errorf("research produced no places: %w", utils.ErrNoCandidates)
	}
	return &notes, nil
}

// selection merges live supplier results with the research suggestions and
// keeps the most relevant. Live failures are tolerated when research already
// produced enough material.
func (s *pipelineService) selection(ctx context.Context, req *request_models.TripRequest, notes *researchNotes) ([]response_models.POI, error) {
	merged := append([]response_models.POI(nil), notes.Places...)

	if s.supplier != nil {
		live, err := s.supplier.Fetch(ctx, req)
		if err != nil {
			log.Printf("live candidate fetch failed, continuing with research places: %v", err)
		} else {
			merged = append(merged, live...)
		}
	}

	merged = dedupePOIs(merged)
	sortByRelevance(merged, req.Interests)
	if len(merged) > maxSelectedCandidates {
		merged = merged[:maxSelectedCandidates]
	}
	if len(merged) == 0 {
		return nil, utils.ErrNoCandidates
	}
	return merged, nil
}

// enrichment asks for local tips. A failed call degrades to stock tips
// rather than failing the whole pipeline.
func (s *pipelineService) enrichment(ctx context.Context, req *request_models.TripRequest) response_models.Tips {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("Give practical travel tips for %s.\n", req.Destination))
	prompt.WriteString("Return JSON in this exact format:\n")
	prompt.WriteString(`{"etiquette": ["..."], "packing": ["..."], "safety": ["..."]}`)
	prompt.WriteString("\nThree short items per list. Return ONLY valid JSON.")

	raw, err := s.llm.GenerateJSON(ctx, prompt.String())
	if err == nil {
		var tips response_models.Tips
		if json.Unmarshal([]byte(raw), &tips) == nil && len(tips.Etiquette)+len(tips.Packing)+len(tips.Safety) > 0 {
			return tips
		}
	}
	log.Printf("tip enrichment failed for %q, using defaults: %v", req.Destination, err)
	return DefaultTips()
}

// critique runs the deterministic quality checks: no stop appears twice and
// no day demands an unreasonable amount of walking. It returns the
// violations and a candidate list with the offenders removed.
func (s *pipelineService) critique(days []response_models.Day, candidates []response_models.POI) ([]string, []response_models.POI) {
	var violations []string
	drop := make(map[string]bool)

	seen := make(map[string]bool)
	for _, day := range days {
		for _, stop := range day.Stops() {
			key := strings.ToLower(stop.Name)
			if seen[key] {
				violations = append(violations, fmt.Sprintf("%s appears more than once", stop.Name))
				drop[key] = true
			}
			seen[key] = true
		}

		walk := 0
		for _, t := range day.Transfers {
			if t.Mode == "walking" || t.Mode == "" {
				walk += t.TravelMin
			}
		}
		if walk > maxDailyWalkMin {
			violations = append(violations, fmt.Sprintf("day %s requires %d minutes of walking", day.Date, walk))
			if stops := day.Stops(); len(stops) > 0 {
				drop[strings.ToLower(stops[len(stops)-1].Name)] = true
			}
		}
	}

	if len(drop) == 0 {
		return violations, candidates
	}
	reduced := make([]response_models.POI, 0, len(candidates))
	for _, c := range candidates {
		if !drop[strings.ToLower(c.Name)] {
			reduced = append(reduced, c)
		}
	}
	return violations, reduced
}

// diffPOIs returns the entries of all that are absent from kept, by name.
func diffPOIs(all, kept []response_models.POI) []response_models.POI {
	keptNames := make(map[string]bool, len(kept))
	for _, c := range kept {
		keptNames[strings.ToLower(c.Name)] = true
	}
	var missing []response_models.POI
	for _, c := range all {
		if !keptNames[strings.ToLower(c.Name)] {
			missing = append(missing, c)
		}
	}
	return missing
}
