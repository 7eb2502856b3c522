package services

import (
	"context"
	"fmt"
	"strings"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

// Per-slot stop caps. Lunch and dinner are notes, not scheduled stops.
const (
	morningCap   = 2
	afternoonCap = 3
	eveningCap   = 3
)

// SchedulerConfig tunes how full each day may get. The derate kicks in for
// large parties, which move slower between stops.
type SchedulerConfig struct {
	RelaxedStayMin  int
	BalancedStayMin int
	PackedStayMin   int

	LargePartySize   int
	LargePartyDerate float64
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		RelaxedStayMin:   240,
		BalancedStayMin:  330,
		PackedStayMin:    420,
		LargePartySize:   6,
		LargePartyDerate: 0.85,
	}
}

func (c SchedulerConfig) dayBudget(req *request_models.TripRequest) int {
	budget := c.BalancedStayMin
	switch req.Pace {
	case request_models.PaceRelaxed:
		budget = c.RelaxedStayMin
	case request_models.PacePacked:
		budget = c.PackedStayMin
	}
	if req.Party > c.LargePartySize {
		budget = int(float64(budget) * c.LargePartyDerate)
	}
	return budget
}

// SchedulerServiceInterface distributes candidates over the trip span.
// Every input candidate ends up either scheduled or in the omitted list.
type SchedulerServiceInterface interface {
	Schedule(ctx context.Context, req *request_models.TripRequest, anchorLat, anchorLon float64, candidates []response_models.POI) ([]response_models.Day, []response_models.POI, error)
}

type schedulerService struct {
	router RouterServiceInterface
	config SchedulerConfig
}

func NewSchedulerService(router RouterServiceInterface, config SchedulerConfig) SchedulerServiceInterface {
	return &schedulerService{router: router, config: config}
}

// Schedule always returns exactly one Day per calendar date in the span,
// even when candidates run out; empty days are the caller's signal that the
// destination lacks data.
func (s *schedulerService) Schedule(ctx context.Context, req *request_models.TripRequest, anchorLat, anchorLon float64, candidates []response_models.POI) ([]response_models.Day, []response_models.POI, error) {
	dates := utils.DateRange(req.Start(), req.End())
	if len(dates) == 0 {
		return nil, nil, fmt.Errorf("%w: empty trip span", utils.ErrInvalidInput)
	}

	budget := s.config.dayBudget(req)
	days := make([]response_models.Day, len(dates))
	remaining := append([]response_models.POI(nil), candidates...)

	for i := range days {
		days[i].Date = dates[i]
		remaining = s.fillDay(&days[i], remaining, budget)
	}

	days, remaining = s.improveCoverage(days, remaining, req.Interests, budget)

	anchorAt := anchorLat
	anchorOn := anchorLon
	for i := range days {
		s.arrangeDay(ctx, &days[i], anchorAt, anchorOn, req.TransportMode)
		if stops := days[i].Stops(); len(stops) > 0 {
			if last := stops[len(stops)-1]; last.HasCoordinates() {
				// Next morning starts near where the previous evening ended.
				anchorAt, anchorOn = last.Lat, last.Lon
			}
		}
		s.annotateMeals(&days[i], req.Destination)
	}

	return days, remaining, nil
}

func stayMinutes(p response_models.POI) int {
	if p.EstStayMin <= 0 {
		return 60
	}
	return p.EstStayMin
}

func dayStayMinutes(day response_models.Day) int {
	total := 0
	for _, stop := range day.Stops() {
		total += stayMinutes(stop)
	}
	return total
}

// fillDay takes candidates in relevance order until the stay budget or slot
// caps are hit. Candidates that do not fit are deferred, not dropped.
func (s *schedulerService) fillDay(day *response_models.Day, remaining []response_models.POI, budget int) []response_models.POI {
	used := 0
	deferred := remaining[:0:0]

	for _, cand := range remaining {
		stay := stayMinutes(cand)

		placed := false
		if used+stay <= budget {
			switch {
			case len(day.Morning) < morningCap:
				day.Morning = append(day.Morning, cand)
				placed = true
			case len(day.Afternoon) < afternoonCap:
				day.Afternoon = append(day.Afternoon, cand)
				placed = true
			case len(day.Evening) < eveningCap:
				day.Evening = append(day.Evening, cand)
				placed = true
			}
		}
		if placed {
			used += stay
		} else {
			deferred = append(deferred, cand)
		}
	}
	return deferred
}

// improveCoverage swaps an omitted candidate in for a scheduled one when it
// covers an interest that would otherwise go entirely unrepresented.
func (s *schedulerService) improveCoverage(days []response_models.Day, omitted []response_models.POI, interests []string, budget int) ([]response_models.Day, []response_models.POI) {
	if len(omitted) == 0 || len(interests) == 0 {
		return days, omitted
	}

	covered := make(map[string]bool, len(interests))
	for _, day := range days {
		for _, stop := range day.Stops() {
			for _, interest := range interests {
				if interestMatches(stop, []string{interest}) > 0 {
					covered[strings.ToLower(interest)] = true
				}
			}
		}
	}

	for _, interest := range interests {
		if covered[strings.ToLower(interest)] {
			continue
		}
		candIdx := -1
		for i, cand := range omitted {
			if interestMatches(cand, []string{interest}) > 0 {
				candIdx = i
				break
			}
		}
		if candIdx < 0 {
			continue
		}

		// Swap out the last zero-match stop of the fullest slot we can find.
		if s.swapIn(days, &omitted, candIdx, interests, budget) {
			covered[strings.ToLower(interest)] = true
		}
	}
	return days, omitted
}

func (s *schedulerService) swapIn(days []response_models.Day, omitted *[]response_models.POI, candIdx int, interests []string, budget int) bool {
	cand := (*omitted)[candIdx]
	for di := len(days) - 1; di >= 0; di-- {
		used := dayStayMinutes(days[di])
		for _, slot := range []*[]response_models.POI{&days[di].Evening, &days[di].Afternoon, &days[di].Morning} {
			for si := len(*slot) - 1; si >= 0; si-- {
				if interestMatches((*slot)[si], interests) > 0 {
					continue
				}
				evicted := (*slot)[si]
				// The swap must still fit the day's stay budget.
				if used-stayMinutes(evicted)+stayMinutes(cand) > budget {
					continue
				}
				(*slot)[si] = cand
				(*omitted)[candIdx] = evicted
				return true
			}
		}
	}
	return false
}

// arrangeDay orders each slot geographically and recomputes the transfer
// chain across the whole day.
func (s *schedulerService) arrangeDay(ctx context.Context, day *response_models.Day, anchorLat, anchorLon float64, mode string) {
	curLat, curLon := anchorLat, anchorLon
	orderSlot := func(slot []response_models.POI) []response_models.POI {
		if len(slot) == 0 {
			return slot
		}
		ordered := s.router.Order(curLat, curLon, slot)
		if last := ordered[len(ordered)-1]; last.HasCoordinates() {
			curLat, curLon = last.Lat, last.Lon
		}
		return ordered
	}

	day.Morning = orderSlot(day.Morning)
	day.Afternoon = orderSlot(day.Afternoon)
	day.Evening = orderSlot(day.Evening)

	stops := day.Stops()
	day.Transfers = make([]response_models.Transfer, 0, len(stops))
	for i := 1; i < len(stops); i++ {
		day.Transfers = append(day.Transfers, s.router.EstimateTransfer(ctx, stops[i-1], stops[i], mode))
	}
}

func (s *schedulerService) annotateMeals(day *response_models.Day, destination string) {
	if len(day.Morning) == 0 && len(day.Afternoon) == 0 && len(day.Evening) == 0 {
		return
	}
	lunchNear := destination
	if n := len(day.Morning); n > 0 {
		lunchNear = day.Morning[n-1].Name
	}
	dinnerNear := lunchNear
	if n := len(day.Afternoon); n > 0 {
		dinnerNear = day.Afternoon[n-1].Name
	}
	day.Lunch = "Local lunch near " + lunchNear
	day.Dinner = "Dinner near " + dinnerNear
}
