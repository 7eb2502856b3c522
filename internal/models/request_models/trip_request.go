package request_models

import (
	"fmt"
	"strings"
	"time"

	"wayfarer/pkg/utils"
)

const (
	PaceRelaxed  = "relaxed"
	PaceBalanced = "balanced"
	PacePacked   = "packed"

	BudgetLow  = "low"
	BudgetMid  = "mid"
	BudgetHigh = "high"
)

const (
	MaxTripDays     = 30
	MaxInterests    = 20
	MaxPartySize    = 20
	dateLayout      = "2006-01-02"
	defaultLocale   = "en_US"
	defaultTranMode = "walking"
)

type TripRequest struct {
	Destination      string   `json:"destination"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Interests        []string `json:"interests"`
	Pace             string   `json:"pace"`
	BudgetLevel      string   `json:"budget_level"`
	Party            int      `json:"party"`
	Locale           string   `json:"locale"`
	TransportMode    string   `json:"transport_mode"`
	IncludeWeather   bool     `json:"include_weather"`
	IncludeLocalInfo bool     `json:"include_local_info"`
}

// Normalize fills defaults for optional fields. Called before Validate.
func (r *TripRequest) Normalize() {
	r.Destination = strings.TrimSpace(r.Destination)
	if r.Pace == "" {
		r.Pace = PaceBalanced
	}
	if r.BudgetLevel == "" {
		r.BudgetLevel = BudgetMid
	}
	if r.Party == 0 {
		r.Party = 1
	}
	if r.Locale == "" {
		r.Locale = defaultLocale
	}
	if r.TransportMode == "" {
		r.TransportMode = defaultTranMode
	}
}

// Validate rejects malformed requests before any planning component runs.
// All failures wrap ErrValidation so the HTTP layer maps them to 400.
func (r *TripRequest) Validate() error {
	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrValidation)
	}
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", utils.ErrValidation)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end_date must be YYYY-MM-DD", utils.ErrValidation)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date must not precede start_date", utils.ErrValidation)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxTripDays {
		return fmt.Errorf("%w: trip span %d days exceeds %d-day limit", utils.ErrValidation, days, MaxTripDays)
	}
	if len(r.Interests) > MaxInterests {
		return fmt.Errorf("%w: at most %d interests allowed", utils.ErrValidation, MaxInterests)
	}
	switch r.Pace {
	case PaceRelaxed, PaceBalanced, PacePacked:
	default:
		return fmt.Errorf("%w: pace must be relaxed, balanced or packed", utils.ErrValidation)
	}
	switch r.BudgetLevel {
	case BudgetLow, BudgetMid, BudgetHigh:
	default:
		return fmt.Errorf("%w: budget_level must be low, mid or high", utils.ErrValidation)
	}
	if r.Party < 1 || r.Party > MaxPartySize {
		return fmt.Errorf("%w: party must be between 1 and %d", utils.ErrValidation, MaxPartySize)
	}
	return nil
}

// Start returns the parsed start date. Only meaningful after Validate.
func (r *TripRequest) Start() time.Time {
	t, _ := time.Parse(dateLayout, r.StartDate)
	return t
}

// End returns the parsed end date. Only meaningful after Validate.
func (r *TripRequest) End() time.Time {
	t, _ := time.Parse(dateLayout, r.EndDate)
	return t
}

// Days returns the trip span in days, inclusive of both endpoints.
func (r *TripRequest) Days() int {
	return int(r.End().Sub(r.Start()).Hours()/24) + 1
}
