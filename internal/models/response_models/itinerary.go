package response_models

// POI is a visitable place produced by a candidate supplier. Immutable once
// built; schedulers copy slices, never edit entries in place.
type POI struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	EstStayMin  int      `json:"est_stay_min"`
	Rating      float64  `json:"rating,omitempty"`
	PriceLevel  int      `json:"price_level,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// HasCoordinates reports whether the POI can participate in routing.
func (p POI) HasCoordinates() bool {
	return p.Lat != 0 || p.Lon != 0
}

// Transfer is the movement segment between two consecutive POIs in a slot.
// Always derived from the router, never user-supplied.
type Transfer struct {
	FromPlace  string  `json:"from_place"`
	ToPlace    string  `json:"to_place"`
	TravelMin  int     `json:"travel_min"`
	DistanceKM float64 `json:"distance_km"`
	Mode       string  `json:"mode"`
}

type Day struct {
	Date      string     `json:"date"`
	Morning   []POI      `json:"morning"`
	Lunch     string     `json:"lunch,omitempty"`
	Afternoon []POI      `json:"afternoon"`
	Dinner    string     `json:"dinner,omitempty"`
	Evening   []POI      `json:"evening"`
	Transfers []Transfer `json:"transfers"`
}

// Stops returns all POIs of the day in visiting order.
func (d Day) Stops() []POI {
	out := make([]POI, 0, len(d.Morning)+len(d.Afternoon)+len(d.Evening))
	out = append(out, d.Morning...)
	out = append(out, d.Afternoon...)
	out = append(out, d.Evening...)
	return out
}

type Tips struct {
	Etiquette []string `json:"etiquette"`
	Packing   []string `json:"packing"`
	Safety    []string `json:"safety"`
}

type WeatherDay struct {
	Date      string  `json:"date"`
	TempC     float64 `json:"temp_c"`
	TempF     float64 `json:"temp_f"`
	Condition string  `json:"condition"`
	Humidity  int     `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	Summary   string  `json:"summary"`
}

type Itinerary struct {
	Summary  string       `json:"summary"`
	Days     []Day        `json:"days"`
	Tips     Tips         `json:"tips"`
	Weather  []WeatherDay `json:"weather,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
	// Omitted lists candidates that did not fit the schedule so callers can
	// audit what was cut.
	Omitted []POI `json:"omitted,omitempty"`
}

// PlanResult is the envelope returned to the HTTP layer.
type PlanResult struct {
	Itinerary      Itinerary `json:"itinerary"`
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	Mode           string    `json:"mode"`
	ProcessingTime float64   `json:"processing_time"`
}
