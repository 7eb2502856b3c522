package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wayfarer/pkg/utils"
)

type GeocodeServiceInterface interface {
	Geocode(ctx context.Context, city string) (lat, lon float64, err error)
}

// NominatimClient resolves a free-text destination to coordinates using the
// OpenStreetMap Nominatim search API.
type NominatimClient struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

func NewNominatimClient() *NominatimClient {
	return &NominatimClient{
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: "wayfarer",
	}
}

func (c *NominatimClient) Geocode(ctx context.Context, city string) (float64, float64, error) {
	u, _ := url.Parse(c.BaseURL + "/search")
	q := url.Values{}
	q.Set("q", city)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, 0, utils.NewExternalSourceError("geocode", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, 0, utils.ErrRateLimited
	}
	if resp.StatusCode/100 != 2 {
		return 0, 0, utils.NewExternalSourceError("geocode", fmt.Errorf("bad status: %s", resp.Status))
	}

	var payload []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, utils.NewExternalSourceError("geocode", err)
	}
	if len(payload) == 0 {
		return 0, 0, fmt.Errorf("destination %q: %w", city, utils.ErrNotFound)
	}

	lat, _ := strconv.ParseFloat(payload[0].Lat, 64)
	lon, _ := strconv.ParseFloat(payload[0].Lon, 64)
	return lat, lon, nil
}
