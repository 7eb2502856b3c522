package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

type PlacesServiceInterface interface {
	SearchPlaces(ctx context.Context, destination string, interests []string, limit int) ([]response_models.POI, error)
}

// FoursquareClient searches live place data. Every returned POI carries at
// least name, category, coordinates and an estimated stay.
type FoursquareClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewFoursquareClient(apiKey string) *FoursquareClient {
	return &FoursquareClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		APIKey:  apiKey,
		BaseURL: "https://api.foursquare.com",
	}
}

func (c *FoursquareClient) SearchPlaces(ctx context.Context, destination string, interests []string, limit int) ([]response_models.POI, error) {
	if c.APIKey == "" {
		return nil, utils.NewExternalSourceError("places", utils.ErrAPIKeyMissing)
	}
	if limit <= 0 {
		limit = 15
	}

	u, _ := url.Parse(c.BaseURL + "/v3/places/search")
	q := url.Values{}
	q.Set("near", destination)
	if len(interests) > 0 {
		q.Set("query", strings.Join(interests, " "))
	}
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, utils.NewExternalSourceError("places", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, utils.ErrRateLimited
	}
	if resp.StatusCode/100 != 2 {
		return nil, utils.NewExternalSourceError("places", fmt.Errorf("bad status: %s", resp.Status))
	}

	var payload struct {
		Results []struct {
			Name       string `json:"name"`
			Categories []struct {
				Name string `json:"name"`
			} `json:"categories"`
			Geocodes struct {
				Main struct {
					Latitude  float64 `json:"latitude"`
					Longitude float64 `json:"longitude"`
				} `json:"main"`
			} `json:"geocodes"`
			Description string  `json:"description"`
			Rating      float64 `json:"rating"`
			Price       int     `json:"price"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, utils.NewExternalSourceError("places", err)
	}

	pois := make([]response_models.POI, 0, len(payload.Results))
	for _, r := range payload.Results {
		category := "poi"
		if len(r.Categories) > 0 {
			category = strings.ToLower(r.Categories[0].Name)
		}
		pois = append(pois, response_models.POI{
			Name:        r.Name,
			Category:    category,
			Lat:         r.Geocodes.Main.Latitude,
			Lon:         r.Geocodes.Main.Longitude,
			Description: r.Description,
			EstStayMin:  defaultStayMinutes(category),
			Rating:      r.Rating,
			PriceLevel:  r.Price,
		})
	}
	return pois, nil
}

func defaultStayMinutes(category string) int {
	switch {
	case strings.Contains(category, "museum"), strings.Contains(category, "gallery"):
		return 120
	case strings.Contains(category, "park"), strings.Contains(category, "garden"):
		return 45
	case strings.Contains(category, "restaurant"), strings.Contains(category, "cafe"):
		return 60
	default:
		return 60
	}
}
