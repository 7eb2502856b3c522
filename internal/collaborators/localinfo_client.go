package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wayfarer/pkg/utils"
)

type LocalInfo struct {
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	CulturalInfo string   `json:"cultural_info"`
	TravelTips   []string `json:"travel_tips"`
	Attractions  []string `json:"attractions"`
}

type LocalInfoServiceInterface interface {
	GetLocalInfo(ctx context.Context, destination, language string) (*LocalInfo, error)
}

// WikipediaClient pulls the destination page summary from the Wikipedia REST
// API. Local info is optional enrichment; callers tolerate its absence.
type WikipediaClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewWikipediaClient() *WikipediaClient {
	return &WikipediaClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: "https://en.wikipedia.org",
	}
}

func (c *WikipediaClient) GetLocalInfo(ctx context.Context, destination, language string) (*LocalInfo, error) {
	title := strings.ReplaceAll(strings.TrimSpace(destination), " ", "%20")
	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.BaseURL, title)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if language != "" {
		req.Header.Set("Accept-Language", language)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, utils.NewExternalSourceError("localinfo", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("local info for %q: %w", destination, utils.ErrNotFound)
	}
	if resp.StatusCode/100 != 2 {
		return nil, utils.NewExternalSourceError("localinfo", fmt.Errorf("bad status: %s", resp.Status))
	}

	var payload struct {
		Title   string `json:"title"`
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, utils.NewExternalSourceError("localinfo", err)
	}

	return &LocalInfo{
		Title:   payload.Title,
		Summary: payload.Extract,
	}, nil
}
