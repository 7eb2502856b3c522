package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, lat, lon float64, start, end time.Time) ([]response_models.WeatherDay, error)
}

// OpenWeatherClient fetches a daily forecast. Without an API key it serves a
// mild demo forecast so schedule construction never depends on weather.
type OpenWeatherClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewOpenWeatherClient(apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		APIKey:  apiKey,
		BaseURL: "https://api.openweathermap.org",
	}
}

func (c *OpenWeatherClient) GetWeather(ctx context.Context, lat, lon float64, start, end time.Time) ([]response_models.WeatherDay, error) {
	dates := utils.DateRange(start, end)

	if c.APIKey == "" {
		out := make([]response_models.WeatherDay, 0, len(dates))
		for _, d := range dates {
			out = append(out, response_models.WeatherDay{
				Date:      d,
				TempC:     20,
				TempF:     68,
				Condition: "clear",
				Summary:   "(demo) mild, chance of clouds",
			})
		}
		return out, nil
	}

	u, _ := url.Parse(c.BaseURL + "/data/2.5/forecast/daily")
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("cnt", strconv.Itoa(len(dates)))
	q.Set("units", "metric")
	q.Set("appid", c.APIKey)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, utils.NewExternalSourceError("weather", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, utils.ErrRateLimited
	}
	if resp.StatusCode/100 != 2 {
		return nil, utils.NewExternalSourceError("weather", fmt.Errorf("bad status: %s", resp.Status))
	}

	var payload struct {
		List []struct {
			Temp struct {
				Day float64 `json:"day"`
			} `json:"temp"`
			Humidity int     `json:"humidity"`
			Speed    float64 `json:"speed"`
			Weather  []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, utils.NewExternalSourceError("weather", err)
	}

	out := make([]response_models.WeatherDay, 0, len(dates))
	for i, d := range dates {
		day := response_models.WeatherDay{Date: d, Condition: "clear"}
		if i < len(payload.List) {
			entry := payload.List[i]
			day.TempC = entry.Temp.Day
			day.TempF = entry.Temp.Day*9/5 + 32
			day.Humidity = entry.Humidity
			day.WindSpeed = entry.Speed
			if len(entry.Weather) > 0 {
				day.Condition = entry.Weather[0].Main
				day.Summary = entry.Weather[0].Description
			}
		}
		out = append(out, day)
	}
	return out, nil
}
