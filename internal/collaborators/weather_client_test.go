package collaborators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestWeatherDemoModeWithoutKey(t *testing.T) {
	client := NewOpenWeatherClient("")

	days, err := client.GetWeather(context.Background(), 48.8566, 2.3522,
		parseDay(t, "2026-09-01"), parseDay(t, "2026-09-03"))

	require.NoError(t, err)
	require.Len(t, days, 3)
	for i, d := range days {
		assert.Equal(t, 20.0, d.TempC)
		assert.Equal(t, 68.0, d.TempF)
		assert.Contains(t, d.Summary, "(demo)")
		assert.Equal(t, "2026-09-0"+string(rune('1'+i)), d.Date)
	}
}

func TestWeatherRealForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "2", r.URL.Query().Get("cnt"))
		w.Write([]byte(`{"list": [
			{"temp": {"day": 25.0}, "humidity": 40, "speed": 3.1, "weather": [{"main": "Clear", "description": "sunny"}]},
			{"temp": {"day": 18.0}, "humidity": 80, "speed": 6.0, "weather": [{"main": "Rain", "description": "light rain"}]}
		]}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient("test-key")
	client.BaseURL = srv.URL

	days, err := client.GetWeather(context.Background(), 48.8566, 2.3522,
		parseDay(t, "2026-09-01"), parseDay(t, "2026-09-02"))

	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 25.0, days[0].TempC)
	assert.Equal(t, 77.0, days[0].TempF)
	assert.Equal(t, "Clear", days[0].Condition)
	assert.Equal(t, "Rain", days[1].Condition)
	assert.Equal(t, 80, days[1].Humidity)
}
