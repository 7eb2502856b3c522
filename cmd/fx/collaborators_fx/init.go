package collaborators_fx

import (
	"os"

	"go.uber.org/fx"

	"wayfarer/internal/collaborators"
)

var Module = fx.Provide(
	provideGeocoder,
	provideWeather,
	providePlaces,
	provideLocalInfo,
	provideDirections,
)

func provideGeocoder() collaborators.GeocodeServiceInterface {
	return collaborators.NewNominatimClient()
}

func provideWeather() collaborators.WeatherServiceInterface {
	return collaborators.NewOpenWeatherClient(os.Getenv("OPENWEATHER_API_KEY"))
}

func providePlaces() collaborators.PlacesServiceInterface {
	return collaborators.NewFoursquareClient(os.Getenv("FOURSQUARE_API_KEY"))
}

func provideLocalInfo() collaborators.LocalInfoServiceInterface {
	return collaborators.NewWikipediaClient()
}

// provideDirections returns nil without a token; the router keeps its
// geometric estimates.
func provideDirections() collaborators.DirectionsServiceInterface {
	token := os.Getenv("MAPBOX_ACCESS_TOKEN")
	if token == "" {
		return nil
	}
	return collaborators.NewMapboxDirectionsClient(token, collaborators.NewInMemoryLegCache())
}
