package domain

import "context"

// WeatherProvider fetches conditions from the weather upstream.
type WeatherProvider interface {
	// CurrentWeather returns current conditions for a city by name.
	CurrentWeather(ctx context.Context, city string) (WeatherSnapshot, error)

	// ForecastCheck calls the forecast endpoint for the given coordinates.
	// Only success or failure matters; the payload is not used.
	ForecastCheck(ctx context.Context, lat, lon float64) error
}

// NewsProvider fetches headlines mentioning flooding in a city.
type NewsProvider interface {
	Headlines(ctx context.Context, city string) ([]NewsItem, error)
}
