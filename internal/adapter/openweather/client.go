package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/flood-risk-service/internal/adapter/upstream"
	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/couchcryptid/flood-risk-service/internal/observability"
)

// DefaultBaseURL is the OpenWeather 2.5 data API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client implements domain.WeatherProvider using the OpenWeather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client. httpClient is shared with the
// other upstream adapters, see upstream.NewHTTPClient.
func NewClient(apiKey, baseURL string, httpClient *http.Client, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// CurrentWeather fetches current conditions for a city in metric units.
func (c *Client) CurrentWeather(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	body, err := c.get(ctx, domain.SourceWeather, c.baseURL+"/weather?"+params.Encode())
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}

	var resp currentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.WeatherSnapshot{}, &domain.UpstreamError{Source: domain.SourceWeather, Err: fmt.Errorf("decode response: %w", err)}
	}
	snap, err := resp.snapshot()
	if err != nil {
		return domain.WeatherSnapshot{}, &domain.UpstreamError{Source: domain.SourceWeather, Err: err}
	}

	c.logger.Debug("current weather fetched",
		"city", city,
		"rain_1h", snap.Rain1h,
		"rain_3h", snap.Rain3h,
	)
	return snap, nil
}

// ForecastCheck calls the 5-day forecast endpoint for the coordinates. The
// free tier has no UV index, so nothing from the payload is kept; a response
// without a "city" block is still treated as malformed.
func (c *Client) ForecastCheck(ctx context.Context, lat, lon float64) error {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	body, err := c.get(ctx, domain.SourceForecast, c.baseURL+"/forecast?"+params.Encode())
	if err != nil {
		return err
	}

	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &domain.UpstreamError{Source: domain.SourceForecast, Err: fmt.Errorf("decode response: %w", err)}
	}
	if resp.City == nil {
		return &domain.UpstreamError{Source: domain.SourceForecast, Err: errors.New("response has no city block")}
	}
	return nil
}

func (c *Client) get(ctx context.Context, source, fullURL string) ([]byte, error) {
	start := time.Now()
	body, err := upstream.Get(ctx, c.httpClient, source, fullURL)
	c.metrics.ObserveUpstream(source, time.Since(start).Seconds(), err)
	return body, err
}

// OpenWeather API response types.

type currentResponse struct {
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Rain struct {
		OneHour   float64 `json:"1h"`
		ThreeHour float64 `json:"3h"`
	} `json:"rain"` // absent when it is not raining
}

func (r currentResponse) snapshot() (domain.WeatherSnapshot, error) {
	switch {
	case r.Coord == nil:
		return domain.WeatherSnapshot{}, errors.New("response has no coord block")
	case r.Main == nil:
		return domain.WeatherSnapshot{}, errors.New("response has no main block")
	case len(r.Weather) == 0:
		return domain.WeatherSnapshot{}, errors.New("response has no weather conditions")
	}
	return domain.WeatherSnapshot{
		Temperature: r.Main.Temp,
		Humidity:    r.Main.Humidity,
		Rain1h:      r.Rain.OneHour,
		Rain3h:      r.Rain.ThreeHour,
		Description: r.Weather[0].Description,
		Coord:       domain.Coordinates{Lat: r.Coord.Lat, Lon: r.Coord.Lon},
	}, nil
}

type forecastResponse struct {
	City *struct {
		Sunrise int64 `json:"sunrise"`
	} `json:"city"`
}
