package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrCityRequired is returned when an assessment is requested without a city.
	ErrCityRequired = errors.New("city required")

	// ErrMissingCredential is returned when no weather API key is configured.
	ErrMissingCredential = errors.New("missing OpenWeather key")
)

// Upstream sources reported in UpstreamError.Source and metric labels.
const (
	SourceWeather  = "weather"
	SourceForecast = "forecast"
	SourceNews     = "news"
)

// UpstreamError describes a failed call to one of the external collaborators.
// StatusCode and Body are set when the upstream answered with a non-2xx status.
type UpstreamError struct {
	Source     string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upstream: request failed with status code %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s upstream: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Details returns the upstream payload when there is one, decoded as JSON if
// possible and as text otherwise. Without a payload it returns the error message.
func (e *UpstreamError) Details() any {
	if len(e.Body) > 0 {
		var v any
		if err := json.Unmarshal(e.Body, &v); err == nil {
			return v
		}
		return string(e.Body)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Error()
}
