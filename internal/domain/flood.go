package domain

import "time"

// RiskLevel is the overall flood risk for a city.
type RiskLevel string

const (
	RiskSafe   RiskLevel = "SAFE"
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// AlertLevel is the keyword severity of a single headline.
type AlertLevel string

const (
	AlertHigh   AlertLevel = "HIGH"
	AlertMedium AlertLevel = "MEDIUM"
	AlertLow    AlertLevel = "LOW"
)

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherSnapshot holds current conditions for a city in metric units.
type WeatherSnapshot struct {
	Temperature float64     `json:"temperature"` // °C
	Humidity    int         `json:"humidity"`    // %
	Rain1h      float64     `json:"rain_1h"`     // mm over the last hour
	Rain3h      float64     `json:"rain_3h"`     // mm over the last three hours
	UVI         int         `json:"uvi"`         // always 0, not available on the free tier
	Description string      `json:"description"`
	Coord       Coordinates `json:"coord"`
}

// NewsItem is a single headline from the news feed.
type NewsItem struct {
	Title     string
	Published string // raw pubDate as it appeared in the feed
	PubTime   time.Time
}

// NewsAlert is a same-day headline tagged with a keyword severity.
type NewsAlert struct {
	Title     string     `json:"title"`
	Published string     `json:"published"`
	Level     AlertLevel `json:"level"`
}

// Assessment is the combined flood risk result for a city.
type Assessment struct {
	City       string          `json:"city"`
	Weather    WeatherSnapshot `json:"weather"`
	RiskLevel  RiskLevel       `json:"flood_risk_level"`
	Reasons    []string        `json:"reasons"`
	NewsAlerts []NewsAlert     `json:"news_alerts"`
}
