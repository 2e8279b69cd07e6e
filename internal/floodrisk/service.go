// Package floodrisk aggregates weather and news into a flood risk assessment.
package floodrisk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/couchcryptid/flood-risk-service/internal/observability"
)

// Publisher forwards completed assessments to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, a domain.Assessment) error
}

// Failure kinds reported on the assessment_failures_total metric.
const (
	failValidation    = "validation"
	failConfiguration = "configuration"
	failUpstream      = "upstream"
)

// Service runs flood risk assessments. The zero value is not usable; build
// one with New.
type Service struct {
	weather       domain.WeatherProvider
	news          domain.NewsProvider
	publisher     Publisher
	forecastCheck bool
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithPublisher publishes every successful assessment. Publish errors are
// logged and never fail the assessment.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithForecastCheck toggles the forecast call made after current weather.
// It is on by default.
func WithForecastCheck(enabled bool) Option {
	return func(s *Service) { s.forecastCheck = enabled }
}

// New creates a Service. A nil weather provider means no API key is
// configured and every assessment with a city fails with
// domain.ErrMissingCredential.
func New(weather domain.WeatherProvider, news domain.NewsProvider, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		weather:       weather,
		news:          news,
		forecastCheck: true,
		logger:        logger,
		metrics:       metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckReadiness returns nil when the service can reach its weather
// provider, or an error describing why it cannot serve assessments.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.weather == nil {
		return errors.New("OpenWeather key is not configured")
	}
	return nil
}

// Assess produces the flood risk assessment for a city. It returns
// domain.ErrCityRequired for an empty city, domain.ErrMissingCredential when
// no weather provider is configured, and a *domain.UpstreamError when any
// upstream call fails. Upstream calls run in order and the first failure
// aborts the assessment.
func (s *Service) Assess(ctx context.Context, city string) (domain.Assessment, error) {
	if city == "" {
		s.metrics.AssessmentFails.WithLabelValues(failValidation).Inc()
		return domain.Assessment{}, domain.ErrCityRequired
	}
	if s.weather == nil {
		s.metrics.AssessmentFails.WithLabelValues(failConfiguration).Inc()
		return domain.Assessment{}, domain.ErrMissingCredential
	}

	a, err := s.assess(ctx, city)
	if err != nil {
		s.metrics.AssessmentFails.WithLabelValues(failUpstream).Inc()
		s.logger.Warn("flood assessment failed", "city", city, "error", err)
		return domain.Assessment{}, err
	}

	s.metrics.Assessments.WithLabelValues(string(a.RiskLevel)).Inc()
	for _, alert := range a.NewsAlerts {
		s.metrics.NewsAlerts.WithLabelValues(string(alert.Level)).Inc()
	}
	s.logger.Debug("flood assessment completed",
		"city", city,
		"level", a.RiskLevel,
		"news_alerts", len(a.NewsAlerts),
	)

	s.publish(ctx, a)
	return a, nil
}

func (s *Service) assess(ctx context.Context, city string) (domain.Assessment, error) {
	weather, err := s.weather.CurrentWeather(ctx, city)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("current weather: %w", err)
	}

	if s.forecastCheck {
		if err := s.weather.ForecastCheck(ctx, weather.Coord.Lat, weather.Coord.Lon); err != nil {
			return domain.Assessment{}, fmt.Errorf("forecast: %w", err)
		}
	}
	weather.UVI = 0

	items, err := s.news.Headlines(ctx, city)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("news headlines: %w", err)
	}

	today := domain.FilterToday(items, domain.Now())
	alerts := domain.ClassifyNews(today)
	s.logMatches(ctx, today)

	level, reasons := domain.AssessRisk(weather, alerts)
	return domain.Assessment{
		City:       city,
		Weather:    weather,
		RiskLevel:  level,
		Reasons:    reasons,
		NewsAlerts: alerts,
	}, nil
}

func (s *Service) logMatches(ctx context.Context, items []domain.NewsItem) {
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, it := range items {
		level, keyword := domain.ClassifyHeadline(it.Title)
		s.logger.Debug("headline classified", "title", it.Title, "level", level, "keyword", keyword)
	}
}

func (s *Service) publish(ctx context.Context, a domain.Assessment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, a); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish assessment failed", "city", a.City, "error", err)
	}
}
