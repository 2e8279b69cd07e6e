// Package app wires configuration into a ready-to-use flood risk service.
package app

import (
	"log/slog"

	"github.com/couchcryptid/flood-risk-service/internal/adapter/googlenews"
	kafkaadapter "github.com/couchcryptid/flood-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/flood-risk-service/internal/adapter/openweather"
	"github.com/couchcryptid/flood-risk-service/internal/adapter/upstream"
	"github.com/couchcryptid/flood-risk-service/internal/config"
	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/couchcryptid/flood-risk-service/internal/floodrisk"
	"github.com/couchcryptid/flood-risk-service/internal/observability"
)

// App bundles the service with the resources that must be released on exit.
type App struct {
	Service *floodrisk.Service
	writer  *kafkaadapter.Writer
}

// New builds the service from cfg. The weather provider is left unset when
// no OpenWeather key is configured so assessments fail with a configuration
// error rather than an upstream 401.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *App {
	httpClient := upstream.NewHTTPClient(cfg.UpstreamTimeout, cfg.UpstreamRetryMax, logger)

	var weather domain.WeatherProvider
	if cfg.OpenWeatherKey != "" {
		weather = openweather.NewClient(cfg.OpenWeatherKey, cfg.OpenWeatherBaseURL, httpClient, metrics, logger)
	} else {
		logger.Warn("OPENWEATHER_KEY is not set; assessments will fail until it is configured")
	}

	news := googlenews.NewClient(cfg.NewsBaseURL, googlenews.Edition{
		Language: cfg.NewsLanguage,
		Region:   cfg.NewsRegion,
		Edition:  cfg.NewsEdition,
	}, httpClient, metrics, logger)

	opts := []floodrisk.Option{floodrisk.WithForecastCheck(cfg.ForecastCheckEnabled)}

	a := &App{}
	if cfg.KafkaEnabled {
		a.writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, floodrisk.WithPublisher(a.writer))
		metrics.PublisherEnabled.Set(1)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	a.Service = floodrisk.New(weather, news, logger, metrics, opts...)
	return a
}

// Close releases the Kafka writer, if any.
func (a *App) Close() error {
	if a.writer == nil {
		return nil
	}
	return a.writer.Close()
}
