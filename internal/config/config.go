package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// CORSAllowedOrigins lists origins allowed by the CORS middleware.
	CORSAllowedOrigins []string

	// OpenWeather configuration. An empty key is accepted at startup;
	// assessments then fail with a configuration error.
	OpenWeatherKey       string
	OpenWeatherBaseURL   string
	ForecastCheckEnabled bool

	// Google News RSS search configuration.
	NewsBaseURL  string
	NewsLanguage string
	NewsRegion   string
	NewsEdition  string

	// Outbound HTTP behavior shared by all upstream clients.
	UpstreamTimeout  time.Duration
	UpstreamRetryMax int

	// Optional Kafka publishing of assessments.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5004")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("FORECAST_CHECK_ENABLED", "true")
	v.SetDefault("NEWS_BASE_URL", "https://news.google.com/rss/search")
	v.SetDefault("NEWS_LANGUAGE", "en-IN")
	v.SetDefault("NEWS_REGION", "IN")
	v.SetDefault("NEWS_EDITION", "IN:en")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("UPSTREAM_RETRY_MAX", "0")
	v.SetDefault("KAFKA_TOPIC", "flood-risk-assessments")
	return v
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	v := newViper()

	shutdownTimeout, err := parsePositiveDuration(v, "SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parsePositiveDuration(v, "UPSTREAM_TIMEOUT")
	if err != nil {
		return nil, err
	}

	retryMax, err := parseRetryMax(v)
	if err != nil {
		return nil, err
	}

	forecastEnabled, err := parseBool(v, "FORECAST_CHECK_ENABLED")
	if err != nil {
		return nil, err
	}

	httpAddr := v.GetString("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":" + v.GetString("PORT")
	}

	brokers := splitList(v.GetString("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if s := v.GetString("KAFKA_ENABLED"); s != "" {
		kafkaEnabled = s == "true"
	}

	cfg := &Config{
		HTTPAddr:        httpAddr,
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ShutdownTimeout: shutdownTimeout,

		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		OpenWeatherKey:       v.GetString("OPENWEATHER_KEY"),
		OpenWeatherBaseURL:   strings.TrimRight(v.GetString("OPENWEATHER_BASE_URL"), "/"),
		ForecastCheckEnabled: forecastEnabled,

		NewsBaseURL:  v.GetString("NEWS_BASE_URL"),
		NewsLanguage: v.GetString("NEWS_LANGUAGE"),
		NewsRegion:   v.GetString("NEWS_REGION"),
		NewsEdition:  v.GetString("NEWS_EDITION"),

		UpstreamTimeout:  upstreamTimeout,
		UpstreamRetryMax: retryMax,

		KafkaBrokers: brokers,
		KafkaTopic:   v.GetString("KAFKA_TOPIC"),
		KafkaEnabled: kafkaEnabled,
	}

	if cfg.HTTPAddr == ":" {
		return nil, errors.New("PORT is required")
	}
	if cfg.OpenWeatherBaseURL == "" {
		return nil, errors.New("OPENWEATHER_BASE_URL is required")
	}
	if cfg.NewsBaseURL == "" {
		return nil, errors.New("NEWS_BASE_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when Kafka publishing is enabled")
	}

	return cfg, nil
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseRetryMax(v *viper.Viper) (int, error) {
	n, err := strconv.Atoi(v.GetString("UPSTREAM_RETRY_MAX"))
	if err != nil || n < 0 || n > 10 {
		return 0, errors.New("invalid UPSTREAM_RETRY_MAX: must be between 0 and 10")
	}
	return n, nil
}

func parseBool(v *viper.Viper, key string) (bool, error) {
	switch strings.ToLower(v.GetString(key)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s", key)
	}
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
