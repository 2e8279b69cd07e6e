package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/couchcryptid/flood-risk-service/internal/adapter/http"
	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockAssessor struct {
	result domain.Assessment
	err    error
	city   string
	calls  int
}

func (m *mockAssessor) Assess(_ context.Context, city string) (domain.Assessment, error) {
	m.calls++
	m.city = city
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(assessor httpadapter.Assessor, readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", assessor, &mockReadiness{err: readyErr}, []string{"*"}, discardLogger())
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(t, newTestServer(&mockAssessor{}, nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(t, newTestServer(&mockAssessor{}, nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(t, newTestServer(&mockAssessor{}, fmt.Errorf("OpenWeather key is not configured")), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "OpenWeather key is not configured", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(&mockAssessor{}, nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRootBanner(t *testing.T) {
	rec := get(t, newTestServer(&mockAssessor{}, nil), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Flood API Running", rec.Body.String())
}

func TestFloodReturnsAssessment(t *testing.T) {
	assessor := &mockAssessor{result: domain.Assessment{
		City: "Mumbai",
		Weather: domain.WeatherSnapshot{
			Temperature: 27.4,
			Humidity:    89,
			Rain1h:      6.1,
			Description: "heavy intensity rain",
			Coord:       domain.Coordinates{Lat: 19.0144, Lon: 72.8479},
		},
		RiskLevel:  domain.RiskHigh,
		Reasons:    []string{domain.ReasonHeavyHourlyRain},
		NewsAlerts: []domain.NewsAlert{},
	}}

	rec := get(t, newTestServer(assessor, nil), "/api/flood?city=Mumbai")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Mumbai", assessor.city)
	assert.JSONEq(t, `{
		"city": "Mumbai",
		"weather": {
			"temperature": 27.4,
			"humidity": 89,
			"rain_1h": 6.1,
			"rain_3h": 0,
			"uvi": 0,
			"description": "heavy intensity rain",
			"coord": {"lat": 19.0144, "lon": 72.8479}
		},
		"flood_risk_level": "HIGH",
		"reasons": ["Rainfall > 5mm/hr"],
		"news_alerts": []
	}`, rec.Body.String())
}

func TestFloodPassesEncodedCity(t *testing.T) {
	assessor := &mockAssessor{result: domain.Assessment{Reasons: []string{domain.ReasonNoIndicators}, NewsAlerts: []domain.NewsAlert{}}}

	rec := get(t, newTestServer(assessor, nil), "/api/flood?city=New%20Delhi")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New Delhi", assessor.city)
}

func TestFloodErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "city required",
			err:        domain.ErrCityRequired,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"City required"}`,
		},
		{
			name:       "missing key",
			err:        domain.ErrMissingCredential,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Missing OpenWeather key"}`,
		},
		{
			name: "upstream json payload",
			err: fmt.Errorf("current weather: %w", &domain.UpstreamError{
				Source:     domain.SourceWeather,
				StatusCode: http.StatusNotFound,
				Body:       []byte(`{"cod":"404","message":"city not found"}`),
			}),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate flood alert","details":{"cod":"404","message":"city not found"}}`,
		},
		{
			name: "upstream text payload",
			err: &domain.UpstreamError{
				Source:     domain.SourceNews,
				StatusCode: http.StatusServiceUnavailable,
				Body:       []byte("service unavailable"),
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate flood alert","details":"service unavailable"}`,
		},
		{
			name:       "upstream without response",
			err:        &domain.UpstreamError{Source: domain.SourceNews, Err: errors.New("dial tcp: connection refused")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate flood alert","details":"dial tcp: connection refused"}`,
		},
		{
			name:       "unexpected error",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate flood alert","details":"context deadline exceeded"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(&mockAssessor{err: tt.err}, nil), "/api/flood?city=Mumbai")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestFloodMissingCityReachesAssessor(t *testing.T) {
	assessor := &mockAssessor{err: domain.ErrCityRequired}

	rec := get(t, newTestServer(assessor, nil), "/api/flood")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, assessor.calls)
	assert.Empty(t, assessor.city)
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(&mockAssessor{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	srv.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteReturns404(t *testing.T) {
	rec := get(t, newTestServer(&mockAssessor{}, nil), "/api/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
