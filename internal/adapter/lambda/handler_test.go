package lambda

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAssessor struct {
	result domain.Assessment
	err    error
	city   string
}

func (m *mockAssessor) Assess(_ context.Context, city string) (domain.Assessment, error) {
	m.city = city
	return m.result, m.err
}

func newHandler(a *mockAssessor) *Handler {
	return NewHandler(a, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandle_Success(t *testing.T) {
	assessor := &mockAssessor{result: domain.Assessment{
		City:       "Chennai",
		RiskLevel:  domain.RiskSafe,
		Reasons:    []string{domain.ReasonNoIndicators},
		NewsAlerts: []domain.NewsAlert{},
	}}

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})
	resp, err := newHandler(assessor).Handle(ctx, events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"city": "Chennai"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "Chennai", assessor.city)
	assert.Contains(t, resp.Body, `"flood_risk_level":"SAFE"`)
	assert.Contains(t, resp.Body, `"news_alerts":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"city required", domain.ErrCityRequired, http.StatusBadRequest, `{"error":"City required"}`},
		{"missing key", domain.ErrMissingCredential, http.StatusInternalServerError, `{"error":"Missing OpenWeather key"}`},
		{
			"upstream",
			&domain.UpstreamError{Source: domain.SourceWeather, StatusCode: 401, Body: []byte(`{"cod":401,"message":"Invalid API key"}`)},
			http.StatusInternalServerError,
			`{"error":"Failed to generate flood alert","details":{"cod":401,"message":"Invalid API key"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newHandler(&mockAssessor{err: tt.err}).Handle(context.Background(), events.APIGatewayProxyRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, resp.Body)
		})
	}
}
