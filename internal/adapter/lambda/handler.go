// Package lambda serves flood assessments behind API Gateway.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	httpadapter "github.com/couchcryptid/flood-risk-service/internal/adapter/http"
)

var jsonHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// Handler answers API Gateway proxy requests with the same payloads as the
// HTTP server's /api/flood route.
type Handler struct {
	assessor httpadapter.Assessor
	logger   *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(assessor httpadapter.Assessor, logger *slog.Logger) *Handler {
	return &Handler{assessor: assessor, logger: logger}
}

// Handle is the lambda.Start entrypoint.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	logger := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With("aws_request_id", lc.AwsRequestID)
	}

	city := req.QueryStringParameters["city"]
	a, err := h.assessor.Assess(ctx, city)
	if err != nil {
		status, body := httpadapter.ErrorResponse(err)
		logger.Debug("assessment rejected", "city", city, "status", status, "error", err)
		return response(status, body)
	}
	return response(http.StatusOK, a)
}

func response(status int, v any) (*events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return &events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    jsonHeaders,
	}, nil
}
