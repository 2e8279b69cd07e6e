// Command floodrisk-lambda serves GET /api/flood through API Gateway.
package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	lambdaadapter "github.com/couchcryptid/flood-risk-service/internal/adapter/lambda"
	"github.com/couchcryptid/flood-risk-service/internal/app"
	"github.com/couchcryptid/flood-risk-service/internal/config"
	"github.com/couchcryptid/flood-risk-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	a := app.New(cfg, logger, observability.NewMetrics())
	defer a.Close() //nolint:errcheck // process is exiting

	lambda.Start(lambdaadapter.NewHandler(a.Service, logger).Handle)
}
