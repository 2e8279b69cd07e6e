// Command floodcheck runs a single flood risk assessment and prints the JSON
// result, using the same environment configuration as the server.
//
// Usage:
//
//	go run ./cmd/floodcheck -city Mumbai
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	httpadapter "github.com/couchcryptid/flood-risk-service/internal/adapter/http"
	"github.com/couchcryptid/flood-risk-service/internal/app"
	"github.com/couchcryptid/flood-risk-service/internal/config"
	"github.com/couchcryptid/flood-risk-service/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	city := flag.String("city", "", "city to assess")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline for the assessment")
	compact := flag.Bool("compact", false, "print JSON on a single line")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLoggerTo(os.Stderr, cfg)
	a := app.New(cfg, logger, observability.NewMetrics())
	defer a.Close() //nolint:errcheck // best effort on exit

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}

	result, err := a.Service.Assess(ctx, *city)
	if err != nil {
		status, body := httpadapter.ErrorResponse(err)
		if encErr := enc.Encode(body); encErr != nil {
			return encErr
		}
		return fmt.Errorf("assessment failed with status %d: %w", status, err)
	}
	return enc.Encode(result)
}
