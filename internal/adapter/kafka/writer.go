package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-risk-service/internal/config"
	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/mmcloughlin/geohash"
	kafkago "github.com/segmentio/kafka-go"
)

// geohashPrecision of 6 characters is a cell of roughly 1.2 km x 0.6 km,
// enough to keep one city's assessments on one partition.
const geohashPrecision = 6

// AssessmentEvent is the message value published for every assessment.
type AssessmentEvent struct {
	domain.Assessment
	Geohash    string    `json:"geohash"`
	AssessedAt time.Time `json:"assessed_at"`
}

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces assessment events to a Kafka topic.
// It implements floodrisk.Publisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured assessment topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes the assessment and writes it keyed by the geohash of the
// city's coordinates.
func (w *Writer) Publish(ctx context.Context, a domain.Assessment) error {
	msg, err := serializeToMessage(a, domain.Now())
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write assessment: %w", err)
	}
	w.logger.Debug("assessment published", "city", a.City, "key", string(msg.Key))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Assessment into a Kafka message.
func serializeToMessage(a domain.Assessment, assessedAt time.Time) (kafkago.Message, error) {
	event := AssessmentEvent{
		Assessment: a,
		Geohash:    geohash.EncodeWithPrecision(a.Weather.Coord.Lat, a.Weather.Coord.Lon, geohashPrecision),
		AssessedAt: assessedAt.UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Geohash),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(a.RiskLevel)},
			{Key: "assessed_at", Value: []byte(event.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}
