package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func mumbaiAssessment() domain.Assessment {
	return domain.Assessment{
		City: "Mumbai",
		Weather: domain.WeatherSnapshot{
			Rain1h: 6.2,
			Coord:  domain.Coordinates{Lat: 19.0144, Lon: 72.8479},
		},
		RiskLevel:  domain.RiskHigh,
		Reasons:    []string{domain.ReasonHeavyHourlyRain},
		NewsAlerts: []domain.NewsAlert{},
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 7, 8, 9, 30, 0, 0, time.UTC)

	msg, err := serializeToMessage(mumbaiAssessment(), now)
	require.NoError(t, err)

	assert.Equal(t, []byte("te7u1t"), msg.Key)
	assert.Contains(t, string(msg.Value), `"flood_risk_level":"HIGH"`)
	assert.Contains(t, string(msg.Value), `"geohash":"te7u1t"`)
	assert.Contains(t, string(msg.Value), `"assessed_at":"2024-07-08T09:30:00Z"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "risk_level", msg.Headers[0].Key)
	assert.Equal(t, []byte("HIGH"), msg.Headers[0].Value)
	assert.Equal(t, "assessed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_EventRoundTrip(t *testing.T) {
	now := time.Date(2024, 7, 8, 9, 30, 0, 0, time.UTC)

	msg, err := serializeToMessage(mumbaiAssessment(), now)
	require.NoError(t, err)

	var event AssessmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, mumbaiAssessment(), event.Assessment)
	assert.True(t, now.Equal(event.AssessedAt))
}

func TestWriter_Publish(t *testing.T) {
	now := time.Date(2024, 7, 8, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(nil) })

	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, w.Publish(context.Background(), mumbaiAssessment()))
	require.Len(t, fw.msgs, 1)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), fw.msgs[0].Headers[1].Value)

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}

func TestWriter_PublishError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("leader not available")}
	w := &Writer{writer: fw, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := w.Publish(context.Background(), mumbaiAssessment())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}
