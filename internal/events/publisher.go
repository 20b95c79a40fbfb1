package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/smukkama/weather-advisor/internal/analysis"
)

// Advisory is the event published after a successful run, for downstream
// consumers (dashboards, chat bots) that want the outcome without the
// email.
type Advisory struct {
	RunID     string  `json:"run_id"`
	LocalDate string  `json:"local_date"`
	Location  string  `json:"location"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	TempMean  float64 `json:"temp_mean"`
	RainToday bool    `json:"rain_today"`
	Drying    string  `json:"drying"`
	Umbrella  string  `json:"umbrella"`
	RainOnset string  `json:"rain_onset,omitempty"`
}

// NewAdvisory builds the event for one recommendation.
func NewAdvisory(rec *analysis.Recommendation, runID, localDate, location string) *Advisory {
	return &Advisory{
		RunID:     runID,
		LocalDate: localDate,
		Location:  location,
		TempMin:   rec.TempMin,
		TempMax:   rec.TempMax,
		TempMean:  rec.TempMean,
		RainToday: rec.HasRain,
		Drying:    rec.Drying,
		Umbrella:  rec.Umbrella,
		RainOnset: rec.RainOnset,
	}
}

// Publisher wraps a Kafka producer for advisory events
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // Partition by key (location)
			RequiredAcks: kafka.RequireOne,
			Async:        false, // Synchronous for reliability
		},
	}
}

// Publish sends one advisory event to Kafka, keyed by location so a
// multi-location deployment keeps per-location ordering.
func (p *Publisher) Publish(ctx context.Context, advisory *Advisory) error {
	value, err := json.Marshal(advisory)
	if err != nil {
		return fmt.Errorf("failed to encode advisory: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(advisory.Location),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.writer.Close()
}
