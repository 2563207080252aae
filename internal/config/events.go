package config

import (
	"log/slog"

	"github.com/SAP-F-2025/readiness-assessment/internal/events"
)

// EventConfig holds configuration for report hand-off publishing
type EventConfig struct {
	Enabled      bool     `mapstructure:"events_enabled"`
	Publisher    string   `mapstructure:"events_publisher"` // kafka or mock
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	ReportTopic  string   `mapstructure:"report_topic"`
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.ReportTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.KafkaBrokers,
			TopicName:    c.ReportTopic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}
