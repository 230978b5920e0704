package config

import "os"

// RelayConfig holds configuration for the outbox relay service.
// This is a minimal config that only includes what the relay needs.
type RelayConfig struct {
	DatabaseURL     string
	RabbitMQURL     string
	EventsQueueName string
}

func LoadRelayConfig() *RelayConfig {
	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	eventsQueueName := os.Getenv("QUEUE_EVENTS_NAME")
	if eventsQueueName == "" {
		eventsQueueName = "queue-events"
	}

	return &RelayConfig{
		DatabaseURL:     dbURL,
		RabbitMQURL:     rabbitURL,
		EventsQueueName: eventsQueueName,
	}
}
