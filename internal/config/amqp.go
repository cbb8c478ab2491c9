package config

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// NewAMQPConnection dials the broker used by the push gateway. An empty
// AMQP_URL disables push delivery and returns (nil, nil).
func NewAMQPConnection(cfg *Config) (*amqp091.Connection, error) {
	if cfg.AMQPURL == "" {
		return nil, nil
	}

	conn, err := amqp091.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}
