// Package rabbitmq provides a thin AMQP publisher for entity lifecycle
// events. Publishing goes to a single durable queue through the default
// exchange; there is no consumer side in this repository.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

const queueName = "order_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel, and declares the
// durable event queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", queueName, err)
	}

	log.Printf("RabbitMQ client connected and %s queue declared", queueName)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to the event queue. The routing
// key travels as a message header so consumers can dispatch on it.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	if !json.Valid(body) {
		return fmt.Errorf("event body must be valid JSON")
	}

	err := c.channel.Publish(
		"",        // exchange: default exchange
		queueName, // routing key: the queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Headers:      amqp.Table{"event": routingKey},
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
