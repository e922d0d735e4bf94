// Package events publishes user lifecycle events to an AMQP broker.
//
// Publishing is best-effort: a broker outage is logged and never surfaced
// to the API caller. A nil *Publisher is valid and publishes nothing, so
// the feature is off unless a broker URL is configured.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

const userEventsQueue = "user_events"

// UserCreated is the message body published after a successful insert.
type UserCreated struct {
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	DateCreated time.Time `json:"dateCreated"`
}

// Publisher holds the AMQP connection and channel.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *zap.Logger
}

// NewPublisher connects to the broker and declares the durable user_events
// queue. Returns an error when the broker is unreachable; callers decide
// whether that is fatal.
func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		userEventsQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", userEventsQueue, err)
	}

	logger.Info("AMQP publisher connected", zap.String("queue", userEventsQueue))
	return &Publisher{conn: conn, channel: ch, log: logger}, nil
}

// PublishUserCreated sends a user-created event. No-op on a nil Publisher.
func (p *Publisher) PublishUserCreated(evt UserCreated) {
	if p == nil {
		return
	}

	body, err := json.Marshal(evt)
	if err != nil {
		p.log.Error("failed to marshal user-created event", zap.Error(err))
		return
	}

	err = p.channel.Publish(
		"",              // default exchange
		userEventsQueue, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		p.log.Warn("failed to publish user-created event",
			zap.Int64("user_id", evt.UserID),
			zap.Error(err))
		return
	}
	p.log.Info("published user-created event", zap.Int64("user_id", evt.UserID))
}

// Close tears down the channel and connection. Safe on a nil Publisher.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close AMQP channel: %w", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close AMQP connection: %w", err)
		}
	}
	return firstErr
}
