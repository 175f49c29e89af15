package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

const (
	RoutingKeySubmissionCreated = "submission.created"

	publishTimeout = 5 * time.Second
)

// SubmissionCreatedEvent is the AMQP payload for a new submission.
type SubmissionCreatedEvent struct {
	EventType    string    `json:"eventType"`
	SubmissionID string    `json:"submissionId"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Address      string    `json:"address"`
	Hours        *string   `json:"hours"`
	PhotoURL     *string   `json:"photoUrl"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

func NewSubmissionCreatedEvent(s *models.Submission) SubmissionCreatedEvent {
	return SubmissionCreatedEvent{
		EventType:    RoutingKeySubmissionCreated,
		SubmissionID: s.ID,
		Name:         s.Name,
		Type:         s.Type.String(),
		Address:      s.Address,
		Hours:        s.Hours,
		PhotoURL:     s.PhotoURL,
		SubmittedAt:  s.SubmittedAt.UTC(),
	}
}

// EventPublisher publishes submission events to a durable topic exchange.
// A dropped connection is redialed lazily on the next publish.
type EventPublisher struct {
	mu           sync.Mutex
	url          string
	exchangeName string
	conn         *amqp.Connection
	channel      *amqp.Channel
}

func NewEventPublisher(url, exchangeName string) (*EventPublisher, error) {
	p := &EventPublisher{url: url, exchangeName: exchangeName}
	if err := p.connect(); err != nil {
		return nil, err
	}
	utils.Logger.WithField("exchange", exchangeName).Info("AMQP publisher initialized")
	return p, nil
}

func (p *EventPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		p.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	p.conn = conn
	p.channel = channel
	return nil
}

func (p *EventPublisher) NotifySubmission(ctx context.Context, s *models.Submission) error {
	return p.publish(ctx, RoutingKeySubmissionCreated, NewSubmissionCreatedEvent(s))
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		utils.Logger.Warn("AMQP connection closed, reconnecting")
		if err := p.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
			MessageId:    fmt.Sprintf("%d", time.Now().UnixNano()),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"routing_key": routingKey,
		"exchange":    p.exchangeName,
		"body_size":   len(body),
	}).Debug("Message published")
	return nil
}

func (p *EventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			utils.Logger.WithError(err).Warn("Failed to close AMQP channel")
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
