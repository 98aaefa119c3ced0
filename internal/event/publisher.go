package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher defines the interface for quiz event publishing
type Publisher interface {
	PublishQuizCreated(ctx context.Context, quizID, creatorID string) error
	PublishQuizUpdated(ctx context.Context, quizID, userID string) error
	PublishAnswersChecked(ctx context.Context, quizID string, score, maxScore float64) error
	PublishAssetCleanupFailed(ctx context.Context, quizID, ref string, cause error) error

	// Close closes the publisher connection
	Close() error
}

// EventPublisher implements the Publisher interface using RabbitMQ
type EventPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

// NewEventPublisher connects to RabbitMQ and declares the topic exchange.
// An empty URI disables publishing instead of failing startup.
func NewEventPublisher(rabbitURI, exchange string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("RabbitMQ not configured, quiz events will not be published")
		return &EventPublisher{enabled: false}, nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &EventPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) publishEvent(ctx context.Context, routingKey string, payload map[string]any) error {
	if !p.enabled {
		return nil
	}

	event := map[string]any{
		"type":      routingKey,
		"payload":   payload,
		"timestamp": time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		pubCtx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Printf("Published event: %s", routingKey)
	return nil
}

func (p *EventPublisher) PublishQuizCreated(ctx context.Context, quizID, creatorID string) error {
	return p.publishEvent(ctx, "quiz.created", map[string]any{
		"quiz_id":    quizID,
		"creator_id": creatorID,
	})
}

func (p *EventPublisher) PublishQuizUpdated(ctx context.Context, quizID, userID string) error {
	return p.publishEvent(ctx, "quiz.updated", map[string]any{
		"quiz_id": quizID,
		"user_id": userID,
	})
}

func (p *EventPublisher) PublishAnswersChecked(ctx context.Context, quizID string, score, maxScore float64) error {
	return p.publishEvent(ctx, "quiz.answers_checked", map[string]any{
		"quiz_id":   quizID,
		"score":     score,
		"max_score": maxScore,
	})
}

func (p *EventPublisher) PublishAssetCleanupFailed(ctx context.Context, quizID, ref string, cause error) error {
	return p.publishEvent(ctx, "quiz.asset_cleanup_failed", map[string]any{
		"quiz_id": quizID,
		"ref":     ref,
		"error":   cause.Error(),
	})
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
