package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"besties/logs"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

type EventKind string

const (
	EventFriendRequestSent     EventKind = "friend_request.sent"
	EventFriendRequestAccepted EventKind = "friend_request.accepted"
	EventPostLiked             EventKind = "post.liked"
	EventPostCommented         EventKind = "post.commented"
	EventMessageSent           EventKind = "message.sent"
)

// SocialEvent - событие для внешних потребителей (аналитика, рассылки).
// Клиенты по-прежнему опрашивают API, событие не доставляется им напрямую.
type SocialEvent struct {
	Kind        EventKind `json:"kind"`
	RecipientID string    `json:"recipient_id"`
	ActorID     string    `json:"actor_id"`
	SubjectID   string    `json:"subject_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event SocialEvent) error
}

// NoopPublisher используется, когда RabbitMQ не настроен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, SocialEvent) error { return nil }

// AMQPPublisher публикует события в topic exchange с ключом user.<recipient>.<kind>
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	logs.Log.WithField("exchange", exchange).Info("RabbitMQ publisher initialized")
	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

func RoutingKey(event SocialEvent) string {
	return fmt.Sprintf("user.%s.%s", event.RecipientID, event.Kind)
}

func (p *AMQPPublisher) Publish(ctx context.Context, event SocialEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(event),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.CreatedAt,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// publish отправляет событие и только логирует ошибку: запрос уже выполнен
func publish(ctx context.Context, events EventPublisher, kind EventKind, recipientID, actorID, subjectID string) {
	event := SocialEvent{
		Kind:        kind,
		RecipientID: recipientID,
		ActorID:     actorID,
		SubjectID:   subjectID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := events.Publish(ctx, event); err != nil {
		logs.Log.WithError(err).WithField("kind", kind).Warn("failed to publish social event")
	}
}
