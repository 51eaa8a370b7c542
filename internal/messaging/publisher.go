package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"campus-canteen/internal/logger"
	"campus-canteen/internal/models"
)

// OrderCreatedEvent is published to the kitchen when an order is placed
type OrderCreatedEvent struct {
	OrderID             string             `json:"order_id"`
	UserID              string             `json:"user_id"`
	Items               []models.OrderLine `json:"items"`
	TotalAmount         float64            `json:"total_amount"`
	DeliveryAddress     string             `json:"delivery_address"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// StatusUpdateEvent is fanned out when an order's status or payment changes
type StatusUpdateEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher handles message publishing to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new message publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderCreated publishes an order-created event to the order events exchange.
// The routing key carries the line count so kitchen consumers can shard on it.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event *OrderCreatedEvent) error {
	routingKey := fmt.Sprintf("order.created.%d", len(event.Items))
	return p.publishMessage(ctx, OrderEventsExchange, routingKey, event, true)
}

// PublishStatusUpdate publishes a status change to the notifications fanout exchange
func (p *Publisher) PublishStatusUpdate(ctx context.Context, event *StatusUpdateEvent) error {
	return p.publishMessage(ctx, NotificationsExchange, "", event, false)
}

func (p *Publisher) publishMessage(ctx context.Context, exchange, routingKey string, message interface{}, persistent bool) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	deliveryMode := uint8(1)
	if persistent {
		deliveryMode = 2
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: deliveryMode,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish message to exchange %s", exchange),
			"", err, map[string]interface{}{
				"exchange":    exchange,
				"routing_key": routingKey,
			})
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published message to exchange %s", exchange),
		"", map[string]interface{}{
			"exchange":     exchange,
			"routing_key":  routingKey,
			"message_size": len(body),
		})

	return nil
}

// Close closes the publisher's connection
func (p *Publisher) Close() error {
	return p.conn.Close()
}
