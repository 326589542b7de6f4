package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"retail-core/models"
)

// Publisher sends confirmed orders to the warehouse queue.
type Publisher struct {
	pool      *ChannelPool
	queueName string
	logger    *zap.Logger
}

func NewPublisher(pool *ChannelPool, queueName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
		logger:    logger,
	}
}

// PublishOrder publishes msg as a persistent JSON message.
func (p *Publisher) PublishOrder(ctx context.Context, msg models.OrderMessage) error {
	publishing, err := newPublishing(msg)
	if err != nil {
		return err
	}

	ch, err := p.pool.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		publishing)
	if err != nil {
		return fmt.Errorf("failed to publish order %d: %w", msg.OrderID, err)
	}

	p.logger.Info("published order to warehouse queue",
		zap.Int64("order_id", msg.OrderID),
		zap.String("message_id", msg.MessageID))
	return nil
}

func newPublishing(msg models.OrderMessage) (amqp.Publishing, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order %d: %w", msg.OrderID, err)
	}
	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    msg.MessageID,
		Type:         "order.confirmed",
		Body:         body,
	}, nil
}
