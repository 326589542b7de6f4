package rabbitmq

import (
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var ErrPoolExhausted = errors.New("no channels available in pool")

type ChannelPool struct {
	conn      *amqp.Connection
	channels  chan *amqp.Channel
	mu        sync.Mutex
	closed    bool
	queueName string
	logger    *zap.Logger
}

// NewChannelPool dials rabbitmqURL and pre-opens size channels, each with the
// order queue declared.
func NewChannelPool(rabbitmqURL, queueName string, size int, logger *zap.Logger) (*ChannelPool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("channel pool size must be positive, got %d", size)
	}

	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	pool := &ChannelPool{
		conn:      conn,
		channels:  make(chan *amqp.Channel, size),
		queueName: queueName,
		logger:    logger,
	}

	for i := 0; i < size; i++ {
		ch, err := pool.createChannel()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}

	logger.Info("rabbitmq channel pool ready",
		zap.Int("size", size),
		zap.String("queue", queueName))
	return pool, nil
}

func (p *ChannelPool) createChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := DeclareQueue(ch, p.queueName); err != nil {
		ch.Close()
		return nil, err
	}
	return ch, nil
}

// DeclareQueue declares the durable order queue. It is idempotent.
func DeclareQueue(ch *amqp.Channel, queueName string) error {
	_, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}
	return nil
}

// GetChannel takes a channel from the pool, replacing it when the broker has
// closed it.
func (p *ChannelPool) GetChannel() (*amqp.Channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, errors.New("channel pool is closed")
		}
		if ch.IsClosed() {
			return p.createChannel()
		}
		return ch, nil
	default:
		return nil, ErrPoolExhausted
	}
}

// ReturnChannel puts ch back, closing it if the pool is full or shut down.
func (p *ChannelPool) ReturnChannel(ch *amqp.Channel) {
	if ch == nil || ch.IsClosed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		ch.Close()
		return
	}
	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

// Close closes all pooled channels and the connection.
func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	p.logger.Info("rabbitmq channel pool closed")
}
