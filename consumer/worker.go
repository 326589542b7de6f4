package consumer

import (
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"retail-core/models"
)

type Worker struct {
	workerID     int
	channel      *amqp.Channel
	queueName    string
	orderTracker *OrderTracker
	logger       *zap.Logger
}

// NewWorker opens a dedicated channel with a prefetch of one.
func NewWorker(workerID int, conn *amqp.Connection, queueName string, tracker *OrderTracker, logger *zap.Logger) (*Worker, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for worker %d: %w", workerID, err)
	}

	err = ch.Qos(
		1,     // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set QoS for worker %d: %w", workerID, err)
	}

	return &Worker{
		workerID:     workerID,
		channel:      ch,
		queueName:    queueName,
		orderTracker: tracker,
		logger:       logger.With(zap.Int("worker", workerID)),
	}, nil
}

// Start consumes until the delivery channel closes.
func (w *Worker) Start(wg *sync.WaitGroup) {
	defer wg.Done()
	defer w.channel.Close()

	msgs, err := w.channel.Consume(
		w.queueName,                          // queue
		fmt.Sprintf("worker-%d", w.workerID), // consumer tag
		false,                                // auto-ack
		false,                                // exclusive
		false,                                // no-local
		false,                                // no-wait
		nil,                                  // args
	)
	if err != nil {
		w.logger.Error("failed to register consumer", zap.Error(err))
		return
	}

	w.logger.Info("worker started")
	for msg := range msgs {
		w.processMessage(msg)
	}
	w.logger.Info("worker stopped")
}

func (w *Worker) processMessage(msg amqp.Delivery) {
	var order models.OrderMessage
	if err := json.Unmarshal(msg.Body, &order); err != nil || order.OrderID <= 0 {
		w.logger.Warn("rejecting malformed order message",
			zap.String("message_id", msg.MessageId),
			zap.Error(err))
		// malformed messages are never requeued
		if err := msg.Nack(false, false); err != nil {
			w.logger.Error("failed to nack message", zap.Error(err))
		}
		return
	}

	if !w.orderTracker.RecordOrder(order) {
		w.logger.Info("duplicate order ignored", zap.Int64("order_id", order.OrderID))
	}

	if err := msg.Ack(false); err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.Int64("order_id", order.OrderID),
			zap.Error(err))
		return
	}
	w.logger.Info("processed order", zap.Int64("order_id", order.OrderID))
}

func (w *Worker) Stop() {
	if w.channel != nil {
		w.channel.Close()
	}
}
