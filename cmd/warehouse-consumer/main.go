package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"retail-core/config"
	"retail-core/consumer"
	"retail-core/logging"
	"retail-core/rabbitmq"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting warehouse consumer", zap.Int("workers", cfg.NumWorkers))

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("failed to open a channel", zap.Error(err))
	}
	if err := rabbitmq.DeclareQueue(ch, cfg.RabbitMQQueue); err != nil {
		logger.Fatal("failed to declare queue", zap.Error(err))
	}
	ch.Close()

	tracker := consumer.NewOrderTracker()

	var wg sync.WaitGroup
	for i := 1; i <= cfg.NumWorkers; i++ {
		worker, err := consumer.NewWorker(i, conn, cfg.RabbitMQQueue, tracker, logger.Named("worker"))
		if err != nil {
			logger.Fatal("failed to create worker", zap.Int("worker", i), zap.Error(err))
		}
		wg.Add(1)
		go worker.Start(&wg)
	}
	logger.Info("all workers started", zap.String("queue", cfg.RabbitMQQueue))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("received shutdown signal, stopping workers")

	// closing the connection closes every worker channel
	conn.Close()
	wg.Wait()

	tracker.WriteSummary(os.Stdout)
	logger.Info("warehouse consumer shut down",
		zap.Int("orders", tracker.TotalOrders()),
		zap.String("revenue", tracker.Revenue().StringFixed(2)))
}
