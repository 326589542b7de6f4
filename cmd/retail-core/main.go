package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-core/config"
	"retail-core/handlers"
	"retail-core/logging"
	"retail-core/rabbitmq"
	"retail-core/retail"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	manager := retail.NewManager(retail.WithLogger(logger))
	if err := seedCatalog(manager, cfg.CatalogFile); err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}

	var publisher handlers.OrderPublisher
	if cfg.PublishOrders {
		pool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize, logger.Named("rabbitmq"))
		if err != nil {
			logger.Fatal("failed to create RabbitMQ channel pool", zap.Error(err))
		}
		defer pool.Close()
		publisher = rabbitmq.NewPublisher(pool, cfg.RabbitMQQueue, logger.Named("publisher"))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(manager, publisher, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("retail service starting",
			zap.String("port", cfg.Port),
			zap.Bool("publish_orders", cfg.PublishOrders))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("server shutdown complete")
}

func seedCatalog(manager *retail.Manager, path string) error {
	entries := config.DefaultCatalog()
	if path != "" {
		var err error
		if entries, err = config.LoadCatalog(path); err != nil {
			return err
		}
	}

	items, err := config.BuildItems(entries)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := manager.AddCatalogItem(item); err != nil {
			return err
		}
	}
	return nil
}
