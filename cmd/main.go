package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"ward26-notification-service/internal/api"
	"ward26-notification-service/internal/config"
	"ward26-notification-service/internal/deliverylog"
	"ward26-notification-service/internal/kafka"
	"ward26-notification-service/internal/logging"
	"ward26-notification-service/internal/notification"
	"ward26-notification-service/internal/providers"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Close()

	for _, warning := range cfg.Warnings {
		logger.Warnf("%s", warning)
	}

	// Channel clients; a nil client disables that channel
	var messaging notification.MessagingClient
	if m := providers.NewMessaging(cfg, logger); m != nil {
		messaging = m
	}
	var email notification.EmailClient
	if e := providers.NewEmail(cfg, logger); e != nil {
		email = e
	}

	store := deliverylog.NewStore(cfg.DeliveryLog.Path, cfg.DeliveryLog.Capacity, logger)
	hub := notification.NewHub(logger)

	// Initialize notification service
	svc := notification.New(cfg, logger, messaging, email, store, hub)
	var wg sync.WaitGroup
	svc.Start(&wg)

	ctx, cancel := context.WithCancel(context.Background())

	// Start Kafka consumer when a broker is configured
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer(cfg.Kafka.Broker, cfg.Kafka.Topic, cfg.Kafka.GroupID, svc, logger)
		consumer.Start(ctx, &wg)
		logger.Infof("Kafka consumer initialized with topic: %s", cfg.Kafka.Topic)
	}

	// Start diagnostics API server
	router := api.NewRouter(svc, store, hub, cfg, logger)
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	cancel()
	if consumer != nil {
		consumer.Close()
	}
	svc.Stop()
	wg.Wait()
	logger.Infof("Service stopped")
}
