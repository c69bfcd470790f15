package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/backoffice/config"
	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/Domenick1991/backoffice/internal/email"
	"github.com/Domenick1991/backoffice/internal/kafka"
	"github.com/Domenick1991/backoffice/internal/rabbitmq"
)

type consumer interface {
	Consume(ctx context.Context, handler func(context.Context, []byte) error) error
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var source consumer
	switch cfg.Booking.Events {
	case config.EventsKafka:
		c := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
		defer c.Close()
		source = c
	case config.EventsRabbitMQ:
		url := cfg.RabbitMQ.URL
		if url == "" {
			url = rabbitmq.DefaultURL
		}
		source = rabbitmq.NewConsumer(url, cfg.Kafka.NotificationsTopic)
	default:
		log.Fatalf("worker needs booking.events kafka or rabbitmq, got %q", cfg.Booking.Events)
	}

	sender := email.NewSender(cfg.SMTP)

	log.Printf("worker started, consuming %s via %s", cfg.Kafka.NotificationsTopic, cfg.Booking.Events)
	err = source.Consume(ctx, func(ctx context.Context, payload []byte) error {
		var event domain.BookingEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}
		return sender.Send(ctx, event)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Printf("worker stopped")
}
