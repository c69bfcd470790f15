package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/backoffice/config"
	"github.com/Domenick1991/backoffice/internal/bootstrap"
	"github.com/Domenick1991/backoffice/internal/cache"
	"github.com/Domenick1991/backoffice/internal/kafka"
	"github.com/Domenick1991/backoffice/internal/rabbitmq"
	"github.com/Domenick1991/backoffice/internal/repository"
	"github.com/Domenick1991/backoffice/internal/service/backoffice"
	"github.com/Domenick1991/backoffice/internal/service/booking"
	"github.com/Domenick1991/backoffice/internal/service/clients"
	"github.com/Domenick1991/backoffice/internal/service/fleet"
	"github.com/Domenick1991/backoffice/internal/service/flights"
	"github.com/Domenick1991/backoffice/internal/service/operators"
	"github.com/Domenick1991/backoffice/internal/service/prices"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

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

	clock := clockwork.NewRealClock()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = cache.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
	}

	counter, closeCounter := newCounter(ctx, cfg, redisClient)
	defer closeCounter()

	producer, closeProducer := newProducer(cfg)
	defer closeProducer()

	var flightCache flights.FlightCache
	if redisClient != nil {
		flightCache = cache.NewRedisCache(redisClient, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	}

	fleetRegistry := fleet.NewRegistry()
	clientRegistry := clients.NewRegistry()
	priceTable := prices.NewPriceTable()
	directory := flights.NewDirectory(fleetRegistry)

	flightService := flights.NewFlightService(directory, flightCache, clock)
	bookingService := booking.NewBookingService(
		directory,
		fleetRegistry,
		clientRegistry,
		priceTable,
		counter,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithClock(clock),
	)
	backofficeService := backoffice.NewService(bookingService, fleetRegistry, directory, clientRegistry, priceTable, flightService)
	operatorService := operators.NewOperatorService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute, clock)

	departures := backoffice.NewDepartures(directory, bookingService, clock)
	scheduler, err := departures.Start(ctx, time.Duration(cfg.Worker.DepartureSweepSeconds)*time.Second)
	if err != nil {
		log.Fatalf("start departures: %v", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("scheduler shutdown: %v", err)
		}
	}()

	if err := bootstrap.Run(ctx, cfg, bootstrap.Services{
		Flights:    flightService,
		Backoffice: backofficeService,
		Operators:  operatorService,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newCounter(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (booking.Counter, func()) {
	switch cfg.Booking.Counter {
	case config.CounterPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		counter := repository.NewPGCounter(pool)
		if err := counter.EnsureSchema(ctx); err != nil {
			log.Fatalf("prepare booking sequence: %v", err)
		}
		return counter, pool.Close
	case config.CounterRedis:
		if redisClient == nil {
			log.Fatalf("booking counter redis needs redis.addr")
		}
		return cache.NewRedisCounter(redisClient), func() {}
	default:
		return repository.NewFileCounter(cfg.Booking.CounterFile), func() {}
	}
}

// newProducer returns a nil Producer when events are disabled.
func newProducer(cfg *config.Config) (booking.Producer, func()) {
	switch cfg.Booking.Events {
	case config.EventsKafka:
		p := kafka.NewProducer(cfg.Kafka.Brokers)
		return p, func() { _ = p.Close() }
	case config.EventsRabbitMQ:
		url := cfg.RabbitMQ.URL
		if url == "" {
			url = rabbitmq.DefaultURL
		}
		p := rabbitmq.NewPublisher(url)
		return p, func() { _ = p.Close() }
	default:
		return nil, func() {}
	}
}
