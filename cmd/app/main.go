package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/pingo/config"
	"github.com/Domenick1991/pingo/internal/bootstrap"
	"github.com/Domenick1991/pingo/internal/cache"
	"github.com/Domenick1991/pingo/internal/kafka"
	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/repository"
	"github.com/Domenick1991/pingo/internal/service/booking"
	"github.com/Domenick1991/pingo/internal/service/flights"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type options struct {
	Config string `short:"c" long:"config" env:"CONFIG_PATH" default:"config.yaml" description:"path to the YAML config"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("could not load .env")
	}

	cfg, err := config.LoadConfig(opts.Config)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logging.Init(cfg.Log.Level, cfg.Log.JSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			logrus.WithError(err).Fatal("migrate database")
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("redis unavailable, revocation checks will fail and every request will be served as anonymous")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logrus.WithError(err).Warn("kafka unavailable, booking events will be dropped")
	}

	authOpts := []session.Option{}
	if cfg.Session.TokenIssuer != "" {
		authOpts = append(authOpts, session.WithIssuer(cfg.Session.TokenIssuer))
	}
	auth := session.NewAuthenticator(cfg.Session.JWTSecret, redisCache, authOpts...)

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	flightService := flights.NewFlightService(flightRepo, redisCache, cfg.Booking.DefaultListLimit)
	bookingService := booking.NewBookingService(
		bookingRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, auth, redisCache, flightService, bookingService); err != nil {
		logrus.WithError(err).Fatal("server error")
	}
}
