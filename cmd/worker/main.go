package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/pingo/config"
	"github.com/Domenick1991/pingo/internal/email"
	"github.com/Domenick1991/pingo/internal/kafka"
	"github.com/Domenick1991/pingo/internal/logging"
	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type options struct {
	Config string `short:"c" long:"config" env:"CONFIG_PATH" default:"config.yaml" description:"path to the YAML config"`
	From   string `long:"from" env:"PINGO_MAIL_FROM" description:"sender address for notification mails"`
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(opts.From)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("topic", cfg.Kafka.NotificationsTopic).Info("consuming booking notifications")
		return consumer.Consume(ctx, kafka.BookingEventHandler(sender.Send))
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("consumer stopped")
		return
	}
	logrus.Info("worker stopped")
}
