// Command activity-log consumes listing activity events and appends them to
// a plain log file.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/logging"
	"github.com/iliyamo/fyyur/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.IsProduction()})
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeLog()

	path := os.Getenv("ACTIVITY_LOG_PATH")
	if path == "" {
		path = "logs/activity.log"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("path", path).Info("activity consumer started")
	if err := queue.StartActivityConsumer(ctx, cfg.RabbitMQURL, path, log); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("activity consumer stopped")
	}
}
