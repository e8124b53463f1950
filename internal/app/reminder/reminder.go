// Package reminder runs the rent reminder scheduler process.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/tenant-portal/internal/config"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	reminderservice "github.com/magabrotheeeer/tenant-portal/internal/services/reminder"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

// App owns the broker connection and the storage used by the scheduler.
type App struct {
	db       *storage.Storage
	conn     *amqp.Connection
	ch       *amqp.Channel
	service  *reminderservice.Service
	interval time.Duration
	logger   *slog.Logger
}

// New connects to PostgreSQL and RabbitMQ and declares the notification topology.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "reminder.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationsExchange, rabbitmq.NotificationQueues())
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	publisher := rabbitmq.NewPublisher(ch, rabbitmq.NotificationsExchange)

	return &App{
		db:       db,
		conn:     conn,
		ch:       ch,
		service:  reminderservice.NewService(db, publisher, cfg.LeadDays, logger),
		interval: cfg.Interval,
		logger:   logger,
	}, nil
}

// Run schedules reminders until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("rent reminder scheduler started", slog.Duration("interval", a.interval))
	err := a.service.Run(ctx, a.interval)
	a.closeResources()
	if err != nil {
		return fmt.Errorf("reminder.Run: %w", err)
	}
	return nil
}

func (a *App) closeResources() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
