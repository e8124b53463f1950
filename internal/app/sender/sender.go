// Package sender runs the process that emails queued rent reminders.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/tenant-portal/internal/config"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/tenant-portal/internal/services/sender"
)

// App consumes the rent reminder queue.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	service *senderservice.Service
	logger  *slog.Logger
}

// New connects to RabbitMQ and prepares the SMTP transport.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "sender.New"

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationsExchange, rabbitmq.NotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		conn:    conn,
		ch:      ch,
		service: senderservice.NewService(smtp.NewTransport(cfg.SMTP, logger), logger),
		logger:  logger,
	}, nil
}

// Run consumes reminders until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("notification sender started", slog.String("queue", rabbitmq.RentUpcomingQueue))
	if err := rabbitmq.Consume(ctx, a.logger, a.ch, rabbitmq.RentUpcomingQueue, a.service.SendRentReminder); err != nil {
		a.closeResources()
		return fmt.Errorf("sender.Run: %w", err)
	}
	<-ctx.Done()
	a.logger.Info("shutting down notification sender")
	a.closeResources()
	return nil
}

func (a *App) closeResources() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}
