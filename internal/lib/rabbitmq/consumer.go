package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
)

// Handler processes one message body. A non-nil error requeues the delivery.
type Handler func(ctx context.Context, body []byte) error

// Consume starts a consumer on queue and returns once it is registered.
// Deliveries are handled by at most prefetch goroutines until ctx is done.
func Consume(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queue string, handler Handler) error {
	const op = "rabbitmq.Consume"
	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queue))
	sem := make(chan struct{}, prefetch)
	go func() {
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					log.Info("delivery channel closed")
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(ctx, d.Body); err != nil {
						log.Error("handler failed, requeueing", sl.Err(err))
						if nackErr := d.Nack(false, true); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := d.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
