// Package sender delivers notification emails for messages taken off the
// broker.
package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jordan-wright/email"

	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/smtp"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

// ErrNoRecipient is returned for a reminder without an email address.
var ErrNoRecipient = errors.New("reminder has no recipient")

// Service turns broker messages into emails.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewService returns a sender Service.
func NewService(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendRentReminder decodes a models.RentReminder and emails the tenant.
func (s *Service) SendRentReminder(ctx context.Context, body []byte) error {
	const op = "sender.SendRentReminder"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var msg models.RentReminder
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if strings.TrimSpace(msg.Email) == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRecipient)
	}

	e := email.NewEmail()
	e.From = s.transport.Sender()
	e.To = []string{msg.Email}
	e.Subject = "Rent due " + msg.DueDate.Format("January 2, 2006")
	e.Text = []byte(reminderText(msg))

	if err := s.send(e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("rent reminder sent", slog.String("tenant_id", msg.TenantID), slog.String("to", msg.Email))
	return nil
}

func reminderText(msg models.RentReminder) string {
	name := msg.FullName
	if name == "" {
		name = "tenant"
	}
	return fmt.Sprintf("Hello %s,\n\n"+
		"This is a reminder that your rent of $%s is due on %s.\n"+
		"Payments received after the 5th of the month incur a late fee.\n\n"+
		"You can pay from the Payments page of the tenant portal.\n",
		name, msg.Amount.StringFixed(2), msg.DueDate.Format("January 2, 2006"))
}

func (s *Service) send(e *email.Email) error {
	raw, err := e.Bytes()
	if err != nil {
		return err
	}

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(e.From); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", e.From), sl.Err(err))
		return err
	}
	for _, addr := range e.To {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err := wc.Write(raw); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err := wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	return client.Quit()
}
