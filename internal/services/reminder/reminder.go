// Package reminder finds tenants whose next rent is almost due and publishes
// a reminder for each to the notifications exchange.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/magabrotheeeer/tenant-portal/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/schedule"
)

// Repository lists tenants and their payments.
type Repository interface {
	ListActiveTenants(ctx context.Context, today time.Time) ([]models.Profile, error)
	ListPayments(ctx context.Context, tenantID string) ([]models.PaymentRecord, error)
}

// Publisher sends a message to the broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service schedules rent reminders.
type Service struct {
	repo     Repository
	pub      Publisher
	leadDays int
	now      func() time.Time
	log      *slog.Logger
}

// NewService returns a reminder Service. Tenants are reminded once their next
// unpaid due date is at most leadDays away, overdue dates included.
func NewService(repo Repository, pub Publisher, leadDays int, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		pub:      pub,
		leadDays: leadDays,
		now:      time.Now,
		log:      log,
	}
}

// Run checks immediately and then every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	const op = "reminder.Run"
	c := cron.New()
	_, err := c.AddFunc("@every "+interval.String(), func() { s.tick(ctx) })
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.tick(ctx)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Info("reminder scheduler stopped")
	return nil
}

func (s *Service) tick(ctx context.Context) {
	sent, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("reminder run failed", sl.Err(err))
		return
	}
	s.log.Info("reminder run finished", slog.Int("sent", sent))
}

// RunOnce publishes reminders for today and returns how many were sent.
// A failed publish is logged and skipped.
func (s *Service) RunOnce(ctx context.Context) (int, error) {
	const op = "reminder.RunOnce"
	today := models.Day(s.now())

	tenants, err := s.repo.ListActiveTenants(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(tenants) == 0 {
		s.log.Info("no active leases found")
		return 0, nil
	}

	sent := 0
	for _, t := range tenants {
		msg, ok, err := s.reminderFor(ctx, today, &t)
		if err != nil {
			s.log.Error("failed to check tenant", slog.String("tenant_id", t.ID), sl.Err(err))
			continue
		}
		if !ok {
			continue
		}
		if err := s.pub.Publish(ctx, rabbitmq.RentUpcomingKey, msg); err != nil {
			s.log.Error("failed to publish reminder", slog.String("tenant_id", t.ID), sl.Err(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *Service) reminderFor(ctx context.Context, today time.Time, t *models.Profile) (models.RentReminder, bool, error) {
	payments, err := s.repo.ListPayments(ctx, t.ID)
	if err != nil {
		return models.RentReminder{}, false, err
	}

	next := schedule.Project(today, t.Lease(), payments, 1)
	if len(next) == 0 || next[0].Status != models.ProjectionUpcoming {
		return models.RentReminder{}, false, nil
	}
	if t.LeaseStart != nil && next[0].Date.Before(models.Day(*t.LeaseStart)) {
		return models.RentReminder{}, false, nil
	}
	if daysUntil(today, next[0].Date) > s.leadDays {
		return models.RentReminder{}, false, nil
	}

	return models.RentReminder{
		TenantID: t.ID,
		Email:    t.Email,
		FullName: t.FullName,
		DueDate:  next[0].Date,
		Amount:   next[0].Amount,
	}, true, nil
}

func daysUntil(today, due time.Time) int {
	return int(models.Day(due).Sub(models.Day(today)).Hours() / 24)
}
