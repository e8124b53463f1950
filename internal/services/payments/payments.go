// Package payments serves the tenant payments page: history, the upcoming
// rent schedule, the account overview and recording new payments.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/tenant-portal/internal/cache"
	"github.com/magabrotheeeer/tenant-portal/internal/history"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/month"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/paymentprovider"
	"github.com/magabrotheeeer/tenant-portal/internal/schedule"
)

var (
	// ErrNotTenant is returned when the profile is not a tenant account.
	ErrNotTenant = errors.New("profile is not a tenant")
	// ErrInvalidAmount is returned for a non-positive or malformed amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrNotFinal is returned when a settlement names a non-final status.
	ErrNotFinal = errors.New("settlement status must be completed or failed")
)

// Repository reads profiles and the payment ledger.
type Repository interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ListPayments(ctx context.Context, tenantID string) ([]models.PaymentRecord, error)
	SavePayment(ctx context.Context, p models.PaymentRecord, providerPaymentID string) (string, error)
	SettlePayment(ctx context.Context, providerPaymentID string, status models.PaymentStatus) (string, error)
}

// Cache holds profiles between requests.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Charger charges a payment with the card processor.
type Charger interface {
	Charge(ctx context.Context, req paymentprovider.ChargeRequest) (*paymentprovider.ChargeResult, error)
}

// Overview is the summary shown above the tenant's payment history.
type Overview struct {
	MonthlyRent     *decimal.Decimal          `json:"monthly_rent"`
	Balance         decimal.Decimal           `json:"balance"`
	SuggestedAmount decimal.Decimal           `json:"suggested_amount"`
	LateFee         decimal.Decimal           `json:"late_fee"`
	PaymentCount    int                       `json:"payment_count"`
	RemainingDues   int                       `json:"remaining_dues"`
	LeaseStart      *time.Time                `json:"lease_start,omitempty"`
	LeaseEnd        *time.Time                `json:"lease_end,omitempty"`
	Upcoming        []models.ProjectedPayment `json:"upcoming"`
	HistoryFrom     time.Time                 `json:"history_from"`
	HistoryTo       time.Time                 `json:"history_to"`
}

// Service implements the tenant payment operations.
type Service struct {
	repo       Repository
	cache      Cache
	charger    Charger
	profileTTL time.Duration
	log        *slog.Logger
}

// NewService returns a payments Service.
func NewService(repo Repository, cache Cache, charger Charger, profileTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		cache:      cache,
		charger:    charger,
		profileTTL: profileTTL,
		log:        log,
	}
}

// History returns the tenant's payments within rng; a nil rng returns all.
func (s *Service) History(ctx context.Context, tenantID string, rng *models.DateRange) ([]models.PaymentRecord, error) {
	const op = "payments.History"
	records, err := s.repo.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history.Filter(records, rng), nil
}

// Schedule projects the tenant's next horizon rent due dates as of today.
func (s *Service) Schedule(ctx context.Context, tenantID string, today time.Time, horizon int) ([]models.ProjectedPayment, error) {
	const op = "payments.Schedule"
	profile, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	records, err := s.repo.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return schedule.Project(today, profile.Lease(), records, horizon), nil
}

// Overview builds the account summary as of today.
func (s *Service) Overview(ctx context.Context, tenantID string, today time.Time) (*Overview, error) {
	const op = "payments.Overview"
	profile, err := s.tenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	records, err := s.repo.ListPayments(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lease := profile.Lease()
	window := history.DefaultRange(today)
	o := &Overview{
		MonthlyRent:     profile.RentAmount,
		Balance:         profile.Balance,
		SuggestedAmount: SuggestedAmount(profile),
		LateFee:         decimal.Zero,
		PaymentCount:    len(records),
		LeaseStart:      profile.LeaseStart,
		LeaseEnd:        profile.LeaseEnd,
		Upcoming:        schedule.Project(today, lease, records, schedule.DefaultHorizon),
		HistoryFrom:     *window.From,
		HistoryTo:       *window.To,
	}
	if lease.End != nil {
		from := schedule.Anchor(today)
		if lease.Start != nil && models.Day(*lease.Start).After(from) {
			from = models.Day(*lease.Start)
		}
		o.RemainingDues = month.CountDueDates(from, *lease.End)
	}
	if lease.Rent != nil {
		o.LateFee = lateFeeToday(today, lease, records)
	}
	return o, nil
}

// Record charges a payment for the tenant and stores it dated today.
func (s *Service) Record(ctx context.Context, tenantID string, req models.DummyPaymentRequest, today time.Time) (*models.PaymentRecord, error) {
	const op = "payments.Record"
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}
	amount = amount.Round(2)

	if _, err := s.tenant(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	charge, err := s.charger.Charge(ctx, paymentprovider.ChargeRequest{
		TenantID:    tenantID,
		Amount:      amount,
		Method:      req.Method,
		Description: "Rent payment " + today.Format("January 2006"),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record := models.PaymentRecord{
		TenantID: tenantID,
		Date:     models.Day(today).Format(time.DateOnly),
		Amount:   amount,
		Method:   req.Method,
		Status:   charge.Status,
		Notes:    req.Notes,
	}
	record.ID, err = s.repo.SavePayment(ctx, record, charge.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment recorded",
		slog.String("tenant_id", tenantID),
		slog.String("payment_id", record.ID),
		slog.String("status", string(record.Status)))

	if err := s.cache.Invalidate(ctx, cache.ProfileKey(tenantID)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("tenant_id", tenantID), sl.Err(err))
	}
	return &record, nil
}

// Settle finalizes a pending payment once the provider reports its outcome.
func (s *Service) Settle(ctx context.Context, providerPaymentID string, status models.PaymentStatus) error {
	const op = "payments.Settle"
	if status != models.PaymentCompleted && status != models.PaymentFailed {
		return fmt.Errorf("%s: %w", op, ErrNotFinal)
	}

	tenantID, err := s.repo.SettlePayment(ctx, providerPaymentID, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment settled",
		slog.String("tenant_id", tenantID),
		slog.String("provider_payment_id", providerPaymentID),
		slog.String("status", string(status)))

	if err := s.cache.Invalidate(ctx, cache.ProfileKey(tenantID)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("tenant_id", tenantID), sl.Err(err))
	}
	return nil
}

// SuggestedAmount is what the pay button offers: the outstanding balance when
// there is one, otherwise the monthly rent.
func SuggestedAmount(p *models.Profile) decimal.Decimal {
	if p.Balance.IsPositive() {
		return p.Balance
	}
	if p.RentAmount != nil {
		return *p.RentAmount
	}
	return decimal.Zero
}

// lateFeeToday is the fee owed if this month's rent were paid today.
func lateFeeToday(today time.Time, lease models.Lease, records []models.PaymentRecord) decimal.Decimal {
	due := month.FirstOf(today)
	if lease.Start != nil && due.Before(models.Day(*lease.Start)) {
		return decimal.Zero
	}
	current := schedule.Project(due, lease, records, 1)
	if len(current) == 0 || current[0].Status == models.ProjectionPaid {
		return decimal.Zero
	}
	return schedule.LateFee(*lease.Rent, due, today)
}

func (s *Service) tenant(ctx context.Context, id string) (*models.Profile, error) {
	key := cache.ProfileKey(id)
	var cached models.Profile
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("profile cache read failed", slog.String("key", key), sl.Err(err))
	}
	profile := &cached
	if !found || err != nil {
		profile, err = s.repo.GetProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, profile, s.profileTTL); err != nil {
			s.log.Warn("failed to cache profile", slog.String("key", key), sl.Err(err))
		}
	}
	if profile.UserType != models.UserTenant {
		return nil, ErrNotTenant
	}
	return profile, nil
}
