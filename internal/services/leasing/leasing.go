// Package leasing lets managers register properties and put tenants on a lease.
package leasing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/tenant-portal/internal/cache"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

// ErrInvalidTerms is returned for unusable lease terms.
var ErrInvalidTerms = errors.New("invalid lease terms")

// Repository stores properties and lease terms.
type Repository interface {
	CreateProperty(ctx context.Context, p models.Property) (string, error)
	ListProperties(ctx context.Context, managerID string) ([]models.Property, error)
	AssignLease(ctx context.Context, managerID, tenantID string, terms storage.LeaseTerms) error
}

// Invalidator drops cached profiles.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// Service implements the property and lease operations.
type Service struct {
	repo  Repository
	cache Invalidator
	log   *slog.Logger
}

// NewService returns a leasing Service.
func NewService(repo Repository, cache Invalidator, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// CreateProperty registers a property owned by managerID.
func (s *Service) CreateProperty(ctx context.Context, managerID string, req models.DummyProperty) (string, error) {
	const op = "leasing.CreateProperty"
	id, err := s.repo.CreateProperty(ctx, models.Property{
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		ManagerID: managerID,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListProperties returns the properties of managerID.
func (s *Service) ListProperties(ctx context.Context, managerID string) ([]models.Property, error) {
	const op = "leasing.ListProperties"
	list, err := s.repo.ListProperties(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// AssignLease puts tenantID on a lease in one of managerID's properties.
func (s *Service) AssignLease(ctx context.Context, managerID, tenantID string, req models.DummyLease) error {
	const op = "leasing.AssignLease"
	terms, err := parseTerms(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.AssignLease(ctx, managerID, tenantID, terms); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, cache.ProfileKey(tenantID)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("tenant_id", tenantID), sl.Err(err))
	}

	s.log.Info("lease assigned",
		slog.String("tenant_id", tenantID),
		slog.String("property_id", terms.PropertyID),
		slog.String("lease_end", terms.End.Format("2006-01-02")))
	return nil
}

func parseTerms(req models.DummyLease) (storage.LeaseTerms, error) {
	rent, err := decimal.NewFromString(req.RentAmount)
	if err != nil || rent.IsNegative() {
		return storage.LeaseTerms{}, fmt.Errorf("%w: rent_amount", ErrInvalidTerms)
	}
	terms := storage.LeaseTerms{
		PropertyID: req.PropertyID,
		UnitNumber: strings.TrimSpace(req.UnitNumber),
		Rent:       rent.Round(2),
	}

	if req.DepositAmount != "" {
		deposit, err := decimal.NewFromString(req.DepositAmount)
		if err != nil || deposit.IsNegative() {
			return storage.LeaseTerms{}, fmt.Errorf("%w: deposit_amount", ErrInvalidTerms)
		}
		deposit = deposit.Round(2)
		terms.Deposit = &deposit
	}

	terms.Start, terms.End, err = req.LeaseDates()
	if err != nil {
		return storage.LeaseTerms{}, fmt.Errorf("%w: %v", ErrInvalidTerms, err)
	}
	if terms.Start.After(terms.End) {
		return storage.LeaseTerms{}, fmt.Errorf("%w: lease_start after lease_end", ErrInvalidTerms)
	}
	return terms, nil
}
