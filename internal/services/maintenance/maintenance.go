// Package maintenance serves the repair request pages of both portals.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	views "github.com/magabrotheeeer/tenant-portal/internal/maintenance"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

var (
	// ErrForbidden is returned when the caller does not own the property.
	ErrForbidden = errors.New("property is not accessible")
	// ErrNoUnit is returned when a tenant without a lease files a request.
	ErrNoUnit = errors.New("tenant has no unit")
)

// Repository stores maintenance requests.
type Repository interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	IsPropertyManagedBy(ctx context.Context, propertyID, managerID string) (bool, error)
	CreateMaintenanceRequest(ctx context.Context, r models.MaintenanceRequest) (string, error)
	ListMaintenanceByManager(ctx context.Context, managerID string) ([]models.MaintenanceRequest, error)
	ListMaintenanceByTenant(ctx context.Context, tenantID string) ([]models.MaintenanceRequest, error)
	UpdateMaintenanceStatus(ctx context.Context, managerID, id string, status models.MaintenanceStatus) error
}

// Board is the manager dashboard: filtered tabs plus counts over every request.
type Board struct {
	Open    []models.MaintenanceRequest `json:"open"`
	Closed  []models.MaintenanceRequest `json:"closed"`
	Summary models.MaintenanceSummary   `json:"summary"`
}

// Service implements the maintenance operations.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService returns a maintenance Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// ManagerBoard lists the requests of managerID's properties matching q.
func (s *Service) ManagerBoard(ctx context.Context, managerID string, q views.Query) (*Board, error) {
	const op = "maintenance.ManagerBoard"
	q, err := q.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all, err := s.repo.ListMaintenanceByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	open, closed := views.Split(views.Apply(all, q))
	return &Board{
		Open:    open,
		Closed:  closed,
		Summary: views.Summarize(all),
	}, nil
}

// Summary counts the requests of managerID's properties.
func (s *Service) Summary(ctx context.Context, managerID string) (models.MaintenanceSummary, error) {
	const op = "maintenance.Summary"
	all, err := s.repo.ListMaintenanceByManager(ctx, managerID)
	if err != nil {
		return models.MaintenanceSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return views.Summarize(all), nil
}

// TenantRequests returns the tenant's own requests, newest first.
func (s *Service) TenantRequests(ctx context.Context, tenantID string) ([]models.MaintenanceRequest, error) {
	const op = "maintenance.TenantRequests"
	list, err := s.repo.ListMaintenanceByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views.Apply(list, views.Query{}), nil
}

// CreateByTenant files a request for the tenant's leased unit. The unit on
// the profile wins over the one in req.
func (s *Service) CreateByTenant(ctx context.Context, tenantID string, req models.DummyMaintenanceRequest) (string, error) {
	const op = "maintenance.CreateByTenant"
	profile, err := s.repo.GetProfile(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if profile.UserType != models.UserTenant || profile.PropertyID == nil {
		return "", fmt.Errorf("%s: %w", op, ErrNoUnit)
	}
	if req.PropertyID != *profile.PropertyID {
		return "", fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	unit := profile.UnitNumber
	if unit == "" {
		unit = req.UnitNumber
	}
	return s.create(ctx, op, models.MaintenanceRequest{
		Title:       req.Title,
		Description: req.Description,
		PropertyID:  req.PropertyID,
		TenantID:    tenantID,
		UnitNumber:  unit,
		Priority:    req.Priority,
	})
}

// CreateByManager files a request on one of the manager's properties,
// optionally on behalf of a tenant.
func (s *Service) CreateByManager(ctx context.Context, managerID string, req models.DummyMaintenanceRequest) (string, error) {
	const op = "maintenance.CreateByManager"
	ok, err := s.repo.IsPropertyManagedBy(ctx, req.PropertyID, managerID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return s.create(ctx, op, models.MaintenanceRequest{
		Title:       req.Title,
		Description: req.Description,
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		UnitNumber:  req.UnitNumber,
		Priority:    req.Priority,
	})
}

// UpdateStatus moves a request of one of the manager's properties.
func (s *Service) UpdateStatus(ctx context.Context, managerID, id string, status models.MaintenanceStatus) error {
	const op = "maintenance.UpdateStatus"
	if err := s.repo.UpdateMaintenanceStatus(ctx, managerID, id, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("maintenance status updated", slog.String("request_id", id), slog.String("status", string(status)))
	return nil
}

func (s *Service) create(ctx context.Context, op string, r models.MaintenanceRequest) (string, error) {
	id, err := s.repo.CreateMaintenanceRequest(ctx, r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("maintenance request created",
		slog.String("request_id", id),
		slog.String("property_id", r.PropertyID),
		slog.String("priority", string(r.Priority)))
	return id, nil
}
