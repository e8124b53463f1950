package storage

import (
	"context"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

// CreateProperty inserts a property owned by managerID and returns its id.
func (s *Storage) CreateProperty(ctx context.Context, p models.Property) (string, error) {
	const op = "storage.CreateProperty"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var id string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO properties (name, address, manager_id) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.Address, p.ManagerID).Scan(&id)
	if err != nil {
		return "", wrap(op, err)
	}
	return id, nil
}

// ListProperties returns the properties managed by managerID.
func (s *Storage) ListProperties(ctx context.Context, managerID string) ([]models.Property, error) {
	const op = "storage.ListProperties"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, address, manager_id FROM properties WHERE manager_id = $1 ORDER BY name`, managerID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	result := []models.Property{}
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.ManagerID); err != nil {
			return nil, wrap(op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// IsPropertyManagedBy reports whether managerID owns propertyID.
func (s *Storage) IsPropertyManagedBy(ctx context.Context, propertyID, managerID string) (bool, error) {
	const op = "storage.IsPropertyManagedBy"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var ok bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1 AND manager_id = $2)`,
		propertyID, managerID).Scan(&ok)
	if err != nil {
		return false, wrap(op, err)
	}
	return ok, nil
}
