package storage

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

const maintenanceSelect = `SELECT m.id, m.title, m.description, m.property_id, COALESCE(pr.name, ''),
		m.tenant_id, COALESCE(t.full_name, ''), m.unit_number, m.priority, m.status, m.created_at, m.updated_at
	FROM maintenance_requests m
	JOIN properties pr ON pr.id = m.property_id
	LEFT JOIN profiles t ON t.id = m.tenant_id`

// CreateMaintenanceRequest inserts a request with status open and returns its id.
func (s *Storage) CreateMaintenanceRequest(ctx context.Context, r models.MaintenanceRequest) (string, error) {
	const op = "storage.CreateMaintenanceRequest"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var id string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO maintenance_requests (title, description, property_id, tenant_id, unit_number, priority)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		r.Title, r.Description, r.PropertyID, nullString(&r.TenantID), r.UnitNumber, r.Priority).Scan(&id)
	if err != nil {
		return "", wrap(op, err)
	}
	return id, nil
}

// ListMaintenanceByManager returns requests for every property of managerID.
func (s *Storage) ListMaintenanceByManager(ctx context.Context, managerID string) ([]models.MaintenanceRequest, error) {
	const op = "storage.ListMaintenanceByManager"
	return s.listMaintenance(ctx, op, maintenanceSelect+` WHERE pr.manager_id = $1 ORDER BY m.created_at DESC`, managerID)
}

// ListMaintenanceByTenant returns the requests filed by tenantID.
func (s *Storage) ListMaintenanceByTenant(ctx context.Context, tenantID string) ([]models.MaintenanceRequest, error) {
	const op = "storage.ListMaintenanceByTenant"
	return s.listMaintenance(ctx, op, maintenanceSelect+` WHERE m.tenant_id = $1 ORDER BY m.created_at DESC`, tenantID)
}

// UpdateMaintenanceStatus moves a request of one of managerID's properties to status.
func (s *Storage) UpdateMaintenanceStatus(ctx context.Context, managerID, id string, status models.MaintenanceStatus) error {
	const op = "storage.UpdateMaintenanceStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE maintenance_requests m SET status = $1, updated_at = NOW()
		 FROM properties pr
		 WHERE m.id = $2 AND pr.id = m.property_id AND pr.manager_id = $3`,
		status, id, managerID)
	if err != nil {
		return wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return wrap(op, sql.ErrNoRows)
	}
	return nil
}

func (s *Storage) listMaintenance(ctx context.Context, op, query string, arg string) ([]models.MaintenanceRequest, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	result := []models.MaintenanceRequest{}
	for rows.Next() {
		var (
			r        models.MaintenanceRequest
			tenantID sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.PropertyID, &r.PropertyName,
			&tenantID, &r.TenantName, &r.UnitNumber, &r.Priority, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, wrap(op, err)
		}
		r.TenantID = tenantID.String
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}
