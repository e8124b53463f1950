package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

const profileColumns = `id, email, password_hash, full_name, avatar_url, user_type, property_id,
	unit_number, phone, rent_amount, deposit_amount, balance, lease_start, lease_end, status, manager_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var (
		p                   models.Profile
		propertyID, manager sql.NullString
		rent, deposit       decimal.NullDecimal
		start, end          sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.AvatarURL, &p.UserType, &propertyID,
		&p.UnitNumber, &p.Phone, &rent, &deposit, &p.Balance, &start, &end, &p.Status, &manager)
	if err != nil {
		return nil, err
	}
	p.PropertyID = stringPtr(propertyID)
	p.ManagerID = stringPtr(manager)
	if rent.Valid {
		p.RentAmount = &rent.Decimal
	}
	if deposit.Valid {
		p.DepositAmount = &deposit.Decimal
	}
	if start.Valid {
		t := models.Day(start.Time)
		p.LeaseStart = &t
	}
	if end.Valid {
		t := models.Day(end.Time)
		p.LeaseEnd = &t
	}
	return &p, nil
}

// CreateProfile inserts a profile and returns its id. A taken email yields
// ErrAlreadyExists.
func (s *Storage) CreateProfile(ctx context.Context, p models.Profile) (string, error) {
	const op = "storage.CreateProfile"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	query := `INSERT INTO profiles (email, password_hash, full_name, user_type, phone)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query, p.Email, p.PasswordHash, p.FullName, p.UserType, p.Phone).Scan(&id)
	if err != nil {
		return "", wrap(op, err)
	}
	return id, nil
}

// GetProfile returns the profile with id.
func (s *Storage) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		return nil, wrap(op, err)
	}
	return p, nil
}

// GetProfileByEmail returns the profile registered with email.
func (s *Storage) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const op = "storage.GetProfileByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(email) = lower($1)`, email)
	p, err := scanProfile(row)
	if err != nil {
		return nil, wrap(op, err)
	}
	return p, nil
}

// LeaseTerms assigns a tenant to a unit.
type LeaseTerms struct {
	PropertyID string
	UnitNumber string
	Rent       decimal.Decimal
	Deposit    *decimal.Decimal
	Start      time.Time
	End        time.Time
}

// AssignLease records lease terms on a tenant profile and links it to the
// property's manager. It returns ErrNotFound when the tenant does not exist
// or the property is not managed by managerID.
func (s *Storage) AssignLease(ctx context.Context, managerID, tenantID string, terms LeaseTerms) error {
	const op = "storage.AssignLease"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE profiles p
			  SET property_id = pr.id, unit_number = $3, rent_amount = $4, deposit_amount = $5,
			      lease_start = $6, lease_end = $7, manager_id = pr.manager_id, status = 'active'
			  FROM properties pr
			  WHERE p.id = $1 AND p.user_type = 'tenant' AND pr.id = $2 AND pr.manager_id = $8`
	var deposit decimal.NullDecimal
	if terms.Deposit != nil {
		deposit = decimal.NewNullDecimal(*terms.Deposit)
	}
	res, err := s.DB.ExecContext(ctx, query, tenantID, terms.PropertyID, terms.UnitNumber, terms.Rent, deposit,
		models.Day(terms.Start), models.Day(terms.End), managerID)
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

// ListActiveTenants returns tenants whose lease has not ended by today.
func (s *Storage) ListActiveTenants(ctx context.Context, today time.Time) ([]models.Profile, error) {
	const op = "storage.ListActiveTenants"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + profileColumns + `
			  FROM profiles
			  WHERE user_type = 'tenant'
			    AND rent_amount IS NOT NULL
			    AND lease_start IS NOT NULL
			    AND lease_end >= $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, models.Day(today))
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var result []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}
