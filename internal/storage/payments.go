package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

// ListPayments returns a tenant's payment records, newest first.
func (s *Storage) ListPayments(ctx context.Context, tenantID string) ([]models.PaymentRecord, error) {
	const op = "storage.ListPayments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, tenant_id, payment_date, amount, method, status, notes
			  FROM payments
			  WHERE tenant_id = $1
			  ORDER BY payment_date DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	result := []models.PaymentRecord{}
	for rows.Next() {
		var (
			p    models.PaymentRecord
			date time.Time
		)
		if err := rows.Scan(&p.ID, &p.TenantID, &date, &p.Amount, &p.Method, &p.Status, &p.Notes); err != nil {
			return nil, wrap(op, err)
		}
		p.Date = date.Format(time.DateOnly)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// SavePayment stores a payment record and, when it is completed, lowers the
// tenant's balance by its amount in the same transaction. The record date
// must be in 2006-01-02 form. It returns the new record id.
func (s *Storage) SavePayment(ctx context.Context, p models.PaymentRecord, providerPaymentID string) (string, error) {
	const op = "storage.SavePayment"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}
	date, err := time.Parse(time.DateOnly, p.Date)
	if err != nil {
		return "", fmt.Errorf("%s: payment date: %w", op, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", wrap(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO payments (tenant_id, payment_date, amount, method, status, notes, provider_payment_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.TenantID, date, p.Amount, p.Method, p.Status, p.Notes, nullString(&providerPaymentID)).Scan(&id)
	if err != nil {
		return "", wrap(op, err)
	}

	if p.Status == models.PaymentCompleted {
		res, err := tx.ExecContext(ctx, `UPDATE profiles SET balance = balance - $1 WHERE id = $2`, p.Amount, p.TenantID)
		if err != nil {
			return "", wrap(op, err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			if err == nil {
				err = sql.ErrNoRows
			}
			return "", wrap(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", wrap(op, err)
	}
	return id, nil
}

// SettlePayment moves the pending payment known to the provider as
// providerPaymentID to status and returns its tenant id. A completed
// settlement lowers the tenant's balance in the same transaction. Payments
// that are no longer pending are left untouched and yield ErrNotPending.
func (s *Storage) SettlePayment(ctx context.Context, providerPaymentID string, status models.PaymentStatus) (string, error) {
	const op = "storage.SettlePayment"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", wrap(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	var current models.PaymentStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM payments WHERE provider_payment_id = $1 FOR UPDATE`,
		providerPaymentID).Scan(&current)
	if err != nil {
		return "", wrap(op, err)
	}
	if current != models.PaymentPending {
		return "", fmt.Errorf("%s: %w", op, ErrNotPending)
	}

	var (
		tenantID string
		amount   decimal.Decimal
	)
	err = tx.QueryRowContext(ctx,
		`UPDATE payments SET status = $1
		 WHERE provider_payment_id = $2
		 RETURNING tenant_id, amount`,
		status, providerPaymentID).Scan(&tenantID, &amount)
	if err != nil {
		return "", wrap(op, err)
	}

	if status == models.PaymentCompleted {
		if _, err := tx.ExecContext(ctx, `UPDATE profiles SET balance = balance - $1 WHERE id = $2`, amount, tenantID); err != nil {
			return "", wrap(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", wrap(op, err)
	}
	return tenantID, nil
}
