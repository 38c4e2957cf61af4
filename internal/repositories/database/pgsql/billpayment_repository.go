package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
	"github.com/obs-bank/ledger-core/internal/models"
)

type PgxBillPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewBillPaymentRepository creates a new repository for bill payments.
func NewBillPaymentRepository(pool *pgxpool.Pool) portsrepo.BillPaymentRepository {
	return &PgxBillPaymentRepository{pool: pool}
}

var _ portsrepo.BillPaymentRepository = (*PgxBillPaymentRepository)(nil)

func toDomainBillPayment(m models.BillPayment) domain.BillPaymentRecord {
	return domain.BillPaymentRecord{
		BillPaymentID: m.BillPaymentID,
		UserID:        m.UserID,
		BillerName:    m.BillerName,
		Amount:        m.Amount,
		Status:        domain.BillPaymentStatus(m.Status),
		DueDate:       m.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveBillPayment persists a new bill payment record.
func (r *PgxBillPaymentRepository) SaveBillPayment(ctx context.Context, payment domain.BillPaymentRecord) error {
	query := `
		INSERT INTO bill_payments (bill_payment_id, user_id, biller_name, amount, status, due_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := r.pool.Exec(ctx, query,
		payment.BillPaymentID,
		payment.UserID,
		payment.BillerName,
		payment.Amount,
		string(payment.Status),
		payment.DueDate,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save bill payment %s: %w", payment.BillPaymentID, err)
	}
	return nil
}

// ListBillPaymentsByUser retrieves all bill payments made by the user.
func (r *PgxBillPaymentRepository) ListBillPaymentsByUser(ctx context.Context, userID string) ([]domain.BillPaymentRecord, error) {
	query := `
		SELECT bill_payment_id, user_id, biller_name, amount, status, due_date, created_at, created_by, last_updated_at, last_updated_by
		FROM bill_payments
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill payments for user %s: %w", userID, err)
	}
	defer rows.Close()

	bills := []domain.BillPaymentRecord{}
	for rows.Next() {
		var m models.BillPayment
		err := rows.Scan(
			&m.BillPaymentID,
			&m.UserID,
			&m.BillerName,
			&m.Amount,
			&m.Status,
			&m.DueDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill payment row: %w", err)
		}
		bills = append(bills, toDomainBillPayment(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bill payment rows: %w", rows.Err())
	}

	return bills, nil
}
