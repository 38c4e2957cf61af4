package repositories

import (
	"context"

	"github.com/obs-bank/ledger-core/internal/core/domain"
)

// BillPaymentRepository defines persistence operations for bill payments.
type BillPaymentRepository interface {
	// SaveBillPayment persists a new bill payment record.
	SaveBillPayment(ctx context.Context, payment domain.BillPaymentRecord) error

	// ListBillPaymentsByUser retrieves all bill payments made by the user.
	ListBillPaymentsByUser(ctx context.Context, userID string) ([]domain.BillPaymentRecord, error)
}
