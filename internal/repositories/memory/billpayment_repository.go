package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
)

type BillPaymentRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.BillPaymentRecord
}

// NewBillPaymentRepository creates an empty in-memory bill payment store.
func NewBillPaymentRepository() *BillPaymentRepository {
	return &BillPaymentRepository{
		byID: make(map[string]domain.BillPaymentRecord),
	}
}

var _ portsrepo.BillPaymentRepository = (*BillPaymentRepository)(nil)

// SaveBillPayment persists a new bill payment record.
func (r *BillPaymentRepository) SaveBillPayment(_ context.Context, payment domain.BillPaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[payment.BillPaymentID] = payment
	return nil
}

// ListBillPaymentsByUser retrieves all bill payments made by the user,
// newest first.
func (r *BillPaymentRepository) ListBillPaymentsByUser(_ context.Context, userID string) ([]domain.BillPaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bills := []domain.BillPaymentRecord{}
	for _, payment := range r.byID {
		if payment.UserID == userID {
			bills = append(bills, payment)
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].CreatedAt.After(bills[j].CreatedAt) })
	return bills, nil
}
