package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
)

type TransactionRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Transaction
	nextSeq int64
}

// NewTransactionRepository creates an empty in-memory transaction log.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byID: make(map[string]domain.Transaction),
	}
}

var _ portsrepo.TransactionRepository = (*TransactionRepository)(nil)

// SaveTransaction appends a new transaction and assigns its sequence.
func (r *TransactionRepository) SaveTransaction(_ context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[txn.TransactionID]; exists {
		return apperrors.ErrDuplicate
	}

	r.nextSeq++
	txn.Sequence = r.nextSeq
	r.byID[txn.TransactionID] = *txn
	return nil
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *TransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txn, ok := r.byID[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

// ListTransactionsByAccount retrieves transactions for the account, newest
// first.
func (r *TransactionRepository) ListTransactionsByAccount(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txns := []domain.Transaction{}
	for _, txn := range r.byID {
		if txn.AccountID == accountID {
			txns = append(txns, txn)
		}
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].Sequence > txns[j].Sequence })
	return txns, nil
}

// ListTransactionsByStatus retrieves transactions in the given state, oldest
// first.
func (r *TransactionRepository) ListTransactionsByStatus(_ context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txns := []domain.Transaction{}
	for _, txn := range r.byID {
		if txn.Status == status {
			txns = append(txns, txn)
		}
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].Sequence < txns[j].Sequence })
	return txns, nil
}

// UpdateTransactionStatus transitions a transaction between lifecycle
// states, guarded on the from status.
func (r *TransactionRepository) UpdateTransactionStatus(_ context.Context, transactionID string, from, to domain.TransactionStatus, updatedBy string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	txn, ok := r.byID[transactionID]
	if !ok {
		return apperrors.ErrNotFound
	}

	if txn.Status != from {
		return apperrors.ErrInvalidState
	}

	txn.Status = to
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = updatedBy
	r.byID[transactionID] = txn
	return nil
}
