// Package memory provides in-process implementations of the repository
// ports: mutex-guarded maps with the same compare-and-swap semantics the
// pgsql package gets from conditional UPDATEs. It backs the concurrency
// tests and local runs without Postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
)

type AccountRepository struct {
	mu       sync.RWMutex
	byID     map[string]domain.Account
	byNumber map[string]string // account number -> account ID
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:     make(map[string]domain.Account),
		byNumber: make(map[string]string),
	}
}

var _ portsrepo.AccountRepository = (*AccountRepository)(nil)

// SaveAccount persists a new account.
func (r *AccountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[account.AccountID]; exists {
		return apperrors.ErrDuplicate
	}
	if _, exists := r.byNumber[account.AccountNumber]; exists {
		return apperrors.ErrDuplicate
	}

	r.byID[account.AccountID] = account
	r.byNumber[account.AccountNumber] = account.AccountID
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *AccountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

// FindAccountByNumber retrieves an account by its external-facing number.
func (r *AccountRepository) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountID, ok := r.byNumber[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	account := r.byID[accountID]
	return &account, nil
}

// ListAccountsByUser retrieves all accounts owned by the given user.
func (r *AccountRepository) ListAccountsByUser(_ context.Context, userID string) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := []domain.Account{}
	for _, account := range r.byID {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// CompareAndSwapBalance atomically replaces the balance only if the stored
// value still equals expected and the account is still ACTIVE.
func (r *AccountRepository) CompareAndSwapBalance(_ context.Context, accountID string, expected, newBalance decimal.Decimal, updatedBy string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[accountID]
	if !ok {
		return false, apperrors.ErrNotFound
	}

	if account.Status != domain.AccountActive {
		return false, nil
	}
	if !account.Balance.Equal(expected) {
		return false, nil
	}

	account.Balance = newBalance
	account.LastUpdatedAt = now
	account.LastUpdatedBy = updatedBy
	r.byID[accountID] = account
	return true, nil
}

// RefundBalance atomically adds amount back to the balance, regardless of
// the account's status.
func (r *AccountRepository) RefundBalance(_ context.Context, accountID string, amount decimal.Decimal, updatedBy string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}

	account.Balance = account.Balance.Add(amount)
	account.LastUpdatedAt = now
	account.LastUpdatedBy = updatedBy
	r.byID[accountID] = account
	return nil
}

// SetAccountStatus updates the ACTIVE/FROZEN status of an account.
func (r *AccountRepository) SetAccountStatus(_ context.Context, accountID string, status domain.AccountStatus, updatedBy string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}

	account.Status = status
	account.LastUpdatedAt = now
	account.LastUpdatedBy = updatedBy
	r.byID[accountID] = account
	return nil
}
