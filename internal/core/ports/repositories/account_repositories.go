package repositories

import (
	"context"
	"time"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its external-facing number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by the given user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
//
// There is deliberately no plain balance setter here: forward mutations go
// through CompareAndSwapBalance, so concurrent mutators detect and retry on
// conflicting updates instead of silently overwriting each other, and
// reversals go through the atomic RefundBalance increment.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// CompareAndSwapBalance atomically replaces the account balance with
	// newBalance, but only if the stored balance still equals expected and
	// the account is still ACTIVE. It returns false (and no error) when
	// either guard does not match, and apperrors.ErrNotFound when the
	// account does not exist.
	CompareAndSwapBalance(ctx context.Context, accountID string, expected, newBalance decimal.Decimal, updatedBy string, now time.Time) (bool, error)

	// RefundBalance atomically adds amount back to the account balance,
	// regardless of the account's status. It exists for compensating
	// reversals: returning an account's own money after a failed transfer
	// leg must succeed even if the account was frozen mid-flight, or the
	// debited funds would vanish. Returns apperrors.ErrNotFound for
	// unknown accounts.
	RefundBalance(ctx context.Context, accountID string, amount decimal.Decimal, updatedBy string, now time.Time) error

	// SetAccountStatus updates the ACTIVE/FROZEN status of an account.
	SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedBy string, now time.Time) error
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
