package repositories

import (
	"context"
	"time"

	"github.com/obs-bank/ledger-core/internal/core/domain"
)

// TransactionReader defines read operations over the transaction log.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves transactions touching the given
	// account, newest first (descending sequence).
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByStatus retrieves transactions in the given lifecycle
	// state, oldest first.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
}

// TransactionWriter defines the append and transition operations of the log.
// Transactions are never deleted.
type TransactionWriter interface {
	// SaveTransaction appends a new transaction and assigns its monotonic
	// sequence number. The assigned sequence is written back into txn.
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error

	// UpdateTransactionStatus transitions a transaction from one status to
	// another. The transition is guarded on the from status: it returns
	// apperrors.ErrInvalidState when the stored status does not match, so
	// two concurrent resolutions of the same transaction cannot both
	// succeed. Returns apperrors.ErrNotFound for unknown IDs.
	UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedBy string, now time.Time) error
}

// TransactionRepository combines the reader and writer sides of the log.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
