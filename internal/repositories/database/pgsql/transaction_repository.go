package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
	"github.com/obs-bank/ledger-core/internal/models"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for the transaction log.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		Sequence:            m.Sequence,
		AccountID:           m.AccountID,
		Type:                domain.TransactionType(m.Type),
		Amount:              m.Amount,
		TargetAccountNumber: m.TargetAccountNumber,
		Status:              domain.TransactionStatus(m.Status),
		Description:         m.Description,
		Timestamp:           m.Timestamp,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, sequence, account_id, type, amount, target_account_number, description, status, timestamp, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	var targetNumber sql.NullString
	var description sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.Sequence,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&targetNumber,
		&description,
		&m.Status,
		&m.Timestamp,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if targetNumber.Valid {
		m.TargetAccountNumber = targetNumber.String
	}
	if description.Valid {
		m.Description = description.String
	}
	d := toDomainTransaction(m)
	return &d, nil
}

// SaveTransaction appends a new transaction. The sequence column is a
// BIGSERIAL, so append order is assigned by the database; the generated
// value is written back into txn.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, account_id, type, amount, target_account_number, description, status, timestamp, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING sequence;
	`

	var targetNumber sql.NullString
	if txn.TargetAccountNumber != "" {
		targetNumber = sql.NullString{String: txn.TargetAccountNumber, Valid: true}
	}
	var description sql.NullString
	if txn.Description != "" {
		description = sql.NullString{String: txn.Description, Valid: true}
	}

	err := r.pool.QueryRow(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		string(txn.Type),
		txn.Amount,
		targetNumber,
		description,
		string(txn.Status),
		txn.Timestamp,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	).Scan(&txn.Sequence)

	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactionsByAccount retrieves transactions for the account, newest
// first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY sequence DESC;`
	return r.listTransactions(ctx, query, accountID)
}

// ListTransactionsByStatus retrieves transactions in the given state, oldest
// first.
func (r *PgxTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY sequence;`
	return r.listTransactions(ctx, query, string(status))
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, arg any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return txns, nil
}

// UpdateTransactionStatus transitions a transaction between lifecycle
// states. The transition is guarded on the from status via the WHERE
// clause, so concurrent resolutions of the same transaction cannot both
// succeed.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $2;
	`

	cmdTag, err := r.pool.Exec(ctx, query, transactionID, string(from), string(to), now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status for transaction %s: %w", transactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Guard missed or the transaction is unknown; distinguish.
		current, findErr := r.FindTransactionByID(ctx, transactionID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check transaction %s after missed transition: %w", transactionID, findErr)
		}
		return fmt.Errorf("%w: transaction %s is %s, expected %s", apperrors.ErrInvalidState, transactionID, current.Status, from)
	}

	return nil
}
