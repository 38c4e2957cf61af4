package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
	"github.com/obs-bank/ledger-core/internal/models"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		UserID:        d.UserID,
		AccountType:   string(d.AccountType),
		Balance:       d.Balance,
		Status:        string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		UserID:        m.UserID,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		Status:        domain.AccountStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, account_number, user_id, account_type, balance, status, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.UserID,
		&m.AccountType,
		&m.Balance,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainAccount(m)
	return &d, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, account_number, user_id, account_type, balance, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.UserID,
		m.AccountType,
		m.Balance,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountByNumber retrieves an account by its external-facing number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return account, nil
}

// ListAccountsByUser retrieves all accounts owned by the given user.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, *account)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for user %s: %w", userID, rows.Err())
	}

	return accounts, nil
}

// CompareAndSwapBalance atomically replaces the balance only if the stored
// value still equals expected and the account is still ACTIVE. Both guards
// ride on the UPDATE's WHERE clause, so the database serializes concurrent
// swaps and a freeze landing between the caller's read and this write still
// blocks the mutation; RowsAffected tells us whether this writer won.
func (r *PgxAccountRepository) CompareAndSwapBalance(ctx context.Context, accountID string, expected, newBalance decimal.Decimal, updatedBy string, now time.Time) (bool, error) {
	query := `
		UPDATE accounts
		SET balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND balance = $2 AND status = $6;
	`

	cmdTag, err := r.pool.Exec(ctx, query, accountID, expected, newBalance, now, updatedBy, string(domain.AccountActive))
	if err != nil {
		return false, fmt.Errorf("failed to swap balance for account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either a guard missed or the account is unknown; distinguish so
		// callers do not retry forever against a missing row.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return false, apperrors.ErrNotFound
		} else if findErr != nil {
			return false, fmt.Errorf("failed to check account %s after missed swap: %w", accountID, findErr)
		}
		return false, nil
	}

	return true, nil
}

// RefundBalance atomically adds amount back to the balance, with no status
// or expected-value guard. Compensating reversals return money an account
// already held, so they must land even on a just-frozen account.
func (r *PgxAccountRepository) RefundBalance(ctx context.Context, accountID string, amount decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query, accountID, amount, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to refund balance for account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SetAccountStatus updates the ACTIVE/FROZEN status of an account.
func (r *PgxAccountRepository) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query, accountID, string(status), now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status for account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
