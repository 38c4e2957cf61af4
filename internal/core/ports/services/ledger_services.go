package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the balance mutator: the only component allowed to
// change account balances. Both operations are linearizable per account.
type LedgerSvcFacade interface {
	// Debit withdraws amount from the account. Fails with
	// apperrors.ErrValidation (amount <= 0), apperrors.ErrAccountFrozen,
	// apperrors.ErrInsufficientFunds, or apperrors.ErrContention when the
	// optimistic retry budget is exhausted.
	Debit(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error

	// Credit deposits amount into the account. Fails with
	// apperrors.ErrValidation, apperrors.ErrAccountFrozen, or
	// apperrors.ErrContention.
	Credit(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error

	// Refund returns amount to an account after a failed transfer leg.
	// Unlike Credit it carries no frozen-status precondition and no retry
	// budget: a reversal restores money the account already held, so it
	// must land even if the account was frozen mid-transfer. Fails only
	// with apperrors.ErrValidation or when the account does not exist.
	Refund(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error
}
