package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/obs-bank/ledger-core/internal/core/ports/services"
	"github.com/obs-bank/ledger-core/internal/middleware"
)

// DefaultCASMaxRetries is the retry budget used when no explicit budget is
// configured.
const DefaultCASMaxRetries = 5

// ledgerService is the balance mutator. Every balance change in the system
// funnels through Debit or Credit, which write exclusively via the account
// repository's compare-and-swap primitive: read the balance, compute the new
// one, attempt the conditional swap, and re-read on a lost race. Losing more
// than maxRetries races escalates to ErrContention.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	maxRetries  int
}

// NewLedgerService creates a new LedgerService. A non-positive maxRetries
// falls back to DefaultCASMaxRetries.
func NewLedgerService(accountRepo portsrepo.AccountRepository, maxRetries int) portssvc.LedgerSvcFacade {
	if maxRetries <= 0 {
		maxRetries = DefaultCASMaxRetries
	}
	return &ledgerService{
		accountRepo: accountRepo,
		maxRetries:  maxRetries,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Debit withdraws amount from the account.
func (s *ledgerService) Debit(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: debit amount must be positive", apperrors.ErrValidation)
	}
	return s.mutate(ctx, accountID, amount.Neg(), actorUserID)
}

// Credit deposits amount into the account.
func (s *ledgerService) Credit(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}
	return s.mutate(ctx, accountID, amount, actorUserID)
}

// Refund returns amount to an account after a failed transfer leg. It
// bypasses the CAS loop and the ACTIVE-status precondition: the money
// already belonged to the account, and failing to put it back would shrink
// the ledger's total balance.
func (s *ledgerService) Refund(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: refund amount must be positive", apperrors.ErrValidation)
	}
	if err := s.accountRepo.RefundBalance(ctx, accountID, amount, actorUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to refund account %s: %w", accountID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Balance refunded",
		slog.String("account_id", accountID),
		slog.String("amount", amount.String()),
	)
	return nil
}

// mutate applies a signed delta to the account balance through the CAS loop.
// The delta is negative for debits and positive for credits.
func (s *ledgerService) mutate(ctx context.Context, accountID string, delta decimal.Decimal, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to load account %s: %w", accountID, err)
		}

		// Frozen accounts accept no money movement in either direction.
		if !account.IsActive() {
			return fmt.Errorf("%w: account %s", apperrors.ErrAccountFrozen, accountID)
		}

		newBalance := account.Balance.Add(delta)
		if newBalance.IsNegative() {
			return fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, account.Balance.String(), delta.Abs().String())
		}

		swapped, err := s.accountRepo.CompareAndSwapBalance(ctx, accountID, account.Balance, newBalance, actorUserID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
		}
		if swapped {
			logger.Debug("Balance updated",
				slog.String("account_id", accountID),
				slog.String("delta", delta.String()),
				slog.Int("attempt", attempt+1),
			)
			return nil
		}

		// Lost a race with a concurrent mutation; re-read and retry.
		logger.Debug("Balance CAS lost race, retrying",
			slog.String("account_id", accountID),
			slog.Int("attempt", attempt+1),
		)
	}

	logger.Warn("Balance CAS retry budget exhausted", slog.String("account_id", accountID), slog.Int("max_retries", s.maxRetries))
	return fmt.Errorf("%w: account %s after %d attempts", apperrors.ErrContention, accountID, s.maxRetries)
}
