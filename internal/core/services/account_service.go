package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/obs-bank/ledger-core/internal/core/ports/services"
	"github.com/obs-bank/ledger-core/internal/dto"
	"github.com/obs-bank/ledger-core/internal/middleware"
	"github.com/obs-bank/ledger-core/internal/utils"
)

// maxNumberGenerationAttempts bounds the regenerate-on-collision loop for
// account numbers.
const maxNumberGenerationAttempts = 10

// accountService covers account lifecycle operations: opening, lookup,
// freeze toggling and banker deposits. Balance changes go through the
// ledger service; this service never writes balances itself.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
	userRepo    portsrepo.UserRepository
	ledger      portssvc.LedgerSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository, userRepo portsrepo.UserRepository, ledger portssvc.LedgerSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		userRepo:    userRepo,
		ledger:      ledger,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// OpenAccount creates a new zero-balance account for the caller.
func (s *accountService) OpenAccount(ctx context.Context, caller domain.Caller, req dto.OpenAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	number, err := s.generateUniqueAccountNumber(ctx)
	if err != nil {
		logger.Error("Failed to generate account number", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: number,
		UserID:        caller.UserID,
		AccountType:   req.AccountType,
		Balance:       decimal.Zero,
		Status:        domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account opened",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)),
	)
	return &account, nil
}

// generateUniqueAccountNumber produces a candidate number and verifies it
// against the account store before use, regenerating on collision. The ad
// hoc generator alone cannot guarantee uniqueness; the store check does.
func (s *accountService) generateUniqueAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxNumberGenerationAttempts; attempt++ {
		candidate, err := utils.GenerateAccountNumber()
		if err != nil {
			return "", fmt.Errorf("failed to generate account number: %w", err)
		}

		_, err = s.accountRepo.FindAccountByNumber(ctx, candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check account number uniqueness: %w", err)
		}
		// Candidate exists; regenerate.
	}
	return "", fmt.Errorf("%w: could not generate a unique account number", apperrors.ErrInternal)
}

// ListMyAccounts returns the caller's accounts.
func (s *accountService) ListMyAccounts(ctx context.Context, caller domain.Caller) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// SearchAccount resolves an account by number, including owner details.
func (s *accountService) SearchAccount(ctx context.Context, caller domain.Caller, accountNumber string) (*domain.Account, *domain.User, error) {
	if !caller.Role.CanApprove() {
		return nil, nil, fmt.Errorf("%w: banker role required", apperrors.ErrForbidden)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}

	owner, err := s.userRepo.FindUserByID(ctx, account.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve account owner: %w", err)
	}

	return account, owner, nil
}

// ToggleAccountActive flips an account between ACTIVE and FROZEN.
func (s *accountService) ToggleAccountActive(ctx context.Context, caller domain.Caller, accountNumber string) (domain.AccountStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !caller.Role.CanApprove() {
		return "", fmt.Errorf("%w: banker role required", apperrors.ErrForbidden)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return "", fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}

	newStatus := domain.AccountFrozen
	if account.Status == domain.AccountFrozen {
		newStatus = domain.AccountActive
	}

	if err := s.accountRepo.SetAccountStatus(ctx, account.AccountID, newStatus, caller.UserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to update account status", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to update account status: %w", err)
	}

	logger.Info("Account status toggled",
		slog.String("account_id", account.AccountID),
		slog.String("status", string(newStatus)),
	)
	return newStatus, nil
}

// Deposit credits an account and records a CREDIT transaction.
func (s *accountService) Deposit(ctx context.Context, caller domain.Caller, req dto.DepositRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !caller.Role.CanApprove() {
		return nil, fmt.Errorf("%w: banker role required", apperrors.ErrForbidden)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountNumber, err)
	}

	if err := s.ledger.Credit(ctx, account.AccountID, req.Amount, caller.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          domain.Credit,
		Amount:        req.Amount,
		Status:        domain.StatusCompleted,
		Description:   "Deposit",
		Timestamp:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
	if err := s.txnRepo.SaveTransaction(ctx, &txn); err != nil {
		logger.Error("Failed to record deposit transaction", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	logger.Info("Deposit completed",
		slog.String("account_id", account.AccountID),
		slog.String("amount", req.Amount.String()),
	)
	return &txn, nil
}
