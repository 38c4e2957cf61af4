package services

import (
	"context"
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
)

// DefaultApprovalThreshold is the amount above which transfers are deferred
// for banker approval when no threshold is configured.
var DefaultApprovalThreshold = decimal.NewFromInt(10000)

// transferService orchestrates transfers and the pending-approval workflow.
// It holds no state of its own; every invocation works against the account
// store and the transaction log.
type transferService struct {
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
	ledger      portssvc.LedgerSvcFacade
	threshold   decimal.Decimal
}

// NewTransferService creates a new TransferService. A non-positive threshold
// falls back to DefaultApprovalThreshold.
func NewTransferService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository, ledger portssvc.LedgerSvcFacade, threshold decimal.Decimal) portssvc.TransferSvcFacade {
	if threshold.LessThanOrEqual(decimal.Zero) {
		threshold = DefaultApprovalThreshold
	}
	return &transferService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		ledger:      ledger,
		threshold:   threshold,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves funds from the caller's account to the target account.
func (s *transferService) Transfer(ctx context.Context, caller domain.Caller, req dto.TransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	source, err := s.accountRepo.FindAccountByID(ctx, req.SourceAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source account: %w", err)
	}

	// Ownership check: customers move only their own money. Bankers and
	// admins may initiate on behalf of a customer.
	if source.UserID != caller.UserID && !caller.Role.CanApprove() {
		logger.Warn("Transfer attempted on account not owned by caller",
			slog.String("source_account_id", source.AccountID),
		)
		return nil, fmt.Errorf("%w: account %s does not belong to caller", apperrors.ErrForbidden, source.AccountID)
	}

	target, err := s.accountRepo.FindAccountByNumber(ctx, req.TargetAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target account %s: %w", req.TargetAccountNumber, err)
	}
	if target.AccountID == source.AccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		AccountID:           source.AccountID,
		Type:                domain.TransferOut,
		Amount:              req.Amount,
		TargetAccountNumber: target.AccountNumber,
		Description:         req.Description,
		Timestamp:           now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	// Above the policy threshold: record a PENDING entry and stop. No funds
	// are reserved; balances are re-validated at approval time.
	if req.Amount.GreaterThan(s.threshold) {
		txn.Status = domain.StatusPending
		if err := s.txnRepo.SaveTransaction(ctx, &txn); err != nil {
			logger.Error("Failed to record pending transfer", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to record pending transfer: %w", err)
		}
		logger.Info("Transfer deferred for approval",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("amount", req.Amount.String()),
		)
		return &txn, nil
	}

	if err := s.executeTransfer(ctx, source.AccountID, target.AccountID, req.Amount, caller.UserID); err != nil {
		return nil, err
	}

	txn.Status = domain.StatusCompleted
	if err := s.txnRepo.SaveTransaction(ctx, &txn); err != nil {
		logger.Error("Failed to record completed transfer", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}
	s.recordTransferIn(ctx, target.AccountID, source.AccountNumber, req.Amount, req.Description, caller.UserID)

	logger.Info("Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", req.Amount.String()),
	)
	return &txn, nil
}

// executeTransfer performs the two balance legs: debit the source, then
// credit the target. If the credit fails after a successful debit, the debit
// is reversed with a compensating credit before the error surfaces, so a
// partial failure never changes the ledger's total balance.
func (s *transferService) executeTransfer(ctx context.Context, sourceID, targetID string, amount decimal.Decimal, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ledger.Debit(ctx, sourceID, amount, actorUserID); err != nil {
		return err
	}

	if err := s.ledger.Credit(ctx, targetID, amount, actorUserID); err != nil {
		// Compensating reversal: put the debited funds back. Refund skips
		// the frozen-status precondition, so a freeze landing on the source
		// mid-transfer cannot strand the debited amount.
		if revErr := s.ledger.Refund(ctx, sourceID, amount, actorUserID); revErr != nil {
			// The debit is applied but could not be reversed; this needs
			// operator attention.
			logger.Error("Compensating refund failed after credit-leg failure",
				slog.String("source_account_id", sourceID),
				slog.String("amount", amount.String()),
				slog.String("credit_error", err.Error()),
				slog.String("reversal_error", revErr.Error()),
			)
			return fmt.Errorf("%w: transfer reversal failed: %v (original: %v)", apperrors.ErrInternal, revErr, err)
		}
		logger.Warn("Transfer credit leg failed, debit reversed", slog.String("error", err.Error()))
		return err
	}

	return nil
}

// recordTransferIn appends the inbound leg on the target account. A failure
// here is logged but not surfaced: the balances are already consistent and
// the outbound entry is the authoritative record of the transfer.
func (s *transferService) recordTransferIn(ctx context.Context, targetAccountID, sourceAccountNumber string, amount decimal.Decimal, description, actorUserID string) {
	now := time.Now().UTC()
	in := domain.Transaction{
		TransactionID:       uuid.NewString(),
		AccountID:           targetAccountID,
		Type:                domain.TransferIn,
		Amount:              amount,
		TargetAccountNumber: sourceAccountNumber,
		Status:              domain.StatusCompleted,
		Description:         description,
		Timestamp:           now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.txnRepo.SaveTransaction(ctx, &in); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record inbound transfer leg",
			slog.String("target_account_id", targetAccountID),
			slog.String("error", err.Error()),
		)
	}
}

// ListPending returns all transactions awaiting approval.
func (s *transferService) ListPending(ctx context.Context, caller domain.Caller) ([]domain.Transaction, error) {
	if !caller.Role.CanApprove() {
		return nil, fmt.Errorf("%w: banker role required", apperrors.ErrForbidden)
	}
	txns, err := s.txnRepo.ListTransactionsByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	return txns, nil
}

// Approve resolves a PENDING transaction and executes its deferred legs.
func (s *transferService) Approve(ctx context.Context, caller domain.Caller, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !caller.Role.CanApprove() {
		return nil, fmt.Errorf("%w: banker role required", apperrors.ErrForbidden)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	now := time.Now().UTC()

	// Guarded transition: exactly one of any concurrent approvals or
	// rejections of the same transaction wins this CAS.
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.StatusPending, domain.StatusApproved, caller.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to approve transaction %s: %w", transactionID, err)
	}
	txn.Status = domain.StatusApproved

	// Deferred execution: re-validate everything now. Balances were never
	// reserved at creation, so insufficient funds or a freeze since then
	// fails the transaction here without moving money.
	execErr := s.executeApproved(ctx, txn, caller.UserID)
	if execErr != nil {
		logger.Warn("Approved transfer failed at execution",
			slog.String("transaction_id", transactionID),
			slog.String("error", execErr.Error()),
		)
		if ferr := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.StatusApproved, domain.StatusFailed, caller.UserID, time.Now().UTC()); ferr != nil {
			logger.Error("Failed to mark transaction FAILED", slog.String("transaction_id", transactionID), slog.String("error", ferr.Error()))
		}
		txn.Status = domain.StatusFailed
		return txn, execErr
	}

	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.StatusApproved, domain.StatusCompleted, caller.UserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to mark transaction COMPLETED", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to complete transaction %s: %w", transactionID, err)
	}
	txn.Status = domain.StatusCompleted

	logger.Info("Transaction approved and executed", slog.String("transaction_id", transactionID))
	return txn, nil
}

// executeApproved runs the balance legs of a formerly pending transfer and
// appends the inbound record on success.
func (s *transferService) executeApproved(ctx context.Context, txn *domain.Transaction, approverUserID string) error {
	source, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		return fmt.Errorf("failed to resolve source account: %w", err)
	}
	target, err := s.accountRepo.FindAccountByNumber(ctx, txn.TargetAccountNumber)
	if err != nil {
		return fmt.Errorf("failed to resolve target account %s: %w", txn.TargetAccountNumber, err)
	}

	if err := s.executeTransfer(ctx, source.AccountID, target.AccountID, txn.Amount, approverUserID); err != nil {
		return err
	}

	s.recordTransferIn(ctx, target.AccountID, source.AccountNumber, txn.Amount, txn.Description, approverUserID)
	return nil
}

// Reject resolves a PENDING transaction to REJECTED. No balance effect ever
// occurs for a rejected transaction.
func (s *transferService) Reject(ctx context.Context, caller domain.Caller, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !caller.Role.CanApprove() {
		return nil, fmt.Errorf("%w: banker role required", apperrors.ErrForbidden)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.StatusPending, domain.StatusRejected, caller.UserID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to reject transaction %s: %w", transactionID, err)
	}
	txn.Status = domain.StatusRejected

	logger.Info("Transaction rejected", slog.String("transaction_id", transactionID))
	return txn, nil
}

// History returns the transactions touching the given account, newest first.
func (s *transferService) History(ctx context.Context, caller domain.Caller, accountID string) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", accountID, err)
	}

	if account.UserID != caller.UserID && !caller.Role.CanApprove() {
		return nil, fmt.Errorf("%w: account %s does not belong to caller", apperrors.ErrForbidden, accountID)
	}

	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	return txns, nil
}
