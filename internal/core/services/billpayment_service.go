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

// billPaymentService draws bill payments from customer accounts. The debit
// goes through the ledger service; the receipt and the BILL_PAYMENT ledger
// entry are recorded afterwards.
type billPaymentService struct {
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
	billRepo    portsrepo.BillPaymentRepository
	ledger      portssvc.LedgerSvcFacade
}

// NewBillPaymentService creates a new BillPaymentService.
func NewBillPaymentService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository, billRepo portsrepo.BillPaymentRepository, ledger portssvc.LedgerSvcFacade) portssvc.BillPaymentSvcFacade {
	return &billPaymentService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		billRepo:    billRepo,
		ledger:      ledger,
	}
}

var _ portssvc.BillPaymentSvcFacade = (*billPaymentService)(nil)

// PayBill debits the caller's account and records the payment.
func (s *billPaymentService) PayBill(ctx context.Context, caller domain.Caller, req dto.PayBillRequest) (*domain.BillPaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: bill amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.FromAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.FromAccountNumber, err)
	}

	if account.UserID != caller.UserID {
		logger.Warn("Bill payment attempted on account not owned by caller",
			slog.String("account_id", account.AccountID),
		)
		return nil, fmt.Errorf("%w: account %s does not belong to caller", apperrors.ErrForbidden, account.AccountID)
	}

	if err := s.ledger.Debit(ctx, account.AccountID, req.Amount, caller.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     caller.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: caller.UserID,
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          domain.BillPayment,
		Amount:        req.Amount,
		Status:        domain.StatusCompleted,
		Description:   fmt.Sprintf("Bill payment to %s", req.BillerName),
		Timestamp:     now,
		AuditFields:   audit,
	}
	if err := s.txnRepo.SaveTransaction(ctx, &txn); err != nil {
		logger.Error("Failed to record bill payment transaction", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record bill payment: %w", err)
	}

	payment := domain.BillPaymentRecord{
		BillPaymentID: uuid.NewString(),
		UserID:        caller.UserID,
		BillerName:    req.BillerName,
		Amount:        req.Amount,
		Status:        domain.BillPaid,
		DueDate:       now,
		AuditFields:   audit,
	}
	if err := s.billRepo.SaveBillPayment(ctx, payment); err != nil {
		logger.Error("Failed to save bill payment record", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bill payment: %w", err)
	}

	logger.Info("Bill paid",
		slog.String("bill_payment_id", payment.BillPaymentID),
		slog.String("biller", req.BillerName),
		slog.String("amount", req.Amount.String()),
	)
	return &payment, nil
}

// ListMyBills returns the caller's bill payment receipts.
func (s *billPaymentService) ListMyBills(ctx context.Context, caller domain.Caller) ([]domain.BillPaymentRecord, error) {
	bills, err := s.billRepo.ListBillPaymentsByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	return bills, nil
}
