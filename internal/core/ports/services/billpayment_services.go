package services

import (
	"context"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/obs-bank/ledger-core/internal/dto"
)

// BillPaymentSvcFacade covers bill payments drawn from a customer account.
type BillPaymentSvcFacade interface {
	// PayBill debits the caller's account and records the payment. Fails
	// with apperrors.ErrForbidden when the account is not owned by the
	// caller, plus the debit failure kinds of the ledger service.
	PayBill(ctx context.Context, caller domain.Caller, req dto.PayBillRequest) (*domain.BillPaymentRecord, error)

	// ListMyBills returns the caller's bill payment receipts.
	ListMyBills(ctx context.Context, caller domain.Caller) ([]domain.BillPaymentRecord, error)
}
