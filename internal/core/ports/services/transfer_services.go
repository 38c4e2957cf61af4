package services

import (
	"context"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/obs-bank/ledger-core/internal/dto"
)

// TransferSvcFacade orchestrates fund movements and the pending-approval
// workflow. It is a stateless coordinator; all state lives in the account
// store and the transaction log.
type TransferSvcFacade interface {
	// Transfer moves funds from the caller's account to the account with the
	// given external number. Amounts above the approval threshold create a
	// PENDING transaction and move no funds; everything else executes
	// immediately and records a COMPLETED transaction.
	Transfer(ctx context.Context, caller domain.Caller, req dto.TransferRequest) (*domain.Transaction, error)

	// ListPending returns all transactions awaiting approval. Banker role
	// required.
	ListPending(ctx context.Context, caller domain.Caller) ([]domain.Transaction, error)

	// Approve resolves a PENDING transaction and executes its deferred legs.
	// If execution fails (insufficient funds, frozen account), the
	// transaction ends FAILED and no funds move. Banker role required.
	Approve(ctx context.Context, caller domain.Caller, transactionID string) (*domain.Transaction, error)

	// Reject resolves a PENDING transaction to REJECTED. No balance effect.
	// Banker role required.
	Reject(ctx context.Context, caller domain.Caller, transactionID string) (*domain.Transaction, error)

	// History returns the transactions touching the given account, newest
	// first. The caller must own the account or hold the banker role.
	History(ctx context.Context, caller domain.Caller, accountID string) ([]domain.Transaction, error)
}
