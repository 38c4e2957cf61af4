package services

import (
	"context"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/obs-bank/ledger-core/internal/dto"
)

// AccountSvcFacade covers account lifecycle operations outside the transfer
// engine: opening, lookup, freeze toggling and banker deposits.
type AccountSvcFacade interface {
	// OpenAccount creates a new account for the caller with a zero balance
	// and a freshly generated, collision-checked account number.
	OpenAccount(ctx context.Context, caller domain.Caller, req dto.OpenAccountRequest) (*domain.Account, error)

	// ListMyAccounts returns the caller's accounts.
	ListMyAccounts(ctx context.Context, caller domain.Caller) ([]domain.Account, error)

	// SearchAccount resolves an account by number, including owner details.
	// Banker role required.
	SearchAccount(ctx context.Context, caller domain.Caller, accountNumber string) (*domain.Account, *domain.User, error)

	// ToggleAccountActive flips an account between ACTIVE and FROZEN.
	// Banker role required. Returns the new status.
	ToggleAccountActive(ctx context.Context, caller domain.Caller, accountNumber string) (domain.AccountStatus, error)

	// Deposit credits an account and records a CREDIT transaction.
	// Banker role required.
	Deposit(ctx context.Context, caller domain.Caller, req dto.DepositRequest) (*domain.Transaction, error)
}
