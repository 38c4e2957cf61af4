package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType distinguishes the product an account belongs to.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// AccountStatus controls whether money may move through an account.
// A FROZEN account accepts no debits and no credits.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
)

// Account represents a customer account within the core domain.
// This is the primary representation used by services.
//
// Balance is never read-modify-written by callers; every change goes through
// the ledger service, which in turn only writes via the repository's
// compare-and-swap primitive.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	AccountNumber string          `json:"accountNumber"` // External-facing 16-digit number, unique
	UserID        string          `json:"userID"`        // FK -> users.user_id (owner)
	AccountType   AccountType     `json:"accountType"`   // CHECKING or SAVINGS
	Balance       decimal.Decimal `json:"balance"`       // Non-negative invariant
	Status        AccountStatus   `json:"status"`        // ACTIVE or FROZEN
	AuditFields
}

// IsActive reports whether the account currently accepts money movement.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
