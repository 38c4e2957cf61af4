package dto

import (
	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest is the payload for opening a new account.
type OpenAccountRequest struct {
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS"`
}

// DepositRequest is the payload for a banker-initiated deposit.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	AccountNumber string               `json:"accountNumber"`
	AccountType   domain.AccountType   `json:"accountType"`
	Balance       decimal.Decimal      `json:"balance"`
	Status        domain.AccountStatus `json:"status"`
}

// AccountDetailsResponse is the banker-facing search result, including
// owner details.
type AccountDetailsResponse struct {
	AccountResponse
	OwnerUserID   string `json:"ownerUserID"`
	OwnerUsername string `json:"ownerUsername"`
	OwnerEmail    string `json:"ownerEmail"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Status:        a.Status,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
