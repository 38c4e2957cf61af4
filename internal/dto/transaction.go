package dto

import (
	"time"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest is the payload for moving funds between accounts.
type TransferRequest struct {
	SourceAccountID     string          `json:"sourceAccountID" binding:"required"`
	TargetAccountNumber string          `json:"targetAccountNumber" binding:"required"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	Description         string          `json:"description" binding:"max=255"`
}

// TransferResponse is returned after a transfer request is accepted.
// Status is COMPLETED for immediate transfers and PENDING when the amount
// crossed the approval threshold.
type TransferResponse struct {
	TransactionID string                   `json:"transactionID"`
	Status        domain.TransactionStatus `json:"status"`
}

// TransactionResponse is the API representation of a ledger event.
type TransactionResponse struct {
	TransactionID       string                   `json:"transactionID"`
	Sequence            int64                    `json:"sequence"`
	AccountID           string                   `json:"accountID"`
	Type                domain.TransactionType   `json:"type"`
	Amount              decimal.Decimal          `json:"amount"`
	TargetAccountNumber string                   `json:"targetAccountNumber,omitempty"`
	Status              domain.TransactionStatus `json:"status"`
	Description         string                   `json:"description,omitempty"`
	Timestamp           time.Time                `json:"timestamp"`
}

// ToTransactionResponse converts a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       t.TransactionID,
		Sequence:            t.Sequence,
		AccountID:           t.AccountID,
		Type:                t.Type,
		Amount:              t.Amount,
		TargetAccountNumber: t.TargetAccountNumber,
		Status:              t.Status,
		Description:         t.Description,
		Timestamp:           t.Timestamp,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
