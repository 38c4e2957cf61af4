package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger event.
type TransactionType string

const (
	Debit       TransactionType = "DEBIT"
	Credit      TransactionType = "CREDIT"
	TransferOut TransactionType = "TRANSFER_OUT"
	TransferIn  TransactionType = "TRANSFER_IN"
	BillPayment TransactionType = "BILL_PAYMENT"
)

// TransactionStatus is the lifecycle state of a transaction record.
//
// State machine: PENDING -> APPROVED -> {COMPLETED | FAILED}, or
// PENDING -> REJECTED, or created directly as COMPLETED. COMPLETED,
// REJECTED and FAILED are terminal; records are never deleted.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusApproved  TransactionStatus = "APPROVED"
	StatusRejected  TransactionStatus = "REJECTED"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusFailed
}

// Transaction represents a single ledger event against one account.
//
// TargetAccountNumber is stored by value rather than by reference: the
// target account may belong to a different customer, and history rows must
// stay renderable even if that account is later frozen or renumbered.
type Transaction struct {
	TransactionID       string            `json:"transactionID"` // Primary Key (UUID)
	Sequence            int64             `json:"sequence"`      // Monotonic append order, assigned by the log
	AccountID           string            `json:"accountID"`     // FK -> accounts.account_id (source)
	Type                TransactionType   `json:"type"`
	Amount              decimal.Decimal   `json:"amount"` // Positive value
	TargetAccountNumber string            `json:"targetAccountNumber,omitempty"`
	Status              TransactionStatus `json:"status"`
	Description         string            `json:"description,omitempty"`
	Timestamp           time.Time         `json:"timestamp"`
	AuditFields
}
