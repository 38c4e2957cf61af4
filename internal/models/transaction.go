package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence representation of a transaction row.
type Transaction struct {
	TransactionID       string          `db:"transaction_id"`
	Sequence            int64           `db:"sequence"`
	AccountID           string          `db:"account_id"`
	Type                string          `db:"type"`
	Amount              decimal.Decimal `db:"amount"`
	TargetAccountNumber string          `db:"target_account_number"` // Nullable
	Status              string          `db:"status"`
	Description         string          `db:"description"` // Nullable
	Timestamp           time.Time       `db:"timestamp"`
	AuditFields
}
