package models

import (
	"github.com/shopspring/decimal"
)

// Account is the persistence representation of an account row.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	UserID        string          `db:"user_id"`
	AccountType   string          `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	Status        string          `db:"status"`
	AuditFields
}
