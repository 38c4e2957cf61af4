package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPayment is the persistence representation of a bill payment row.
type BillPayment struct {
	BillPaymentID string          `db:"bill_payment_id"`
	UserID        string          `db:"user_id"`
	BillerName    string          `db:"biller_name"`
	Amount        decimal.Decimal `db:"amount"`
	Status        string          `db:"status"`
	DueDate       time.Time       `db:"due_date"`
	AuditFields
}
