package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPaymentStatus is the state of a bill payment record.
type BillPaymentStatus string

const (
	BillPaid BillPaymentStatus = "PAID"
)

// BillPaymentRecord is the receipt for a paid bill. The balance movement
// itself is a BILL_PAYMENT transaction in the ledger; this record carries
// the biller details.
type BillPaymentRecord struct {
	BillPaymentID string            `json:"billPaymentID"` // Primary Key (UUID)
	UserID        string            `json:"userID"`
	BillerName    string            `json:"billerName"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        BillPaymentStatus `json:"status"`
	DueDate       time.Time         `json:"dueDate"`
	AuditFields
}
