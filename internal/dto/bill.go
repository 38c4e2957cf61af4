package dto

import (
	"time"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayBillRequest is the payload for paying a bill from an account.
type PayBillRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber" binding:"required"`
	BillerName        string          `json:"billerName" binding:"required,max=100"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}

// BillPaymentResponse is the API representation of a bill payment receipt.
type BillPaymentResponse struct {
	BillPaymentID string                   `json:"billPaymentID"`
	BillerName    string                   `json:"billerName"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        domain.BillPaymentStatus `json:"status"`
	DueDate       time.Time                `json:"dueDate"`
}

// ToBillPaymentResponse converts a domain bill payment to its API representation.
func ToBillPaymentResponse(b *domain.BillPaymentRecord) BillPaymentResponse {
	return BillPaymentResponse{
		BillPaymentID: b.BillPaymentID,
		BillerName:    b.BillerName,
		Amount:        b.Amount,
		Status:        b.Status,
		DueDate:       b.DueDate,
	}
}

// ToBillPaymentResponses converts a slice of domain bill payments.
func ToBillPaymentResponses(bills []domain.BillPaymentRecord) []BillPaymentResponse {
	out := make([]BillPaymentResponse, len(bills))
	for i := range bills {
		out[i] = ToBillPaymentResponse(&bills[i])
	}
	return out
}
