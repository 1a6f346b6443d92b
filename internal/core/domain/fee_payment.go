package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode is how a fee payment was collected.
type PaymentMode string

const (
	PaymentModeCash    PaymentMode = "cash"
	PaymentModeOnline  PaymentMode = "online"
	PaymentModeCheque  PaymentMode = "cheque"
	PaymentModeGateway PaymentMode = "gateway"
)

// FeePayment is a ledger entry / receipt for a single fee collection event.
// RemainingAmount is fixed at creation time (totalFees - paidAmount as of
// that moment) and never recomputed retroactively. Only NotificationStatus
// is mutable after creation.
type FeePayment struct {
	PaymentID          string             `json:"paymentID"`     // Primary Key (UUID)
	ReceiptNumber      string             `json:"receiptNumber"` // Unique, e.g. RK-FEE-2026-00042
	StudentID          string             `json:"studentID"`
	MonthLabel         string             `json:"monthLabel"` // e.g. "January 2026"
	TotalFees          decimal.Decimal    `json:"totalFees"`
	PaidAmount         decimal.Decimal    `json:"paidAmount"`
	RemainingAmount    decimal.Decimal    `json:"remainingAmount"`
	PaymentMode        PaymentMode        `json:"paymentMode"`
	PaymentDate        time.Time          `json:"paymentDate"`
	TransactionID      *string            `json:"transactionID,omitempty"` // Set only for gateway-captured payments
	NotificationStatus NotificationStatus `json:"notificationStatus"`
	AuditFields
}

// RemainingAfter computes the remaining balance recorded on a new receipt:
// total minus paid, floored at zero.
func RemainingAfter(totalFees, paidAmount decimal.Decimal) decimal.Decimal {
	remaining := totalFees.Sub(paidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
