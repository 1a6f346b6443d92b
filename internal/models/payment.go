package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors domain.TransactionStatus at the storage layer.
type TransactionStatus string

const (
	TransactionCreated  TransactionStatus = "created"
	TransactionCaptured TransactionStatus = "captured"
	TransactionFailed   TransactionStatus = "failed"
)

// PaymentTransaction represents a row in the payment_transactions table.
type PaymentTransaction struct {
	TransactionID     string            `db:"transaction_id"`
	ExternalOrderID   string            `db:"external_order_id"` // Unique
	ExternalPaymentID string            `db:"external_payment_id"`
	StudentID         string            `db:"student_id"`
	Amount            decimal.Decimal   `db:"amount"`
	Status            TransactionStatus `db:"status"`
	Signature         string            `db:"signature"`
	AuditFields
}

// FeePayment represents a row in the fee_payments table.
type FeePayment struct {
	PaymentID          string          `db:"payment_id"`
	ReceiptNumber      string          `db:"receipt_number"` // Unique
	StudentID          string          `db:"student_id"`
	MonthLabel         string          `db:"month_label"`
	TotalFees          decimal.Decimal `db:"total_fees"`
	PaidAmount         decimal.Decimal `db:"paid_amount"`
	RemainingAmount    decimal.Decimal `db:"remaining_amount"`
	PaymentMode        string          `db:"payment_mode"`
	PaymentDate        time.Time       `db:"payment_date"`
	TransactionID      *string         `db:"transaction_id"` // Nullable FK
	NotificationStatus string          `db:"notification_status"`
	AuditFields
}

// SalaryRecord represents a row in the salary_records table.
type SalaryRecord struct {
	SalaryID           string          `db:"salary_id"`
	SlipNumber         string          `db:"slip_number"` // Unique
	TeacherID          string          `db:"teacher_id"`
	Month              string          `db:"month"`
	Year               int             `db:"year"`
	BasicSalary        decimal.Decimal `db:"basic_salary"`
	Allowances         decimal.Decimal `db:"allowances"`
	Deductions         decimal.Decimal `db:"deductions"`
	NetSalary          decimal.Decimal `db:"net_salary"`
	PaymentStatus      string          `db:"payment_status"`
	NotificationStatus string          `db:"notification_status"`
	AuditFields
}
