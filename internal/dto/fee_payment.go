package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// RecordFeePaymentRequest defines the data needed to record a manual
// (counter) fee payment. The receipt number is minted server-side.
type RecordFeePaymentRequest struct {
	StudentID   string          `json:"studentID" binding:"required"`
	MonthLabel  string          `json:"monthLabel" binding:"required"`
	PaidAmount  decimal.Decimal `json:"paidAmount" binding:"required"`
	PaymentMode string          `json:"paymentMode" binding:"required,oneof=cash online cheque"`
	PaymentDate *time.Time      `json:"paymentDate"` // Optional, defaults to now
}

// FeePaymentResponse defines the data returned for a fee payment.
type FeePaymentResponse struct {
	PaymentID          string          `json:"paymentID"`
	ReceiptNumber      string          `json:"receiptNumber"`
	StudentID          string          `json:"studentID"`
	MonthLabel         string          `json:"monthLabel"`
	TotalFees          decimal.Decimal `json:"totalFees"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	PaymentMode        string          `json:"paymentMode"`
	PaymentDate        time.Time       `json:"paymentDate"`
	TransactionID      *string         `json:"transactionID,omitempty"`
	NotificationStatus string          `json:"notificationStatus"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToFeePaymentResponse converts a domain.FeePayment to FeePaymentResponse DTO
func ToFeePaymentResponse(p *domain.FeePayment) FeePaymentResponse {
	return FeePaymentResponse{
		PaymentID:          p.PaymentID,
		ReceiptNumber:      p.ReceiptNumber,
		StudentID:          p.StudentID,
		MonthLabel:         p.MonthLabel,
		TotalFees:          p.TotalFees,
		PaidAmount:         p.PaidAmount,
		RemainingAmount:    p.RemainingAmount,
		PaymentMode:        string(p.PaymentMode),
		PaymentDate:        p.PaymentDate,
		TransactionID:      p.TransactionID,
		NotificationStatus: string(p.NotificationStatus),
		CreatedAt:          p.CreatedAt,
		CreatedBy:          p.CreatedBy,
	}
}

// ListFeePaymentsParams defines query parameters for listing fee payments.
type ListFeePaymentsParams struct {
	StudentID string `form:"studentID"`
	Limit     int    `form:"limit,default=20"`
	Offset    int    `form:"offset,default=0"`
}

// ListFeePaymentsResponse wraps the list of fee payments.
type ListFeePaymentsResponse struct {
	Payments []FeePaymentResponse `json:"payments"`
}

// ToListFeePaymentsResponse converts a slice of domain.FeePayment to the list DTO
func ToListFeePaymentsResponse(payments []domain.FeePayment) ListFeePaymentsResponse {
	res := make([]FeePaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToFeePaymentResponse(&p)
	}
	return ListFeePaymentsResponse{Payments: res}
}

// ReconcileResponse reports how many captured transactions the sweep ledgered.
type ReconcileResponse struct {
	Fixed int `json:"fixed"`
}

// CreatePaymentOrderRequest defines the data needed to open a gateway order
// for an online fee payment.
type CreatePaymentOrderRequest struct {
	StudentID string          `json:"studentID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// PaymentOrderResponse defines the data returned after opening a gateway order.
type PaymentOrderResponse struct {
	TransactionID   string          `json:"transactionID"`
	ExternalOrderID string          `json:"externalOrderID"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
}

// ToPaymentOrderResponse converts a domain.PaymentTransaction to PaymentOrderResponse DTO
func ToPaymentOrderResponse(t *domain.PaymentTransaction) PaymentOrderResponse {
	return PaymentOrderResponse{
		TransactionID:   t.TransactionID,
		ExternalOrderID: t.ExternalOrderID,
		Amount:          t.Amount,
		Status:          string(t.Status),
	}
}
