package services

import (
	"context"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

// PaymentReaderSvc defines read operations over the fee ledger
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a fee payment by its identifier.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error)

	// ListPayments retrieves a paginated ledger, optionally for one student.
	ListPayments(ctx context.Context, studentID string, limit int, offset int) ([]domain.FeePayment, error)

	// VerifyReceipt resolves a receipt number to its public view. Lookup is
	// exact match on the normalized number.
	VerifyReceipt(ctx context.Context, receiptNumber string) (*dto.ReceiptVerificationResponse, error)
}

// PaymentWriterSvc defines mutations on the fee ledger
type PaymentWriterSvc interface {
	// RecordManualPayment records a counter payment, minting a receipt number
	// and computing the remaining balance from the student's ledger.
	RecordManualPayment(ctx context.Context, req dto.RecordFeePaymentRequest, userID string) (*domain.FeePayment, error)

	// CreatePaymentOrder opens a gateway order for an online payment and
	// stores the transaction in created status.
	CreatePaymentOrder(ctx context.Context, req dto.CreatePaymentOrderRequest, userID string) (*domain.PaymentTransaction, error)

	// ProcessWebhookEvent applies a verified gateway event; signature is the
	// already-verified header value, recorded for audit. Capturing an
	// already-captured transaction is a no-op reported via alreadyProcessed.
	ProcessWebhookEvent(ctx context.Context, event dto.GatewayWebhookEvent, signature string) (alreadyProcessed bool, err error)

	// ReconcileUnledgered sweeps captured transactions that have no ledger
	// row and creates the missing fee payments. Returns how many were fixed.
	ReconcileUnledgered(ctx context.Context) (int, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
