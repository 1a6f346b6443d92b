package domain

import "github.com/shopspring/decimal"

// TransactionStatus is the lifecycle state of a gateway payment intent.
// created -> captured (terminal) or created -> failed (terminal).
type TransactionStatus string

const (
	TransactionCreated  TransactionStatus = "created"
	TransactionCaptured TransactionStatus = "captured"
	TransactionFailed   TransactionStatus = "failed"
)

// PaymentTransaction records a payment intent opened against the external
// gateway. It is mutated exactly once, to captured or failed, on verified
// webhook receipt; immutable afterward.
type PaymentTransaction struct {
	TransactionID     string            `json:"transactionID"`   // Primary Key (UUID)
	ExternalOrderID   string            `json:"externalOrderID"` // Gateway order identifier (unique)
	ExternalPaymentID string            `json:"externalPaymentID,omitempty"`
	StudentID         string            `json:"studentID"`
	Amount            decimal.Decimal   `json:"amount"`
	Status            TransactionStatus `json:"status"`
	Signature         string            `json:"-"` // Gateway signature recorded at capture time
	AuditFields
}

// IsCaptured reports whether the transaction has already been reconciled.
// Reprocessing a captured transaction must be a no-op.
func (t PaymentTransaction) IsCaptured() bool {
	return t.Status == TransactionCaptured
}

// IsTerminal reports whether the transaction can still transition.
func (t PaymentTransaction) IsTerminal() bool {
	return t.Status == TransactionCaptured || t.Status == TransactionFailed
}
