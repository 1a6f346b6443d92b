package domain

import "time"

// NotificationKind identifies the mutation that enqueued the message and
// which record's notification_status mirrors its outcome.
type NotificationKind string

const (
	NotificationKindFeeReceipt  NotificationKind = "fee_receipt"
	NotificationKindFeeReminder NotificationKind = "fee_reminder"
	NotificationKindSalarySlip  NotificationKind = "salary_slip"
)

// Notification is an outbox row. Ledger mutations enqueue it after their
// own durable commit; the dispatcher worker delivers it and writes the
// outcome back. Delivery never blocks or fails the owning mutation.
type Notification struct {
	NotificationID string             `json:"notificationID"` // Primary Key (UUID)
	Kind           NotificationKind   `json:"kind"`
	RecordID       string             `json:"recordID"` // Owning FeePayment / SalaryRecord ID
	Phone          string             `json:"phone"`    // As entered; normalized at dispatch time
	Message        string             `json:"message"`
	DocumentURL    string             `json:"documentURL,omitempty"`
	Status         NotificationStatus `json:"status"`
	Attempts       int                `json:"attempts"`
	LastError      string             `json:"lastError,omitempty"`
	SentAt         *time.Time         `json:"sentAt,omitempty"`
	AuditFields
}

// DeliveryResult is the outcome returned by the messaging gateway.
type DeliveryResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageID,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BatchDispatchSummary accumulates the outcome of a sequential batch send.
// One failure never halts subsequent sends.
type BatchDispatchSummary struct {
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
}
