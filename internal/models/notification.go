package models

import "time"

// Notification represents a row in the notifications outbox table.
type Notification struct {
	NotificationID string     `db:"notification_id"`
	Kind           string     `db:"kind"`
	RecordID       string     `db:"record_id"`
	Phone          string     `db:"phone"`
	Message        string     `db:"message"`
	DocumentURL    string     `db:"document_url"`
	Status         string     `db:"status"`
	Attempts       int        `db:"attempts"`
	LastError      string     `db:"last_error"`
	SentAt         *time.Time `db:"sent_at"`
	AuditFields
}
