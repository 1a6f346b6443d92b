package repositories

import (
	"context"
	"time"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// NotificationReader defines read operations for the outbox
type NotificationReader interface {
	// FindNotificationByID retrieves an outbox row by its identifier.
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)
}

// NotificationWriter defines write operations for the outbox
type NotificationWriter interface {
	// SaveNotification enqueues a new outbox row in pending status.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// ClaimPending atomically moves up to limit pending rows to processing
	// and returns them. Rows a crashed worker left in processing longer than
	// staleAfter are reclaimed too.
	ClaimPending(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.Notification, error)

	// MarkSent records a successful delivery.
	MarkSent(ctx context.Context, notificationID string, now time.Time) error

	// MarkFailed records a failed delivery attempt with its error.
	MarkFailed(ctx context.Context, notificationID string, deliveryError string, now time.Time) error
}

// NotificationRepositoryFacade combines all outbox repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
