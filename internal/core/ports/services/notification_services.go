package services

import (
	"context"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

// MessagingGateway is the outbound port to the WhatsApp delivery provider.
type MessagingGateway interface {
	// SendMessage delivers one message, optionally with a document link.
	// A provider-side rejection comes back in the result, not as an error;
	// err is reserved for transport failures.
	SendMessage(ctx context.Context, phone string, message string, documentURL string) (*domain.DeliveryResult, error)
}

// PaymentGateway is the outbound port to the online payment provider.
type PaymentGateway interface {
	// CreateOrder opens a provider order for the amount and returns the
	// provider's order identifier.
	CreateOrder(ctx context.Context, amount string, currency string, receipt string) (string, error)
}

// NotificationEnqueuerSvc defines enqueue-side outbox operations
type NotificationEnqueuerSvc interface {
	// EnqueueNotification stores an outbox row in pending status. Called by
	// ledger mutations after their own commit; never blocks on delivery.
	EnqueueNotification(ctx context.Context, notification domain.Notification) error

	// SendFeeReminders sends reminders to a batch of students sequentially,
	// counting outcomes. One failure never halts the batch.
	SendFeeReminders(ctx context.Context, req dto.SendRemindersRequest, userID string) (*domain.BatchDispatchSummary, error)
}

// NotificationDispatcherSvc defines the worker-side outbox operations
type NotificationDispatcherSvc interface {
	// DispatchPending claims pending outbox rows and delivers them, writing
	// outcomes back to the outbox and the owning records. Returns how many
	// rows were processed.
	DispatchPending(ctx context.Context) (int, error)
}

// NotificationSvcFacade combines all notification service interfaces
type NotificationSvcFacade interface {
	NotificationEnqueuerSvc
	NotificationDispatcherSvc
}
