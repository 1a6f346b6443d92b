package mapping

import (
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
)

// ToModelNotification converts a domain Notification to its model
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		Kind:           string(d.Kind),
		RecordID:       d.RecordID,
		Phone:          d.Phone,
		Message:        d.Message,
		DocumentURL:    d.DocumentURL,
		Status:         string(d.Status),
		Attempts:       d.Attempts,
		LastError:      d.LastError,
		SentAt:         d.SentAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNotification converts a model Notification to its domain form
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		Kind:           domain.NotificationKind(m.Kind),
		RecordID:       m.RecordID,
		Phone:          m.Phone,
		Message:        m.Message,
		DocumentURL:    m.DocumentURL,
		Status:         domain.NotificationStatus(m.Status),
		Attempts:       m.Attempts,
		LastError:      m.LastError,
		SentAt:         m.SentAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainNotificationSlice converts a slice of model Notifications
func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	ds := make([]domain.Notification, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNotification(m)
	}
	return ds
}
