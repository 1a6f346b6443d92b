package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

const (
	dispatchBatchSize = 25
	// processingStaleAfter is how long a processing row may sit before a
	// worker assumes its original claimant died and reclaims it.
	processingStaleAfter = 5 * time.Minute
)

type notificationService struct {
	BaseService
	outboxRepo  portsrepo.NotificationRepositoryFacade
	feeRepo     portsrepo.FeePaymentRepositoryFacade
	salaryRepo  portsrepo.SalaryRepositoryFacade
	studentRepo portsrepo.StudentRepositoryFacade
	gateway     portssvc.MessagingGateway
}

// NewNotificationService creates the outbox enqueue/dispatch service.
func NewNotificationService(
	outboxRepo portsrepo.NotificationRepositoryFacade,
	feeRepo portsrepo.FeePaymentRepositoryFacade,
	salaryRepo portsrepo.SalaryRepositoryFacade,
	studentRepo portsrepo.StudentRepositoryFacade,
	gateway portssvc.MessagingGateway,
) portssvc.NotificationSvcFacade {
	return &notificationService{
		outboxRepo:  outboxRepo,
		feeRepo:     feeRepo,
		salaryRepo:  salaryRepo,
		studentRepo: studentRepo,
		gateway:     gateway,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// EnqueueNotification stores an outbox row in pending status.
func (s *notificationService) EnqueueNotification(ctx context.Context, notification domain.Notification) error {
	if notification.Phone == "" {
		return fmt.Errorf("%w: notification has no phone number", apperrors.ErrValidation)
	}
	if err := s.outboxRepo.SaveNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "failed to enqueue notification", slog.String("kind", string(notification.Kind)))
		return err
	}
	s.LogDebug(ctx, "notification enqueued",
		slog.String("notification_id", notification.NotificationID),
		slog.String("kind", string(notification.Kind)))
	return nil
}

// DispatchPending claims a batch of outbox rows and delivers them one by
// one. Each outcome is written back to the outbox row and mirrored onto the
// owning fee payment or salary record.
func (s *notificationService) DispatchPending(ctx context.Context) (int, error) {
	claimed, err := s.outboxRepo.ClaimPending(ctx, dispatchBatchSize, processingStaleAfter)
	if err != nil {
		s.LogError(ctx, err, "failed to claim pending notifications")
		return 0, err
	}
	if len(claimed) == 0 {
		return 0, nil
	}

	for _, n := range claimed {
		s.deliver(ctx, n)
	}
	return len(claimed), nil
}

func (s *notificationService) deliver(ctx context.Context, n domain.Notification) {
	now := time.Now().UTC()

	result, err := s.gateway.SendMessage(ctx, n.Phone, n.Message, n.DocumentURL)
	if err != nil {
		s.markOutcome(ctx, n, domain.NotificationFailed, err.Error(), now)
		s.LogError(ctx, err, "notification delivery errored", slog.String("notification_id", n.NotificationID))
		return
	}
	if !result.Success {
		s.markOutcome(ctx, n, domain.NotificationFailed, result.Error, now)
		s.LogWarn(ctx, "notification delivery rejected",
			slog.String("notification_id", n.NotificationID),
			slog.String("reason", result.Error))
		return
	}

	s.markOutcome(ctx, n, domain.NotificationSent, "", now)
	s.LogInfo(ctx, "notification delivered",
		slog.String("notification_id", n.NotificationID),
		slog.String("message_id", result.MessageID))
}

// markOutcome writes the delivery outcome to the outbox row and mirrors it
// onto the owning record. Write-back failures are logged, not raised: the
// dispatcher must keep draining the batch.
func (s *notificationService) markOutcome(ctx context.Context, n domain.Notification, status domain.NotificationStatus, deliveryError string, now time.Time) {
	var err error
	if status == domain.NotificationSent {
		err = s.outboxRepo.MarkSent(ctx, n.NotificationID, now)
	} else {
		err = s.outboxRepo.MarkFailed(ctx, n.NotificationID, deliveryError, now)
	}
	if err != nil {
		s.LogError(ctx, err, "failed to record notification outcome", slog.String("notification_id", n.NotificationID))
	}

	switch n.Kind {
	case domain.NotificationKindFeeReceipt:
		err = s.feeRepo.UpdateNotificationStatus(ctx, n.RecordID, status, now)
	case domain.NotificationKindSalarySlip:
		err = s.salaryRepo.UpdateNotificationStatus(ctx, n.RecordID, status, now)
	default:
		err = nil // reminders have no owning ledger record
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to mirror notification status", slog.String("record_id", n.RecordID))
	}
}

// SendFeeReminders sends reminders to a batch of students sequentially and
// synchronously. One failed send never halts the rest of the batch.
func (s *notificationService) SendFeeReminders(ctx context.Context, req dto.SendRemindersRequest, userID string) (*domain.BatchDispatchSummary, error) {
	summary := &domain.BatchDispatchSummary{}

	for _, studentID := range req.StudentIDs {
		student, err := s.studentRepo.FindStudentByID(ctx, studentID)
		if err != nil {
			summary.FailCount++
			s.LogWarn(ctx, "reminder skipped: student lookup failed", slog.String("student_id", studentID))
			continue
		}

		message := fmt.Sprintf(
			"Dear %s, this is a gentle reminder that the fee for %s is due. Kindly pay at the earliest. - RK Institute",
			student.GuardianName,
			req.MonthLabel,
		)
		if student.GuardianName == "" {
			message = fmt.Sprintf(
				"Dear %s, this is a gentle reminder that the fee for %s is due. Kindly pay at the earliest. - RK Institute",
				student.Name,
				req.MonthLabel,
			)
		}

		result, err := s.gateway.SendMessage(ctx, student.Phone, message, "")
		sent := err == nil && result != nil && result.Success
		if sent {
			summary.SuccessCount++
		} else {
			summary.FailCount++
		}

		// Record the attempt in the outbox for audit, already in its
		// terminal state.
		now := time.Now().UTC()
		status := domain.NotificationSent
		lastError := ""
		var sentAt *time.Time
		if sent {
			sentAt = &now
		} else {
			status = domain.NotificationFailed
			if err != nil {
				lastError = err.Error()
			} else if result != nil {
				lastError = result.Error
			}
		}
		record := domain.Notification{
			NotificationID: uuid.NewString(),
			Kind:           domain.NotificationKindFeeReminder,
			RecordID:       student.StudentID,
			Phone:          student.Phone,
			Message:        message,
			Status:         status,
			Attempts:       1,
			LastError:      lastError,
			SentAt:         sentAt,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if saveErr := s.outboxRepo.SaveNotification(ctx, record); saveErr != nil {
			s.LogError(ctx, saveErr, "failed to record reminder attempt", slog.String("student_id", studentID))
		}
	}

	s.LogInfo(ctx, "fee reminder batch finished",
		slog.Int("success", summary.SuccessCount),
		slog.Int("fail", summary.FailCount))
	return summary, nil
}
