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

type salaryService struct {
	BaseService
	salaryRepo  portsrepo.SalaryRepositoryFacade
	teacherRepo portsrepo.TeacherRepositoryFacade
	sequence    portssvc.SequenceSvcFacade
	enqueuer    portssvc.NotificationEnqueuerSvc
}

// NewSalaryService creates the payroll service.
func NewSalaryService(
	salaryRepo portsrepo.SalaryRepositoryFacade,
	teacherRepo portsrepo.TeacherRepositoryFacade,
	sequence portssvc.SequenceSvcFacade,
	enqueuer portssvc.NotificationEnqueuerSvc,
) portssvc.SalarySvcFacade {
	return &salaryService{
		salaryRepo:  salaryRepo,
		teacherRepo: teacherRepo,
		sequence:    sequence,
		enqueuer:    enqueuer,
	}
}

var _ portssvc.SalarySvcFacade = (*salaryService)(nil)

// GenerateSalary creates the slip for one teacher and one month. The net
// amount is computed here, never accepted from the caller.
func (s *salaryService) GenerateSalary(ctx context.Context, req dto.GenerateSalaryRequest, userID string) (*domain.SalaryRecord, error) {
	if req.Allowances.IsNegative() || req.Deductions.IsNegative() {
		return nil, fmt.Errorf("%w: allowances and deductions cannot be negative", apperrors.ErrValidation)
	}

	teacher, err := s.teacherRepo.FindTeacherByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if !teacher.IsActive {
		return nil, fmt.Errorf("%w: teacher %s is inactive", apperrors.ErrValidation, teacher.TeacherID)
	}

	existing, err := s.salaryRepo.FindSalaryByPeriod(ctx, teacher.TeacherID, req.Month, req.Year)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: salary for %s %d already generated", apperrors.ErrDuplicate, req.Month, req.Year)
	}

	slipNumber, err := s.sequence.NextSlipNumber(ctx, req.Year)
	if err != nil {
		s.LogError(ctx, err, "failed to mint slip number", slog.String("teacher_id", teacher.TeacherID))
		return nil, err
	}

	now := time.Now().UTC()
	record := domain.SalaryRecord{
		SalaryID:           uuid.NewString(),
		SlipNumber:         slipNumber,
		TeacherID:          teacher.TeacherID,
		Month:              req.Month,
		Year:               req.Year,
		BasicSalary:        teacher.BasicSalary,
		Allowances:         req.Allowances,
		Deductions:         req.Deductions,
		NetSalary:          domain.NetSalaryOf(teacher.BasicSalary, req.Allowances, req.Deductions),
		PaymentStatus:      domain.SalaryPending,
		NotificationStatus: domain.NotificationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.salaryRepo.SaveSalary(ctx, record); err != nil {
		// The unique constraint backs the pre-check under concurrency.
		return nil, err
	}

	s.LogInfo(ctx, "salary slip generated",
		slog.String("slip", slipNumber),
		slog.String("teacher_id", teacher.TeacherID))

	s.enqueueSlipNotification(ctx, record, teacher)
	return &record, nil
}

// UpdateSalaryStatus moves a record between Pending and Paid.
func (s *salaryService) UpdateSalaryStatus(ctx context.Context, salaryID string, req dto.UpdateSalaryStatusRequest, userID string) (*domain.SalaryRecord, error) {
	record, err := s.salaryRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, err
	}

	status := domain.SalaryStatus(req.PaymentStatus)
	if record.PaymentStatus == status {
		return record, nil
	}

	now := time.Now().UTC()
	if err := s.salaryRepo.UpdateSalaryStatus(ctx, salaryID, status, userID, now); err != nil {
		s.LogError(ctx, err, "failed to update salary status", slog.String("salary_id", salaryID))
		return nil, err
	}

	record.PaymentStatus = status
	record.LastUpdatedAt = now
	record.LastUpdatedBy = userID
	s.LogInfo(ctx, "salary status updated", slog.String("salary_id", salaryID), slog.String("status", string(status)))
	return record, nil
}

// GetSalaryByID retrieves a salary record by its identifier.
func (s *salaryService) GetSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	record, err := s.salaryRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find salary record", slog.String("salary_id", salaryID))
		}
		return nil, err
	}
	return record, nil
}

// ListSalaries retrieves a paginated, filterable list of salary records.
func (s *salaryService) ListSalaries(ctx context.Context, teacherID string, year int, limit int, offset int) ([]domain.SalaryRecord, error) {
	records, err := s.salaryRepo.ListSalaries(ctx, teacherID, year, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list salary records")
		return nil, err
	}
	if records == nil {
		records = []domain.SalaryRecord{}
	}
	return records, nil
}

// enqueueSlipNotification stores the slip message in the outbox. Failures
// are logged and swallowed.
func (s *salaryService) enqueueSlipNotification(ctx context.Context, record domain.SalaryRecord, teacher *domain.Teacher) {
	if s.enqueuer == nil {
		return
	}
	message := fmt.Sprintf(
		"Dear %s, your salary slip %s for %s %d is ready. Net salary: Rs %s.",
		teacher.Name,
		record.SlipNumber,
		record.Month,
		record.Year,
		record.NetSalary.StringFixed(2),
	)
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		Kind:           domain.NotificationKindSalarySlip,
		RecordID:       record.SalaryID,
		Phone:          teacher.Phone,
		Message:        message,
		Status:         domain.NotificationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     record.CreatedAt,
			CreatedBy:     record.CreatedBy,
			LastUpdatedAt: record.CreatedAt,
			LastUpdatedBy: record.CreatedBy,
		},
	}
	if err := s.enqueuer.EnqueueNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "failed to enqueue slip notification", slog.String("salary_id", record.SalaryID))
	}
}
