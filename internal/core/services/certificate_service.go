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
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/identifiers"
)

type certificateService struct {
	BaseService
	certRepo    portsrepo.CertificateRepositoryFacade
	studentRepo portsrepo.StudentRepositoryFacade
	sequence    portssvc.SequenceSvcFacade
}

// NewCertificateService creates the certificate issuance service.
func NewCertificateService(
	certRepo portsrepo.CertificateRepositoryFacade,
	studentRepo portsrepo.StudentRepositoryFacade,
	sequence portssvc.SequenceSvcFacade,
) portssvc.CertificateSvcFacade {
	return &certificateService{certRepo: certRepo, studentRepo: studentRepo, sequence: sequence}
}

var _ portssvc.CertificateSvcFacade = (*certificateService)(nil)

// IssueCertificate issues a course-completion certificate. One certificate
// per student per course; the number is minted in the course namespace.
func (s *certificateService) IssueCertificate(ctx context.Context, req dto.IssueCertificateRequest, userID string) (*domain.Certificate, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.certRepo.FindCertificateByStudent(ctx, student.StudentID, student.CourseCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: certificate %s already issued", apperrors.ErrDuplicate, existing.CertificateNumber)
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}

	certificateNumber, err := s.sequence.NextCertificateNumber(ctx, issueDate.Year(), student.CourseCode)
	if err != nil {
		s.LogError(ctx, err, "failed to mint certificate number", slog.String("student_id", student.StudentID))
		return nil, err
	}

	certificate := domain.Certificate{
		CertificateID:     uuid.NewString(),
		CertificateNumber: certificateNumber,
		StudentID:         student.StudentID,
		CourseCode:        student.CourseCode,
		IssueDate:         issueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.certRepo.SaveCertificate(ctx, certificate); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "certificate issued", slog.String("certificate_number", certificateNumber))
	return &certificate, nil
}

// VerifyCertificate resolves a certificate number to its public view.
func (s *certificateService) VerifyCertificate(ctx context.Context, certificateNumber string) (*dto.CertificateVerificationResponse, error) {
	normalized := identifiers.NormalizeLookupKey(certificateNumber)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty certificate number", apperrors.ErrValidation)
	}

	certificate, err := s.certRepo.FindCertificateByNumber(ctx, normalized)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.FindStudentByID(ctx, certificate.StudentID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCertificateVerificationResponse(certificate, student)
	return &resp, nil
}
