package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/identifiers"
)

// sequenceService mints formatted record identifiers from the namespace
// counters. Uniqueness comes entirely from the counter upsert; this layer
// only chooses namespaces and formats.
type sequenceService struct {
	BaseService
	repo portsrepo.SequenceRepositoryFacade
}

// NewSequenceService creates the identifier minting service.
func NewSequenceService(repo portsrepo.SequenceRepositoryFacade) portssvc.SequenceSvcFacade {
	return &sequenceService{repo: repo}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

func (s *sequenceService) NextReceiptNumber(ctx context.Context, year int) (string, error) {
	seq, err := s.repo.NextValue(ctx, identifiers.ReceiptNamespace(year))
	if err != nil {
		return "", err
	}
	return identifiers.FormatReceiptNumber(year, seq), nil
}

func (s *sequenceService) NextReceiptNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	seq, err := s.repo.NextValueInTx(ctx, tx, identifiers.ReceiptNamespace(year))
	if err != nil {
		return "", err
	}
	return identifiers.FormatReceiptNumber(year, seq), nil
}

func (s *sequenceService) NextSlipNumber(ctx context.Context, year int) (string, error) {
	seq, err := s.repo.NextValue(ctx, identifiers.SlipNamespace(year))
	if err != nil {
		return "", err
	}
	return identifiers.FormatSlipNumber(year, seq), nil
}

func (s *sequenceService) NextStudentNumber(ctx context.Context, year int, courseCode string) (string, error) {
	seq, err := s.repo.NextValue(ctx, identifiers.CourseNamespace(year, courseCode))
	if err != nil {
		return "", err
	}
	return identifiers.FormatCertificateNumber(year, courseCode, seq), nil
}

func (s *sequenceService) NextCertificateNumber(ctx context.Context, year int, courseCode string) (string, error) {
	seq, err := s.repo.NextValue(ctx, identifiers.CourseNamespace(year, courseCode))
	if err != nil {
		return "", err
	}
	return identifiers.FormatCertificateNumber(year, courseCode, seq), nil
}

func (s *sequenceService) NextTeacherNumber(ctx context.Context, year int) (string, error) {
	seq, err := s.repo.NextValue(ctx, identifiers.TeacherNamespace(year))
	if err != nil {
		return "", err
	}
	return identifiers.FormatTeacherNumber(year, seq), nil
}
