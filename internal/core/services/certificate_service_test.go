package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

type CertificateServiceTestSuite struct {
	suite.Suite
	mockCertRepo    *MockCertificateRepo
	mockStudentRepo *MockStudentRepo
	mockSequence    *MockSequenceSvc
	service         portssvc.CertificateSvcFacade
	ctx             context.Context
}

func (suite *CertificateServiceTestSuite) SetupTest() {
	suite.mockCertRepo = new(MockCertificateRepo)
	suite.mockStudentRepo = new(MockStudentRepo)
	suite.mockSequence = new(MockSequenceSvc)
	suite.service = services.NewCertificateService(suite.mockCertRepo, suite.mockStudentRepo, suite.mockSequence)
	suite.ctx = context.Background()
}

func (suite *CertificateServiceTestSuite) TestIssueCertificate_MintsInCourseNamespace() {
	student := &domain.Student{
		StudentID:     "student-1",
		StudentNumber: "RK2026PHRM012",
		Name:          "Asha Kulkarni",
		CourseCode:    "PHRM",
	}
	issueDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	req := dto.IssueCertificateRequest{StudentID: "student-1", IssueDate: &issueDate}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockCertRepo.On("FindCertificateByStudent", suite.ctx, "student-1", "PHRM").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSequence.On("NextCertificateNumber", suite.ctx, 2026, "PHRM").
		Return("RK2026PHRM013", nil).Once()
	suite.mockCertRepo.On("SaveCertificate", suite.ctx, mock.MatchedBy(func(c domain.Certificate) bool {
		return c.CertificateNumber == "RK2026PHRM013" && c.CourseCode == "PHRM" && c.IssueDate.Equal(issueDate)
	})).Return(nil).Once()

	certificate, err := suite.service.IssueCertificate(suite.ctx, req, "user-1")
	suite.Require().NoError(err)
	suite.Equal("RK2026PHRM013", certificate.CertificateNumber)
	suite.mockCertRepo.AssertExpectations(suite.T())
	suite.mockSequence.AssertExpectations(suite.T())
}

func (suite *CertificateServiceTestSuite) TestIssueCertificate_OnePerStudentAndCourse() {
	student := &domain.Student{StudentID: "student-1", CourseCode: "PHRM"}
	existing := &domain.Certificate{
		CertificateID:     "cert-1",
		CertificateNumber: "RK2026PHRM005",
		StudentID:         "student-1",
		CourseCode:        "PHRM",
	}
	req := dto.IssueCertificateRequest{StudentID: "student-1"}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockCertRepo.On("FindCertificateByStudent", suite.ctx, "student-1", "PHRM").
		Return(existing, nil).Once()

	_, err := suite.service.IssueCertificate(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCertRepo.AssertNotCalled(suite.T(), "SaveCertificate", mock.Anything, mock.Anything)
}

func (suite *CertificateServiceTestSuite) TestVerifyCertificate_NormalizesLookupKey() {
	certificate := &domain.Certificate{
		CertificateID:     "cert-1",
		CertificateNumber: "RK2026PHRM013",
		StudentID:         "student-1",
		CourseCode:        "PHRM",
		IssueDate:         time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	student := &domain.Student{
		StudentID:     "student-1",
		StudentNumber: "RK2026PHRM012",
		Name:          "Asha Kulkarni",
	}

	suite.mockCertRepo.On("FindCertificateByNumber", suite.ctx, "RK2026PHRM013").
		Return(certificate, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()

	found, err := suite.service.VerifyCertificate(suite.ctx, " rk2026phrm013 ")
	suite.Require().NoError(err)
	suite.Equal("RK2026PHRM013", found.CertificateNumber)
	suite.Equal("Asha Kulkarni", found.StudentName)
	suite.mockCertRepo.AssertExpectations(suite.T())
}

func TestCertificateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CertificateServiceTestSuite))
}
