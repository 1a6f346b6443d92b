package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

type SalaryServiceTestSuite struct {
	suite.Suite
	mockSalaryRepo  *MockSalaryRepo
	mockTeacherRepo *MockTeacherRepo
	mockSequence    *MockSequenceSvc
	mockEnqueuer    *MockEnqueuer
	service         portssvc.SalarySvcFacade
	ctx             context.Context
}

func (suite *SalaryServiceTestSuite) SetupTest() {
	suite.mockSalaryRepo = new(MockSalaryRepo)
	suite.mockTeacherRepo = new(MockTeacherRepo)
	suite.mockSequence = new(MockSequenceSvc)
	suite.mockEnqueuer = new(MockEnqueuer)
	suite.service = services.NewSalaryService(
		suite.mockSalaryRepo,
		suite.mockTeacherRepo,
		suite.mockSequence,
		suite.mockEnqueuer,
	)
	suite.ctx = context.Background()
}

func (suite *SalaryServiceTestSuite) sampleTeacher() *domain.Teacher {
	return &domain.Teacher{
		TeacherID:     "teacher-1",
		TeacherNumber: "RK2026TCH003",
		Name:          "Meera Joshi",
		Phone:         "9876512345",
		BasicSalary:   decimal.NewFromInt(30000),
		IsActive:      true,
	}
}

func (suite *SalaryServiceTestSuite) TestGenerateSalary_ComputesNetServerSide() {
	teacher := suite.sampleTeacher()
	req := dto.GenerateSalaryRequest{
		TeacherID:  "teacher-1",
		Month:      "April",
		Year:       2026,
		Allowances: decimal.NewFromInt(5000),
		Deductions: decimal.NewFromInt(2000),
	}

	suite.mockTeacherRepo.On("FindTeacherByID", suite.ctx, "teacher-1").Return(teacher, nil).Once()
	suite.mockSalaryRepo.On("FindSalaryByPeriod", suite.ctx, "teacher-1", "April", 2026).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSequence.On("NextSlipNumber", suite.ctx, 2026).Return("RK-SAL-2026-00007", nil).Once()
	suite.mockSalaryRepo.On("SaveSalary", suite.ctx, mock.AnythingOfType("domain.SalaryRecord")).
		Return(nil).Once()
	suite.mockEnqueuer.On("EnqueueNotification", suite.ctx, mock.AnythingOfType("domain.Notification")).
		Return(nil).Once()

	record, err := suite.service.GenerateSalary(suite.ctx, req, "user-1")
	suite.Require().NoError(err)
	suite.Equal("RK-SAL-2026-00007", record.SlipNumber)
	// 30000 basic + 5000 allowances - 2000 deductions.
	suite.True(record.NetSalary.Equal(decimal.NewFromInt(33000)))
	suite.Equal(domain.SalaryPending, record.PaymentStatus)
	suite.Equal(domain.NotificationPending, record.NotificationStatus)

	suite.mockSalaryRepo.AssertExpectations(suite.T())
	suite.mockSequence.AssertExpectations(suite.T())
	suite.mockEnqueuer.AssertExpectations(suite.T())
}

func (suite *SalaryServiceTestSuite) TestGenerateSalary_RejectsDuplicatePeriod() {
	teacher := suite.sampleTeacher()
	existing := &domain.SalaryRecord{SalaryID: "sal-1", TeacherID: "teacher-1", Month: "April", Year: 2026}
	req := dto.GenerateSalaryRequest{TeacherID: "teacher-1", Month: "April", Year: 2026}

	suite.mockTeacherRepo.On("FindTeacherByID", suite.ctx, "teacher-1").Return(teacher, nil).Once()
	suite.mockSalaryRepo.On("FindSalaryByPeriod", suite.ctx, "teacher-1", "April", 2026).
		Return(existing, nil).Once()

	_, err := suite.service.GenerateSalary(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "SaveSalary", mock.Anything, mock.Anything)
	suite.mockSequence.AssertNotCalled(suite.T(), "NextSlipNumber", mock.Anything, mock.Anything)
}

func (suite *SalaryServiceTestSuite) TestGenerateSalary_RejectsInactiveTeacher() {
	teacher := suite.sampleTeacher()
	teacher.IsActive = false
	req := dto.GenerateSalaryRequest{TeacherID: "teacher-1", Month: "April", Year: 2026}

	suite.mockTeacherRepo.On("FindTeacherByID", suite.ctx, "teacher-1").Return(teacher, nil).Once()

	_, err := suite.service.GenerateSalary(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SalaryServiceTestSuite) TestGenerateSalary_RejectsNegativeAdjustments() {
	req := dto.GenerateSalaryRequest{
		TeacherID:  "teacher-1",
		Month:      "April",
		Year:       2026,
		Deductions: decimal.NewFromInt(-100),
	}

	_, err := suite.service.GenerateSalary(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTeacherRepo.AssertNotCalled(suite.T(), "FindTeacherByID", mock.Anything, mock.Anything)
}

func (suite *SalaryServiceTestSuite) TestUpdateSalaryStatus_Transitions() {
	record := &domain.SalaryRecord{
		SalaryID:      "sal-1",
		SlipNumber:    "RK-SAL-2026-00007",
		TeacherID:     "teacher-1",
		PaymentStatus: domain.SalaryPending,
	}

	suite.mockSalaryRepo.On("FindSalaryByID", suite.ctx, "sal-1").Return(record, nil).Once()
	suite.mockSalaryRepo.On("UpdateSalaryStatus", suite.ctx, "sal-1", domain.SalaryPaid, "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.UpdateSalaryStatus(suite.ctx, "sal-1", dto.UpdateSalaryStatusRequest{PaymentStatus: "Paid"}, "user-1")
	suite.Require().NoError(err)
	suite.Equal(domain.SalaryPaid, updated.PaymentStatus)
	suite.mockSalaryRepo.AssertExpectations(suite.T())
}

func (suite *SalaryServiceTestSuite) TestUpdateSalaryStatus_SameStatusIsNoOp() {
	record := &domain.SalaryRecord{SalaryID: "sal-1", PaymentStatus: domain.SalaryPaid}

	suite.mockSalaryRepo.On("FindSalaryByID", suite.ctx, "sal-1").Return(record, nil).Once()

	updated, err := suite.service.UpdateSalaryStatus(suite.ctx, "sal-1", dto.UpdateSalaryStatusRequest{PaymentStatus: "Paid"}, "user-1")
	suite.Require().NoError(err)
	suite.Equal(domain.SalaryPaid, updated.PaymentStatus)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "UpdateSalaryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSalaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalaryServiceTestSuite))
}
