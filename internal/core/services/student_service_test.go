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

type StudentServiceTestSuite struct {
	suite.Suite
	mockStudentRepo *MockStudentRepo
	mockSequence    *MockSequenceSvc
	service         portssvc.StudentSvcFacade
	ctx             context.Context
}

func (suite *StudentServiceTestSuite) SetupTest() {
	suite.mockStudentRepo = new(MockStudentRepo)
	suite.mockSequence = new(MockSequenceSvc)
	suite.service = services.NewStudentService(suite.mockStudentRepo, suite.mockSequence)
	suite.ctx = context.Background()
}

func (suite *StudentServiceTestSuite) TestCreateStudent_MintsNumberAndNormalizesCourse() {
	req := dto.CreateStudentRequest{
		Name:         "Asha Kulkarni",
		Phone:        "9876543210",
		GuardianName: "Ravi Kulkarni",
		CourseCode:   "phrm",
		Session:      "2026-27",
		TotalFees:    decimal.NewFromInt(12000),
	}

	suite.mockSequence.On("NextStudentNumber", suite.ctx, mock.AnythingOfType("int"), "phrm").
		Return("RK2026PHRM012", nil).Once()
	suite.mockStudentRepo.On("SaveStudent", suite.ctx, mock.MatchedBy(func(s domain.Student) bool {
		return s.StudentNumber == "RK2026PHRM012" && s.CourseCode == "PHRM" && s.IsActive
	})).Return(nil).Once()

	student, err := suite.service.CreateStudent(suite.ctx, req, "user-1")
	suite.Require().NoError(err)
	suite.Equal("RK2026PHRM012", student.StudentNumber)
	suite.Equal("PHRM", student.CourseCode)
	suite.True(student.IsActive)
	suite.mockStudentRepo.AssertExpectations(suite.T())
	suite.mockSequence.AssertExpectations(suite.T())
}

func (suite *StudentServiceTestSuite) TestCreateStudent_RejectsBadCourseCode() {
	req := dto.CreateStudentRequest{
		Name:       "Asha Kulkarni",
		CourseCode: "PH",
		Session:    "2026-27",
		TotalFees:  decimal.NewFromInt(12000),
	}

	_, err := suite.service.CreateStudent(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSequence.AssertNotCalled(suite.T(), "NextStudentNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StudentServiceTestSuite) TestUpdateStudent_MergesOnlyProvidedFields() {
	existing := &domain.Student{
		StudentID:     "student-1",
		StudentNumber: "RK2026PHRM012",
		Name:          "Asha Kulkarni",
		Phone:         "9876543210",
		GuardianName:  "Ravi Kulkarni",
		CourseCode:    "PHRM",
		Session:       "2026-27",
		TotalFees:     decimal.NewFromInt(12000),
		IsActive:      true,
	}
	newPhone := "9876500099"
	req := dto.UpdateStudentRequest{Phone: &newPhone}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(existing, nil).Once()
	suite.mockStudentRepo.On("UpdateStudent", suite.ctx, mock.MatchedBy(func(s domain.Student) bool {
		return s.Phone == "9876500099" && s.Name == "Asha Kulkarni" && s.TotalFees.Equal(decimal.NewFromInt(12000))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateStudent(suite.ctx, "student-1", req, "user-1")
	suite.Require().NoError(err)
	suite.Equal("9876500099", updated.Phone)
	suite.Equal("Asha Kulkarni", updated.Name)
	suite.mockStudentRepo.AssertExpectations(suite.T())
}

func (suite *StudentServiceTestSuite) TestUpdateStudent_RejectsNegativeFees() {
	existing := &domain.Student{StudentID: "student-1", TotalFees: decimal.NewFromInt(12000)}
	negative := decimal.NewFromInt(-1)
	req := dto.UpdateStudentRequest{TotalFees: &negative}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(existing, nil).Once()

	_, err := suite.service.UpdateStudent(suite.ctx, "student-1", req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStudentRepo.AssertNotCalled(suite.T(), "UpdateStudent", mock.Anything, mock.Anything)
}

func TestStudentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StudentServiceTestSuite))
}
