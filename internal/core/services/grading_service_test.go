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

type GradingServiceTestSuite struct {
	suite.Suite
	mockExamRepo    *MockExamRepo
	mockStudentRepo *MockStudentRepo
	service         portssvc.GradingSvcFacade
	ctx             context.Context
}

func (suite *GradingServiceTestSuite) SetupTest() {
	suite.mockExamRepo = new(MockExamRepo)
	suite.mockStudentRepo = new(MockStudentRepo)
	suite.service = services.NewGradingService(suite.mockExamRepo, suite.mockStudentRepo)
	suite.ctx = context.Background()
}

func (suite *GradingServiceTestSuite) sampleExam() *domain.Exam {
	return &domain.Exam{
		ExamID:       "exam-1",
		Title:        "First Terminal",
		Date:         time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
		CourseCode:   "PHRM",
		Session:      "2026-27",
		TotalMarks:   100,
		PassingMarks: 35,
	}
}

func (suite *GradingServiceTestSuite) TestCreateExam_RejectsPassingAboveTotal() {
	req := dto.CreateExamRequest{
		Title:        "First Terminal",
		Date:         time.Now(),
		CourseCode:   "PHRM",
		Session:      "2026-27",
		TotalMarks:   100,
		PassingMarks: 120,
	}

	_, err := suite.service.CreateExam(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExamRepo.AssertNotCalled(suite.T(), "SaveExam", mock.Anything, mock.Anything)
}

func (suite *GradingServiceTestSuite) TestUpsertMarks_AbsentZeroesMarks() {
	exam := suite.sampleExam()
	req := dto.UpsertMarksRequest{
		Marks: []dto.MarkEntry{
			{StudentID: "student-1", SubjectName: "Pharmacology", MarksObtained: 72},
			{StudentID: "student-2", SubjectName: "Pharmacology", MarksObtained: 40, IsAbsent: true},
		},
	}

	suite.mockExamRepo.On("FindExamByID", suite.ctx, "exam-1").Return(exam, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1"}, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-2").
		Return(&domain.Student{StudentID: "student-2"}, nil).Once()
	suite.mockExamRepo.On("UpsertMarks", suite.ctx, mock.MatchedBy(func(marks []domain.ExamMark) bool {
		return len(marks) == 2 &&
			marks[0].MarksObtained == 72 &&
			marks[1].IsAbsent && marks[1].MarksObtained == 0
	})).Return(nil).Once()

	marks, err := suite.service.UpsertMarks(suite.ctx, "exam-1", req, "user-1")
	suite.Require().NoError(err)
	suite.Len(marks, 2)
	suite.mockExamRepo.AssertExpectations(suite.T())
}

func (suite *GradingServiceTestSuite) TestUpsertMarks_RejectsMarksAboveTotal() {
	exam := suite.sampleExam()
	req := dto.UpsertMarksRequest{
		Marks: []dto.MarkEntry{
			{StudentID: "student-1", SubjectName: "Pharmacology", MarksObtained: 105},
		},
	}

	suite.mockExamRepo.On("FindExamByID", suite.ctx, "exam-1").Return(exam, nil).Once()

	_, err := suite.service.UpsertMarks(suite.ctx, "exam-1", req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExamRepo.AssertNotCalled(suite.T(), "UpsertMarks", mock.Anything, mock.Anything)
}

func (suite *GradingServiceTestSuite) TestUpsertMarks_RejectsUnknownStudent() {
	exam := suite.sampleExam()
	req := dto.UpsertMarksRequest{
		Marks: []dto.MarkEntry{
			{StudentID: "student-ghost", SubjectName: "Pharmacology", MarksObtained: 50},
		},
	}

	suite.mockExamRepo.On("FindExamByID", suite.ctx, "exam-1").Return(exam, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-ghost").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpsertMarks(suite.ctx, "exam-1", req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *GradingServiceTestSuite) TestGetPerformanceDashboard_SkipsExamsWithoutMarks() {
	exams := []domain.Exam{
		{ExamID: "exam-1", Title: "First Terminal", TotalMarks: 100, PassingMarks: 35},
		{ExamID: "exam-2", Title: "Second Terminal", TotalMarks: 100, PassingMarks: 35},
	}
	marks := []domain.ExamMark{
		{ExamID: "exam-1", StudentID: "student-1", SubjectName: "Pharmacology", MarksObtained: 72},
		{ExamID: "exam-1", StudentID: "student-2", SubjectName: "Pharmacology", MarksObtained: 20},
		{ExamID: "exam-1", StudentID: "student-3", SubjectName: "Pharmacology", IsAbsent: true},
	}

	suite.mockExamRepo.On("ListExams", suite.ctx, 1000, 0).Return(exams, nil).Once()
	suite.mockExamRepo.On("FindMarksByExam", suite.ctx, "exam-1").Return(marks, nil).Once()
	suite.mockExamRepo.On("FindMarksByExam", suite.ctx, "exam-2").Return([]domain.ExamMark{}, nil).Once()

	summaries, err := suite.service.GetPerformanceDashboard(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)

	summary := summaries[0]
	suite.Equal("exam-1", summary.ExamID)
	suite.Equal(3, summary.Total)
	suite.Equal(1, summary.Passed)
	suite.Equal(1, summary.Failed)
	suite.Equal(1, summary.Absent)
	suite.InDelta(33.33, summary.PassRate, 0.01)
	suite.True(summary.IsStruggling())
}

func (suite *GradingServiceTestSuite) TestGetPublicResult_NormalizesStudentNumber() {
	exam := suite.sampleExam()
	student := &domain.Student{
		StudentID:     "student-1",
		StudentNumber: "RK2026PHRM001",
		Name:          "Asha Kulkarni",
	}
	marks := []domain.ExamMark{
		{ExamID: "exam-1", StudentID: "student-1", SubjectName: "Pharmacology", MarksObtained: 72},
		{ExamID: "exam-1", StudentID: "student-1", SubjectName: "Anatomy", MarksObtained: 30},
	}

	suite.mockStudentRepo.On("FindStudentByNumber", suite.ctx, "RK2026PHRM001").Return(student, nil).Once()
	suite.mockExamRepo.On("FindExamByID", suite.ctx, "exam-1").Return(exam, nil).Once()
	suite.mockExamRepo.On("FindMarksByExamAndStudent", suite.ctx, "exam-1", "student-1").Return(marks, nil).Once()

	result, err := suite.service.GetPublicResult(suite.ctx, " rk2026phrm001 ", "exam-1")
	suite.Require().NoError(err)
	suite.Equal("RK2026PHRM001", result.StudentNumber)
	// Anatomy is below the passing threshold, so the overall result fails.
	suite.False(result.OverallPassed)
	suite.Len(result.Subjects, 2)
}

func (suite *GradingServiceTestSuite) TestGetPublicResult_NoMarksIsNotFound() {
	exam := suite.sampleExam()
	student := &domain.Student{StudentID: "student-1", StudentNumber: "RK2026PHRM001"}

	suite.mockStudentRepo.On("FindStudentByNumber", suite.ctx, "RK2026PHRM001").Return(student, nil).Once()
	suite.mockExamRepo.On("FindExamByID", suite.ctx, "exam-1").Return(exam, nil).Once()
	suite.mockExamRepo.On("FindMarksByExamAndStudent", suite.ctx, "exam-1", "student-1").
		Return([]domain.ExamMark{}, nil).Once()

	_, err := suite.service.GetPublicResult(suite.ctx, "RK2026PHRM001", "exam-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestGradingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GradingServiceTestSuite))
}
