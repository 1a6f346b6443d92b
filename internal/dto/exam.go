package dto

import (
	"time"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// CreateExamRequest defines the data needed to create an exam.
type CreateExamRequest struct {
	Title        string    `json:"title" binding:"required"`
	Date         time.Time `json:"date" binding:"required"`
	CourseCode   string    `json:"courseCode" binding:"required,coursecode"`
	Session      string    `json:"session" binding:"required"`
	TotalMarks   float64   `json:"totalMarks" binding:"required,gt=0"`
	PassingMarks float64   `json:"passingMarks" binding:"required,gte=0"`
	BranchID     string    `json:"branchID"`
}

// ExamResponse defines the data returned for an exam.
type ExamResponse struct {
	ExamID       string    `json:"examID"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	CourseCode   string    `json:"courseCode"`
	Session      string    `json:"session"`
	TotalMarks   float64   `json:"totalMarks"`
	PassingMarks float64   `json:"passingMarks"`
	BranchID     string    `json:"branchID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToExamResponse converts a domain.Exam to ExamResponse DTO
func ToExamResponse(e *domain.Exam) ExamResponse {
	return ExamResponse{
		ExamID:       e.ExamID,
		Title:        e.Title,
		Date:         e.Date,
		CourseCode:   e.CourseCode,
		Session:      e.Session,
		TotalMarks:   e.TotalMarks,
		PassingMarks: e.PassingMarks,
		BranchID:     e.BranchID,
		CreatedAt:    e.CreatedAt,
	}
}

// ToListExamResponse converts a slice of domain.Exam to a slice of ExamResponse DTOs
func ToListExamResponse(exams []domain.Exam) []ExamResponse {
	res := make([]ExamResponse, len(exams))
	for i, e := range exams {
		res[i] = ToExamResponse(&e)
	}
	return res
}

// MarkEntry is one row in a bulk marks upsert.
type MarkEntry struct {
	StudentID     string  `json:"studentID" binding:"required"`
	SubjectName   string  `json:"subjectName" binding:"required"`
	MarksObtained float64 `json:"marksObtained"`
	IsAbsent      bool    `json:"isAbsent"`
	Remarks       string  `json:"remarks"`
}

// UpsertMarksRequest defines the data for entering or correcting marks for
// an exam. Re-submitting an entry for the same (student, subject) overwrites.
type UpsertMarksRequest struct {
	Marks []MarkEntry `json:"marks" binding:"required,min=1,dive"`
}

// ExamMarkResponse defines the data returned for one recorded mark.
type ExamMarkResponse struct {
	ExamID        string  `json:"examID"`
	StudentID     string  `json:"studentID"`
	SubjectName   string  `json:"subjectName"`
	MarksObtained float64 `json:"marksObtained"`
	IsAbsent      bool    `json:"isAbsent"`
	Remarks       string  `json:"remarks"`
	Passed        bool    `json:"passed"`
}

// ToExamMarkResponse converts a domain.ExamMark to ExamMarkResponse DTO,
// deriving the pass flag from the exam's configured threshold.
func ToExamMarkResponse(exam domain.Exam, m *domain.ExamMark) ExamMarkResponse {
	return ExamMarkResponse{
		ExamID:        m.ExamID,
		StudentID:     m.StudentID,
		SubjectName:   m.SubjectName,
		MarksObtained: m.MarksObtained,
		IsAbsent:      m.IsAbsent,
		Remarks:       m.Remarks,
		Passed:        m.Passed(exam),
	}
}

// ExamSummaryResponse defines the aggregate returned per exam by the
// performance dashboard.
type ExamSummaryResponse struct {
	ExamID       string  `json:"examID"`
	Title        string  `json:"title"`
	Total        int     `json:"total"`
	Passed       int     `json:"passed"`
	Failed       int     `json:"failed"`
	Absent       int     `json:"absent"`
	PassRate     float64 `json:"passRate"`
	IsStruggling bool    `json:"isStruggling"`
}

// ToExamSummaryResponse converts a domain.ExamSummary to its DTO
func ToExamSummaryResponse(s *domain.ExamSummary) ExamSummaryResponse {
	return ExamSummaryResponse{
		ExamID:       s.ExamID,
		Title:        s.Title,
		Total:        s.Total,
		Passed:       s.Passed,
		Failed:       s.Failed,
		Absent:       s.Absent,
		PassRate:     s.PassRate,
		IsStruggling: s.IsStruggling(),
	}
}

// PerformanceDashboardResponse wraps the per-exam summaries. Exams with no
// recorded marks are omitted entirely.
type PerformanceDashboardResponse struct {
	Summaries []ExamSummaryResponse `json:"summaries"`
}
