package domain

import "time"

// Exam is immutable reference data for grading. Pass/fail is always
// derived from PassingMarks, never stored.
type Exam struct {
	ExamID       string    `json:"examID"` // Primary Key (UUID)
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	CourseCode   string    `json:"courseCode"`
	Session      string    `json:"session"`
	TotalMarks   float64   `json:"totalMarks"`
	PassingMarks float64   `json:"passingMarks"`
	BranchID     string    `json:"branchID"`
	AuditFields
}

// ExamMark is one student's mark in one subject of one exam. The triple
// (ExamID, StudentID, SubjectName) is the natural key; re-entry overwrites.
type ExamMark struct {
	ExamID        string  `json:"examID"`
	StudentID     string  `json:"studentID"`
	SubjectName   string  `json:"subjectName"`
	MarksObtained float64 `json:"marksObtained"`
	IsAbsent      bool    `json:"isAbsent"`
	Remarks       string  `json:"remarks"`
	AuditFields
}

// Passed applies the canonical pass rule: present and at or above the
// exam's configured passing threshold.
func (m ExamMark) Passed(exam Exam) bool {
	return !m.IsAbsent && m.MarksObtained >= exam.PassingMarks
}

// StrugglingPassRateThreshold is the pass-rate percentage below which an
// exam is classified as struggling. Fixed policy constant.
const StrugglingPassRateThreshold = 60.0

// ExamSummary is the per-exam aggregate over all recorded marks. Exams
// with no recorded marks produce no summary at all.
type ExamSummary struct {
	ExamID   string  `json:"examID"`
	Title    string  `json:"title"`
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Absent   int     `json:"absent"`
	PassRate float64 `json:"passRate"` // percentage, 0..100
}

// IsStruggling reports whether the exam's pass rate falls below the
// struggling threshold.
func (s ExamSummary) IsStruggling() bool {
	return s.PassRate < StrugglingPassRateThreshold
}

// SummarizeMarks aggregates a set of marks for one exam. Returns nil when
// there are no entries so callers never divide by zero.
func SummarizeMarks(exam Exam, marks []ExamMark) *ExamSummary {
	if len(marks) == 0 {
		return nil
	}

	summary := &ExamSummary{
		ExamID: exam.ExamID,
		Title:  exam.Title,
		Total:  len(marks),
	}
	for _, m := range marks {
		switch {
		case m.IsAbsent:
			summary.Absent++
		case m.MarksObtained >= exam.PassingMarks:
			summary.Passed++
		default:
			summary.Failed++
		}
	}
	summary.PassRate = float64(summary.Passed) / float64(summary.Total) * 100

	return summary
}
