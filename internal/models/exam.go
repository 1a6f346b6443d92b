package models

import "time"

// Exam represents a row in the exams table.
type Exam struct {
	ExamID       string    `db:"exam_id"`
	Title        string    `db:"title"`
	Date         time.Time `db:"date"`
	CourseCode   string    `db:"course_code"`
	Session      string    `db:"session"`
	TotalMarks   float64   `db:"total_marks"`
	PassingMarks float64   `db:"passing_marks"`
	BranchID     string    `db:"branch_id"`
	AuditFields
}

// ExamMark represents a row in the exam_marks table. The composite key
// (exam_id, student_id, subject_name) carries a unique constraint.
type ExamMark struct {
	ExamID        string  `db:"exam_id"`
	StudentID     string  `db:"student_id"`
	SubjectName   string  `db:"subject_name"`
	MarksObtained float64 `db:"marks_obtained"`
	IsAbsent      bool    `db:"is_absent"`
	Remarks       string  `db:"remarks"`
	AuditFields
}

// Certificate represents a row in the certificates table.
type Certificate struct {
	CertificateID     string    `db:"certificate_id"`
	CertificateNumber string    `db:"certificate_number"` // Unique
	StudentID         string    `db:"student_id"`
	CourseCode        string    `db:"course_code"`
	IssueDate         time.Time `db:"issue_date"`
	AuditFields
}
