package models

import "github.com/shopspring/decimal"

// Student represents a row in the students table.
type Student struct {
	StudentID     string          `db:"student_id"`
	StudentNumber string          `db:"student_number"` // Unique
	Name          string          `db:"name"`
	Phone         string          `db:"phone"`
	GuardianName  string          `db:"guardian_name"`
	CourseCode    string          `db:"course_code"`
	Session       string          `db:"session"`
	TotalFees     decimal.Decimal `db:"total_fees"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}

// Teacher represents a row in the teachers table.
type Teacher struct {
	TeacherID     string          `db:"teacher_id"`
	TeacherNumber string          `db:"teacher_number"` // Unique
	Name          string          `db:"name"`
	Phone         string          `db:"phone"`
	Subject       string          `db:"subject"`
	BasicSalary   decimal.Decimal `db:"basic_salary"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
