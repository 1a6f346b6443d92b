package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// CreateStudentRequest defines the data needed to enroll a student. The
// student number is minted server-side from the course namespace.
type CreateStudentRequest struct {
	Name         string          `json:"name" binding:"required"`
	Phone        string          `json:"phone" binding:"required"`
	GuardianName string          `json:"guardianName"`
	CourseCode   string          `json:"courseCode" binding:"required,coursecode"`
	Session      string          `json:"session" binding:"required"`
	TotalFees    decimal.Decimal `json:"totalFees" binding:"required"`
}

// UpdateStudentRequest defines the data allowed for updating a student.
// Pointers distinguish omitted fields from zero values.
type UpdateStudentRequest struct {
	Name         *string          `json:"name"`
	Phone        *string          `json:"phone"`
	GuardianName *string          `json:"guardianName"`
	TotalFees    *decimal.Decimal `json:"totalFees"`
	IsActive     *bool            `json:"isActive"`
}

// StudentResponse defines the data returned for a student.
type StudentResponse struct {
	StudentID     string          `json:"studentID"`
	StudentNumber string          `json:"studentNumber"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	GuardianName  string          `json:"guardianName"`
	CourseCode    string          `json:"courseCode"`
	Session       string          `json:"session"`
	TotalFees     decimal.Decimal `json:"totalFees"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToStudentResponse converts a domain.Student to StudentResponse DTO
func ToStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		StudentID:     s.StudentID,
		StudentNumber: s.StudentNumber,
		Name:          s.Name,
		Phone:         s.Phone,
		GuardianName:  s.GuardianName,
		CourseCode:    s.CourseCode,
		Session:       s.Session,
		TotalFees:     s.TotalFees,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

// ListStudentsParams defines query parameters for listing students.
type ListStudentsParams struct {
	CourseCode string `form:"courseCode"`
	Session    string `form:"session"`
	Limit      int    `form:"limit,default=20"`
	Offset     int    `form:"offset,default=0"`
}

// ListStudentsResponse wraps the list of students.
type ListStudentsResponse struct {
	Students []StudentResponse `json:"students"`
}

// ToListStudentsResponse converts a slice of domain.Student to the list DTO
func ToListStudentsResponse(students []domain.Student) ListStudentsResponse {
	res := make([]StudentResponse, len(students))
	for i, s := range students {
		res[i] = ToStudentResponse(&s)
	}
	return ListStudentsResponse{Students: res}
}

// CreateTeacherRequest defines the data needed to register a teacher.
type CreateTeacherRequest struct {
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone" binding:"required"`
	Subject     string          `json:"subject"`
	BasicSalary decimal.Decimal `json:"basicSalary" binding:"required"`
}

// UpdateTeacherRequest defines the data allowed for updating a teacher.
type UpdateTeacherRequest struct {
	Name        *string          `json:"name"`
	Phone       *string          `json:"phone"`
	Subject     *string          `json:"subject"`
	BasicSalary *decimal.Decimal `json:"basicSalary"`
	IsActive    *bool            `json:"isActive"`
}

// TeacherResponse defines the data returned for a teacher.
type TeacherResponse struct {
	TeacherID     string          `json:"teacherID"`
	TeacherNumber string          `json:"teacherNumber"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Subject       string          `json:"subject"`
	BasicSalary   decimal.Decimal `json:"basicSalary"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTeacherResponse converts a domain.Teacher to TeacherResponse DTO
func ToTeacherResponse(t *domain.Teacher) TeacherResponse {
	return TeacherResponse{
		TeacherID:     t.TeacherID,
		TeacherNumber: t.TeacherNumber,
		Name:          t.Name,
		Phone:         t.Phone,
		Subject:       t.Subject,
		BasicSalary:   t.BasicSalary,
		IsActive:      t.IsActive,
		CreatedAt:     t.CreatedAt,
	}
}

// ToListTeacherResponse converts a slice of domain.Teacher to TeacherResponse DTOs
func ToListTeacherResponse(teachers []domain.Teacher) []TeacherResponse {
	res := make([]TeacherResponse, len(teachers))
	for i, t := range teachers {
		res[i] = ToTeacherResponse(&t)
	}
	return res
}

// IssueCertificateRequest defines the data needed to issue a certificate.
type IssueCertificateRequest struct {
	StudentID string     `json:"studentID" binding:"required"`
	IssueDate *time.Time `json:"issueDate"` // Optional, defaults to now
}

// CertificateResponse defines the data returned for a certificate.
type CertificateResponse struct {
	CertificateID     string    `json:"certificateID"`
	CertificateNumber string    `json:"certificateNumber"`
	StudentID         string    `json:"studentID"`
	CourseCode        string    `json:"courseCode"`
	IssueDate         time.Time `json:"issueDate"`
}

// ToCertificateResponse converts a domain.Certificate to CertificateResponse DTO
func ToCertificateResponse(c *domain.Certificate) CertificateResponse {
	return CertificateResponse{
		CertificateID:     c.CertificateID,
		CertificateNumber: c.CertificateNumber,
		StudentID:         c.StudentID,
		CourseCode:        c.CourseCode,
		IssueDate:         c.IssueDate,
	}
}
