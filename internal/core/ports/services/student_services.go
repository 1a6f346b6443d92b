package services

import (
	"context"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

// StudentReaderSvc defines read operations for students
type StudentReaderSvc interface {
	// GetStudentByID retrieves a student by the internal identifier.
	GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error)

	// GetStudentByNumber retrieves a student by the minted student number.
	GetStudentByNumber(ctx context.Context, studentNumber string) (*domain.Student, error)

	// ListStudents retrieves a paginated, filterable list of students.
	ListStudents(ctx context.Context, courseCode string, session string, limit int, offset int) ([]domain.Student, error)
}

// StudentWriterSvc defines mutations for students
type StudentWriterSvc interface {
	// CreateStudent enrolls a student, minting a student number in the
	// course namespace.
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest, userID string) (*domain.Student, error)

	// UpdateStudent updates an existing student's details.
	UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, userID string) (*domain.Student, error)
}

// StudentSvcFacade combines all student service interfaces
type StudentSvcFacade interface {
	StudentReaderSvc
	StudentWriterSvc
}

// TeacherSvcFacade defines operations for teacher records
type TeacherSvcFacade interface {
	// GetTeacherByID retrieves a teacher by the internal identifier.
	GetTeacherByID(ctx context.Context, teacherID string) (*domain.Teacher, error)

	// ListTeachers retrieves a paginated list of teachers.
	ListTeachers(ctx context.Context, limit int, offset int) ([]domain.Teacher, error)

	// CreateTeacher registers a teacher, minting a teacher number.
	CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest, userID string) (*domain.Teacher, error)

	// UpdateTeacher updates an existing teacher's details.
	UpdateTeacher(ctx context.Context, teacherID string, req dto.UpdateTeacherRequest, userID string) (*domain.Teacher, error)
}

// CertificateSvcFacade defines operations for certificates
type CertificateSvcFacade interface {
	// IssueCertificate issues a course-completion certificate, minting a
	// certificate number in the course namespace. One per student per course.
	IssueCertificate(ctx context.Context, req dto.IssueCertificateRequest, userID string) (*domain.Certificate, error)

	// VerifyCertificate resolves a certificate number to its public view.
	VerifyCertificate(ctx context.Context, certificateNumber string) (*dto.CertificateVerificationResponse, error)
}
