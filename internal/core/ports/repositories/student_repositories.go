package repositories

import (
	"context"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// StudentReader defines read operations for student records
type StudentReader interface {
	// FindStudentByID retrieves a student by the internal identifier.
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)

	// FindStudentByNumber retrieves a student by the minted student number.
	FindStudentByNumber(ctx context.Context, studentNumber string) (*domain.Student, error)

	// ListStudents retrieves a paginated, filterable list of students.
	ListStudents(ctx context.Context, courseCode string, session string, limit int, offset int) ([]domain.Student, error)
}

// StudentWriter defines write operations for student records
type StudentWriter interface {
	// SaveStudent persists a new student.
	SaveStudent(ctx context.Context, student domain.Student) error

	// UpdateStudent updates an existing student's details.
	UpdateStudent(ctx context.Context, student domain.Student) error
}

// StudentRepositoryFacade combines all student repository interfaces
type StudentRepositoryFacade interface {
	StudentReader
	StudentWriter
}

// TeacherReader defines read operations for teacher records
type TeacherReader interface {
	// FindTeacherByID retrieves a teacher by the internal identifier.
	FindTeacherByID(ctx context.Context, teacherID string) (*domain.Teacher, error)

	// ListTeachers retrieves a paginated list of teachers.
	ListTeachers(ctx context.Context, limit int, offset int) ([]domain.Teacher, error)
}

// TeacherWriter defines write operations for teacher records
type TeacherWriter interface {
	// SaveTeacher persists a new teacher.
	SaveTeacher(ctx context.Context, teacher domain.Teacher) error

	// UpdateTeacher updates an existing teacher's details.
	UpdateTeacher(ctx context.Context, teacher domain.Teacher) error
}

// TeacherRepositoryFacade combines all teacher repository interfaces
type TeacherRepositoryFacade interface {
	TeacherReader
	TeacherWriter
}

// CertificateReader defines read operations for certificates
type CertificateReader interface {
	// FindCertificateByNumber retrieves a certificate by its minted number.
	FindCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.Certificate, error)

	// FindCertificateByStudent retrieves the certificate issued to a student
	// for a course, if any.
	FindCertificateByStudent(ctx context.Context, studentID string, courseCode string) (*domain.Certificate, error)
}

// CertificateWriter defines write operations for certificates
type CertificateWriter interface {
	// SaveCertificate persists a newly issued certificate.
	SaveCertificate(ctx context.Context, certificate domain.Certificate) error
}

// CertificateRepositoryFacade combines all certificate repository interfaces
type CertificateRepositoryFacade interface {
	CertificateReader
	CertificateWriter
}
