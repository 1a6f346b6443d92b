package mapping

import (
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
)

// ToModelStudent converts a domain Student to its model
func ToModelStudent(d domain.Student) models.Student {
	return models.Student{
		StudentID:     d.StudentID,
		StudentNumber: d.StudentNumber,
		Name:          d.Name,
		Phone:         d.Phone,
		GuardianName:  d.GuardianName,
		CourseCode:    d.CourseCode,
		Session:       d.Session,
		TotalFees:     d.TotalFees,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStudent converts a model Student to its domain form
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:     m.StudentID,
		StudentNumber: m.StudentNumber,
		Name:          m.Name,
		Phone:         m.Phone,
		GuardianName:  m.GuardianName,
		CourseCode:    m.CourseCode,
		Session:       m.Session,
		TotalFees:     m.TotalFees,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStudentSlice converts a slice of model Students
func ToDomainStudentSlice(ms []models.Student) []domain.Student {
	ds := make([]domain.Student, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStudent(m)
	}
	return ds
}

// ToModelTeacher converts a domain Teacher to its model
func ToModelTeacher(d domain.Teacher) models.Teacher {
	return models.Teacher{
		TeacherID:     d.TeacherID,
		TeacherNumber: d.TeacherNumber,
		Name:          d.Name,
		Phone:         d.Phone,
		Subject:       d.Subject,
		BasicSalary:   d.BasicSalary,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTeacher converts a model Teacher to its domain form
func ToDomainTeacher(m models.Teacher) domain.Teacher {
	return domain.Teacher{
		TeacherID:     m.TeacherID,
		TeacherNumber: m.TeacherNumber,
		Name:          m.Name,
		Phone:         m.Phone,
		Subject:       m.Subject,
		BasicSalary:   m.BasicSalary,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTeacherSlice converts a slice of model Teachers
func ToDomainTeacherSlice(ms []models.Teacher) []domain.Teacher {
	ds := make([]domain.Teacher, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTeacher(m)
	}
	return ds
}
