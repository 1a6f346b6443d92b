package mapping

import (
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
)

// ToModelExam converts a domain Exam to its model
func ToModelExam(d domain.Exam) models.Exam {
	return models.Exam{
		ExamID:       d.ExamID,
		Title:        d.Title,
		Date:         d.Date,
		CourseCode:   d.CourseCode,
		Session:      d.Session,
		TotalMarks:   d.TotalMarks,
		PassingMarks: d.PassingMarks,
		BranchID:     d.BranchID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExam converts a model Exam to its domain form
func ToDomainExam(m models.Exam) domain.Exam {
	return domain.Exam{
		ExamID:       m.ExamID,
		Title:        m.Title,
		Date:         m.Date,
		CourseCode:   m.CourseCode,
		Session:      m.Session,
		TotalMarks:   m.TotalMarks,
		PassingMarks: m.PassingMarks,
		BranchID:     m.BranchID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExamSlice converts a slice of model Exams
func ToDomainExamSlice(ms []models.Exam) []domain.Exam {
	ds := make([]domain.Exam, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExam(m)
	}
	return ds
}

// ToModelExamMark converts a domain ExamMark to its model
func ToModelExamMark(d domain.ExamMark) models.ExamMark {
	return models.ExamMark{
		ExamID:        d.ExamID,
		StudentID:     d.StudentID,
		SubjectName:   d.SubjectName,
		MarksObtained: d.MarksObtained,
		IsAbsent:      d.IsAbsent,
		Remarks:       d.Remarks,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExamMark converts a model ExamMark to its domain form
func ToDomainExamMark(m models.ExamMark) domain.ExamMark {
	return domain.ExamMark{
		ExamID:        m.ExamID,
		StudentID:     m.StudentID,
		SubjectName:   m.SubjectName,
		MarksObtained: m.MarksObtained,
		IsAbsent:      m.IsAbsent,
		Remarks:       m.Remarks,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExamMarkSlice converts a slice of model ExamMarks
func ToDomainExamMarkSlice(ms []models.ExamMark) []domain.ExamMark {
	ds := make([]domain.ExamMark, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExamMark(m)
	}
	return ds
}

// ToModelCertificate converts a domain Certificate to its model
func ToModelCertificate(d domain.Certificate) models.Certificate {
	return models.Certificate{
		CertificateID:     d.CertificateID,
		CertificateNumber: d.CertificateNumber,
		StudentID:         d.StudentID,
		CourseCode:        d.CourseCode,
		IssueDate:         d.IssueDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCertificate converts a model Certificate to its domain form
func ToDomainCertificate(m models.Certificate) domain.Certificate {
	return domain.Certificate{
		CertificateID:     m.CertificateID,
		CertificateNumber: m.CertificateNumber,
		StudentID:         m.StudentID,
		CourseCode:        m.CourseCode,
		IssueDate:         m.IssueDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
