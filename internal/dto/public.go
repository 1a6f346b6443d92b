package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// ReceiptVerificationResponse is the public view of a verified receipt.
// It deliberately omits internal identifiers and contact details.
type ReceiptVerificationResponse struct {
	ReceiptNumber   string          `json:"receiptNumber"`
	StudentName     string          `json:"studentName"`
	StudentNumber   string          `json:"studentNumber"`
	MonthLabel      string          `json:"monthLabel"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	PaymentDate     time.Time       `json:"paymentDate"`
}

// ToReceiptVerificationResponse builds the public receipt view.
func ToReceiptVerificationResponse(p *domain.FeePayment, s *domain.Student) ReceiptVerificationResponse {
	return ReceiptVerificationResponse{
		ReceiptNumber:   p.ReceiptNumber,
		StudentName:     s.Name,
		StudentNumber:   s.StudentNumber,
		MonthLabel:      p.MonthLabel,
		PaidAmount:      p.PaidAmount,
		RemainingAmount: p.RemainingAmount,
		PaymentDate:     p.PaymentDate,
	}
}

// CertificateVerificationResponse is the public view of a verified certificate.
type CertificateVerificationResponse struct {
	CertificateNumber string    `json:"certificateNumber"`
	StudentName       string    `json:"studentName"`
	CourseCode        string    `json:"courseCode"`
	IssueDate         time.Time `json:"issueDate"`
}

// ToCertificateVerificationResponse builds the public certificate view.
func ToCertificateVerificationResponse(c *domain.Certificate, s *domain.Student) CertificateVerificationResponse {
	return CertificateVerificationResponse{
		CertificateNumber: c.CertificateNumber,
		StudentName:       s.Name,
		CourseCode:        c.CourseCode,
		IssueDate:         c.IssueDate,
	}
}

// PublicResultSubject is one subject line on the public result view.
type PublicResultSubject struct {
	SubjectName   string  `json:"subjectName"`
	MarksObtained float64 `json:"marksObtained"`
	IsAbsent      bool    `json:"isAbsent"`
	Passed        bool    `json:"passed"`
}

// PublicResultResponse is the public result for one student in one exam.
type PublicResultResponse struct {
	StudentName   string                `json:"studentName"`
	StudentNumber string                `json:"studentNumber"`
	ExamTitle     string                `json:"examTitle"`
	TotalMarks    float64               `json:"totalMarks"`
	PassingMarks  float64               `json:"passingMarks"`
	Subjects      []PublicResultSubject `json:"subjects"`
	OverallPassed bool                  `json:"overallPassed"`
}

// ToPublicResultResponse builds the public result view. A student passes
// overall only when every present subject meets the exam threshold and no
// subject was missed by absence.
func ToPublicResultResponse(exam domain.Exam, student *domain.Student, marks []domain.ExamMark) PublicResultResponse {
	subjects := make([]PublicResultSubject, len(marks))
	overallPassed := len(marks) > 0
	for i, m := range marks {
		passed := m.Passed(exam)
		subjects[i] = PublicResultSubject{
			SubjectName:   m.SubjectName,
			MarksObtained: m.MarksObtained,
			IsAbsent:      m.IsAbsent,
			Passed:        passed,
		}
		if !passed {
			overallPassed = false
		}
	}
	return PublicResultResponse{
		StudentName:   student.Name,
		StudentNumber: student.StudentNumber,
		ExamTitle:     exam.Title,
		TotalMarks:    exam.TotalMarks,
		PassingMarks:  exam.PassingMarks,
		Subjects:      subjects,
		OverallPassed: overallPassed,
	}
}
