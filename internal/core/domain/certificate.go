package domain

import "time"

// Certificate is an issued course-completion certificate. CertificateNumber
// is minted once at issuance and verified publicly by exact match.
type Certificate struct {
	CertificateID     string    `json:"certificateID"`     // Primary Key (UUID)
	CertificateNumber string    `json:"certificateNumber"` // e.g. RK2026PHRM012
	StudentID         string    `json:"studentID"`
	CourseCode        string    `json:"courseCode"`
	IssueDate         time.Time `json:"issueDate"`
	AuditFields
}
