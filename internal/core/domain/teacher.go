package domain

import "github.com/shopspring/decimal"

// Teacher is the staff master record for payroll.
type Teacher struct {
	TeacherID     string          `json:"teacherID"`     // Primary Key (UUID)
	TeacherNumber string          `json:"teacherNumber"` // Minted identifier, e.g. RK2026TCH003
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Subject       string          `json:"subject"`
	BasicSalary   decimal.Decimal `json:"basicSalary"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
