package domain

import "github.com/shopspring/decimal"

// Student is the admitted-student master record. TotalFees is the fee
// schedule total for the current session; outstanding balance is always
// derived from it against the fee_payments ledger, never stored.
type Student struct {
	StudentID     string          `json:"studentID"`     // Primary Key (UUID)
	StudentNumber string          `json:"studentNumber"` // Minted identifier, e.g. RK2026PHRM001
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	GuardianName  string          `json:"guardianName"`
	CourseCode    string          `json:"courseCode"` // 4-letter course code, e.g. PHRM
	Session       string          `json:"session"`    // e.g. "2026-27"
	TotalFees     decimal.Decimal `json:"totalFees"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
