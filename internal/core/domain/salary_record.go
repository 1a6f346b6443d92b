package domain

import "github.com/shopspring/decimal"

// SalaryStatus is the payout state of a salary record.
type SalaryStatus string

const (
	SalaryPending SalaryStatus = "Pending"
	SalaryPaid    SalaryStatus = "Paid"
)

// SalaryRecord is a payroll slip for one teacher and one month. NetSalary
// is computed at creation time and never recomputed; only PaymentStatus
// and NotificationStatus change afterward.
type SalaryRecord struct {
	SalaryID           string             `json:"salaryID"`   // Primary Key (UUID)
	SlipNumber         string             `json:"slipNumber"` // Unique, e.g. RK-SAL-2026-00007
	TeacherID          string             `json:"teacherID"`
	Month              string             `json:"month"` // e.g. "January"
	Year               int                `json:"year"`
	BasicSalary        decimal.Decimal    `json:"basicSalary"`
	Allowances         decimal.Decimal    `json:"allowances"`
	Deductions         decimal.Decimal    `json:"deductions"`
	NetSalary          decimal.Decimal    `json:"netSalary"`
	PaymentStatus      SalaryStatus       `json:"paymentStatus"`
	NotificationStatus NotificationStatus `json:"notificationStatus"`
	AuditFields
}

// NetSalaryOf computes basic + allowances - deductions.
func NetSalaryOf(basic, allowances, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Sub(deductions)
}
