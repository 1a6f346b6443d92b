package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// GenerateSalaryRequest defines the data needed to generate a salary slip
// for one teacher for one month. Net salary is computed server-side.
type GenerateSalaryRequest struct {
	TeacherID  string          `json:"teacherID" binding:"required"`
	Month      string          `json:"month" binding:"required"`
	Year       int             `json:"year" binding:"required"`
	Allowances decimal.Decimal `json:"allowances"`
	Deductions decimal.Decimal `json:"deductions"`
}

// UpdateSalaryStatusRequest defines the data allowed for updating the
// payment status of a salary record.
type UpdateSalaryStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=Pending Paid"`
}

// SalaryRecordResponse defines the data returned for a salary record.
type SalaryRecordResponse struct {
	SalaryID           string          `json:"salaryID"`
	SlipNumber         string          `json:"slipNumber"`
	TeacherID          string          `json:"teacherID"`
	Month              string          `json:"month"`
	Year               int             `json:"year"`
	BasicSalary        decimal.Decimal `json:"basicSalary"`
	Allowances         decimal.Decimal `json:"allowances"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetSalary          decimal.Decimal `json:"netSalary"`
	PaymentStatus      string          `json:"paymentStatus"`
	NotificationStatus string          `json:"notificationStatus"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToSalaryRecordResponse converts a domain.SalaryRecord to SalaryRecordResponse DTO
func ToSalaryRecordResponse(s *domain.SalaryRecord) SalaryRecordResponse {
	return SalaryRecordResponse{
		SalaryID:           s.SalaryID,
		SlipNumber:         s.SlipNumber,
		TeacherID:          s.TeacherID,
		Month:              s.Month,
		Year:               s.Year,
		BasicSalary:        s.BasicSalary,
		Allowances:         s.Allowances,
		Deductions:         s.Deductions,
		NetSalary:          s.NetSalary,
		PaymentStatus:      string(s.PaymentStatus),
		NotificationStatus: string(s.NotificationStatus),
		CreatedAt:          s.CreatedAt,
		CreatedBy:          s.CreatedBy,
	}
}

// ListSalaryRecordsParams defines query parameters for listing salary records.
type ListSalaryRecordsParams struct {
	TeacherID string `form:"teacherID"`
	Year      int    `form:"year"`
	Limit     int    `form:"limit,default=20"`
	Offset    int    `form:"offset,default=0"`
}

// ListSalaryRecordsResponse wraps the list of salary records.
type ListSalaryRecordsResponse struct {
	Records []SalaryRecordResponse `json:"records"`
}

// ToListSalaryRecordsResponse converts a slice of domain.SalaryRecord to the list DTO
func ToListSalaryRecordsResponse(records []domain.SalaryRecord) ListSalaryRecordsResponse {
	res := make([]SalaryRecordResponse, len(records))
	for i, r := range records {
		res[i] = ToSalaryRecordResponse(&r)
	}
	return ListSalaryRecordsResponse{Records: res}
}
