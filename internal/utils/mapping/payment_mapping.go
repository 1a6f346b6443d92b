package mapping

import (
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
)

// ToModelPaymentTransaction converts a domain PaymentTransaction to its model
func ToModelPaymentTransaction(d domain.PaymentTransaction) models.PaymentTransaction {
	return models.PaymentTransaction{
		TransactionID:     d.TransactionID,
		ExternalOrderID:   d.ExternalOrderID,
		ExternalPaymentID: d.ExternalPaymentID,
		StudentID:         d.StudentID,
		Amount:            d.Amount,
		Status:            models.TransactionStatus(d.Status),
		Signature:         d.Signature,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentTransaction converts a model PaymentTransaction to its domain form
func ToDomainPaymentTransaction(m models.PaymentTransaction) domain.PaymentTransaction {
	return domain.PaymentTransaction{
		TransactionID:     m.TransactionID,
		ExternalOrderID:   m.ExternalOrderID,
		ExternalPaymentID: m.ExternalPaymentID,
		StudentID:         m.StudentID,
		Amount:            m.Amount,
		Status:            domain.TransactionStatus(m.Status),
		Signature:         m.Signature,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFeePayment converts a domain FeePayment to its model
func ToModelFeePayment(d domain.FeePayment) models.FeePayment {
	return models.FeePayment{
		PaymentID:          d.PaymentID,
		ReceiptNumber:      d.ReceiptNumber,
		StudentID:          d.StudentID,
		MonthLabel:         d.MonthLabel,
		TotalFees:          d.TotalFees,
		PaidAmount:         d.PaidAmount,
		RemainingAmount:    d.RemainingAmount,
		PaymentMode:        string(d.PaymentMode),
		PaymentDate:        d.PaymentDate,
		TransactionID:      d.TransactionID,
		NotificationStatus: string(d.NotificationStatus),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFeePayment converts a model FeePayment to its domain form
func ToDomainFeePayment(m models.FeePayment) domain.FeePayment {
	return domain.FeePayment{
		PaymentID:          m.PaymentID,
		ReceiptNumber:      m.ReceiptNumber,
		StudentID:          m.StudentID,
		MonthLabel:         m.MonthLabel,
		TotalFees:          m.TotalFees,
		PaidAmount:         m.PaidAmount,
		RemainingAmount:    m.RemainingAmount,
		PaymentMode:        domain.PaymentMode(m.PaymentMode),
		PaymentDate:        m.PaymentDate,
		TransactionID:      m.TransactionID,
		NotificationStatus: domain.NotificationStatus(m.NotificationStatus),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFeePaymentSlice converts a slice of model FeePayments
func ToDomainFeePaymentSlice(ms []models.FeePayment) []domain.FeePayment {
	ds := make([]domain.FeePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFeePayment(m)
	}
	return ds
}

// ToModelSalaryRecord converts a domain SalaryRecord to its model
func ToModelSalaryRecord(d domain.SalaryRecord) models.SalaryRecord {
	return models.SalaryRecord{
		SalaryID:           d.SalaryID,
		SlipNumber:         d.SlipNumber,
		TeacherID:          d.TeacherID,
		Month:              d.Month,
		Year:               d.Year,
		BasicSalary:        d.BasicSalary,
		Allowances:         d.Allowances,
		Deductions:         d.Deductions,
		NetSalary:          d.NetSalary,
		PaymentStatus:      string(d.PaymentStatus),
		NotificationStatus: string(d.NotificationStatus),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalaryRecord converts a model SalaryRecord to its domain form
func ToDomainSalaryRecord(m models.SalaryRecord) domain.SalaryRecord {
	return domain.SalaryRecord{
		SalaryID:           m.SalaryID,
		SlipNumber:         m.SlipNumber,
		TeacherID:          m.TeacherID,
		Month:              m.Month,
		Year:               m.Year,
		BasicSalary:        m.BasicSalary,
		Allowances:         m.Allowances,
		Deductions:         m.Deductions,
		NetSalary:          m.NetSalary,
		PaymentStatus:      domain.SalaryStatus(m.PaymentStatus),
		NotificationStatus: domain.NotificationStatus(m.NotificationStatus),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSalaryRecordSlice converts a slice of model SalaryRecords
func ToDomainSalaryRecordSlice(ms []models.SalaryRecord) []domain.SalaryRecord {
	ds := make([]domain.SalaryRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSalaryRecord(m)
	}
	return ds
}
