package services

import (
	"context"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

// SalaryReaderSvc defines read operations for payroll
type SalaryReaderSvc interface {
	// GetSalaryByID retrieves a salary record by its identifier.
	GetSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error)

	// ListSalaries retrieves a paginated, filterable list of salary records.
	ListSalaries(ctx context.Context, teacherID string, year int, limit int, offset int) ([]domain.SalaryRecord, error)
}

// SalaryWriterSvc defines mutations for payroll
type SalaryWriterSvc interface {
	// GenerateSalary creates the slip for one teacher and one month, minting
	// a slip number and computing the net amount. A second generation for the
	// same period is rejected as a duplicate.
	GenerateSalary(ctx context.Context, req dto.GenerateSalaryRequest, userID string) (*domain.SalaryRecord, error)

	// UpdateSalaryStatus moves a record between Pending and Paid.
	UpdateSalaryStatus(ctx context.Context, salaryID string, req dto.UpdateSalaryStatusRequest, userID string) (*domain.SalaryRecord, error)
}

// SalarySvcFacade combines all payroll service interfaces
type SalarySvcFacade interface {
	SalaryReaderSvc
	SalaryWriterSvc
}
