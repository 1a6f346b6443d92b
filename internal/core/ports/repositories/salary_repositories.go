package repositories

import (
	"context"
	"time"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// SalaryReader defines read operations for salary records
type SalaryReader interface {
	// FindSalaryByID retrieves a salary record by its identifier.
	FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error)

	// FindSalaryByPeriod retrieves the record for one teacher and one month,
	// if any. Used to reject duplicate slip generation.
	FindSalaryByPeriod(ctx context.Context, teacherID string, month string, year int) (*domain.SalaryRecord, error)

	// ListSalaries retrieves a paginated, filterable list of salary records.
	ListSalaries(ctx context.Context, teacherID string, year int, limit int, offset int) ([]domain.SalaryRecord, error)
}

// SalaryWriter defines write operations for salary records
type SalaryWriter interface {
	// SaveSalary persists a new salary record.
	SaveSalary(ctx context.Context, record domain.SalaryRecord) error

	// UpdateSalaryStatus updates the payment status of a salary record.
	UpdateSalaryStatus(ctx context.Context, salaryID string, status domain.SalaryStatus, userID string, now time.Time) error

	// UpdateNotificationStatus writes back the delivery outcome of the slip message.
	UpdateNotificationStatus(ctx context.Context, salaryID string, status domain.NotificationStatus, now time.Time) error
}

// SalaryRepositoryFacade combines all salary repository interfaces
type SalaryRepositoryFacade interface {
	SalaryReader
	SalaryWriter
}

// SalaryRepositoryWithTx extends the facade with transaction capabilities
type SalaryRepositoryWithTx interface {
	SalaryRepositoryFacade
	TransactionManager
}
