package services

import (
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The gateways are injected so tests and the
// composition root can swap providers.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	paymentGateway portssvc.PaymentGateway,
	messagingGateway portssvc.MessagingGateway,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Sequence = NewSequenceService(repos.SequenceRepo)

	// Notification service first: payment and salary enqueue through it.
	container.Notification = NewNotificationService(
		repos.NotificationRepo,
		repos.FeePaymentRepo,
		repos.SalaryRepo,
		repos.StudentRepo,
		messagingGateway,
	)

	container.Payment = NewPaymentService(
		repos.TransactionRepo,
		repos.FeePaymentRepo,
		repos.StudentRepo,
		container.Sequence,
		paymentGateway,
		container.Notification,
	)
	container.Salary = NewSalaryService(
		repos.SalaryRepo,
		repos.TeacherRepo,
		container.Sequence,
		container.Notification,
	)
	container.Grading = NewGradingService(repos.ExamRepo, repos.StudentRepo)
	container.Student = NewStudentService(repos.StudentRepo, container.Sequence)
	container.Teacher = NewTeacherService(repos.TeacherRepo, container.Sequence)
	container.Certificate = NewCertificateService(repos.CertificateRepo, repos.StudentRepo, container.Sequence)
	container.User = NewUserService(repos.UserRepo, cfg)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
