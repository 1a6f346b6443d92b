package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	SequenceRepo     SequenceRepositoryFacade
	TransactionRepo  PaymentTransactionRepositoryWithTx
	FeePaymentRepo   FeePaymentRepositoryWithTx
	SalaryRepo       SalaryRepositoryFacade
	ExamRepo         ExamRepositoryFacade
	StudentRepo      StudentRepositoryFacade
	TeacherRepo      TeacherRepositoryFacade
	CertificateRepo  CertificateRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	UserRepo         UserRepositoryFacade
}
