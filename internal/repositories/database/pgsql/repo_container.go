package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	sequenceRepo := newPgxSequenceRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	feePaymentRepo := newPgxFeePaymentRepository(dbPool)
	salaryRepo := newPgxSalaryRepository(dbPool)
	examRepo := newPgxExamRepository(dbPool)
	studentRepo := newPgxStudentRepository(dbPool)
	teacherRepo := newPgxTeacherRepository(dbPool)
	certificateRepo := newPgxCertificateRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		SequenceRepo:     sequenceRepo,
		TransactionRepo:  transactionRepo,
		FeePaymentRepo:   feePaymentRepo,
		SalaryRepo:       salaryRepo,
		ExamRepo:         examRepo,
		StudentRepo:      studentRepo,
		TeacherRepo:      teacherRepo,
		CertificateRepo:  certificateRepo,
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
	}
}
