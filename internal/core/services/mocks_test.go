package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

// --- Transaction manager base shared by repo mocks ---

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- MockTransactionRepo mocks PaymentTransactionRepositoryWithTx ---

type MockTransactionRepo struct {
	mockTxManager
}

func (m *MockTransactionRepo) SaveTransaction(ctx context.Context, txn domain.PaymentTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepo) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepo) FindTransactionByOrderID(ctx context.Context, externalOrderID string) (*domain.PaymentTransaction, error) {
	args := m.Called(ctx, externalOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepo) FindCapturedWithoutPayment(ctx context.Context, cutoff time.Time) ([]domain.PaymentTransaction, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepo) MarkCapturedInTx(ctx context.Context, tx pgx.Tx, transactionID string, externalPaymentID string, signature string, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, transactionID, externalPaymentID, signature, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepo) MarkFailed(ctx context.Context, transactionID string, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, userID, now)
	return args.Error(0)
}

// --- MockFeePaymentRepo mocks FeePaymentRepositoryWithTx ---

type MockFeePaymentRepo struct {
	mockTxManager
}

func (m *MockFeePaymentRepo) SavePayment(ctx context.Context, payment domain.FeePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockFeePaymentRepo) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.FeePayment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockFeePaymentRepo) FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepo) FindPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*domain.FeePayment, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepo) ListPaymentsByStudent(ctx context.Context, studentID string, limit int, offset int) ([]domain.FeePayment, error) {
	args := m.Called(ctx, studentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepo) ListPayments(ctx context.Context, limit int, offset int) ([]domain.FeePayment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepo) SumPaidByStudent(ctx context.Context, studentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFeePaymentRepo) SumPaidByStudentInTx(ctx context.Context, tx pgx.Tx, studentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, studentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFeePaymentRepo) UpdateNotificationStatus(ctx context.Context, paymentID string, status domain.NotificationStatus, now time.Time) error {
	args := m.Called(ctx, paymentID, status, now)
	return args.Error(0)
}

// --- MockStudentRepo mocks StudentRepositoryFacade ---

type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepo) FindStudentByNumber(ctx context.Context, studentNumber string) (*domain.Student, error) {
	args := m.Called(ctx, studentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepo) ListStudents(ctx context.Context, courseCode string, session string, limit int, offset int) ([]domain.Student, error) {
	args := m.Called(ctx, courseCode, session, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepo) SaveStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepo) UpdateStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

// --- MockTeacherRepo mocks TeacherRepositoryFacade ---

type MockTeacherRepo struct {
	mock.Mock
}

func (m *MockTeacherRepo) FindTeacherByID(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Teacher), args.Error(1)
}

func (m *MockTeacherRepo) ListTeachers(ctx context.Context, limit int, offset int) ([]domain.Teacher, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Teacher), args.Error(1)
}

func (m *MockTeacherRepo) SaveTeacher(ctx context.Context, teacher domain.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepo) UpdateTeacher(ctx context.Context, teacher domain.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

// --- MockSalaryRepo mocks SalaryRepositoryFacade ---

type MockSalaryRepo struct {
	mock.Mock
}

func (m *MockSalaryRepo) FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	args := m.Called(ctx, salaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRepo) FindSalaryByPeriod(ctx context.Context, teacherID string, month string, year int) (*domain.SalaryRecord, error) {
	args := m.Called(ctx, teacherID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRepo) ListSalaries(ctx context.Context, teacherID string, year int, limit int, offset int) ([]domain.SalaryRecord, error) {
	args := m.Called(ctx, teacherID, year, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRepo) SaveSalary(ctx context.Context, record domain.SalaryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSalaryRepo) UpdateSalaryStatus(ctx context.Context, salaryID string, status domain.SalaryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, salaryID, status, userID, now)
	return args.Error(0)
}

func (m *MockSalaryRepo) UpdateNotificationStatus(ctx context.Context, salaryID string, status domain.NotificationStatus, now time.Time) error {
	args := m.Called(ctx, salaryID, status, now)
	return args.Error(0)
}

// --- MockExamRepo mocks ExamRepositoryFacade ---

type MockExamRepo struct {
	mockTxManager
}

func (m *MockExamRepo) FindExamByID(ctx context.Context, examID string) (*domain.Exam, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}

func (m *MockExamRepo) ListExams(ctx context.Context, limit int, offset int) ([]domain.Exam, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exam), args.Error(1)
}

func (m *MockExamRepo) SaveExam(ctx context.Context, exam domain.Exam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepo) UpsertMarks(ctx context.Context, marks []domain.ExamMark) error {
	args := m.Called(ctx, marks)
	return args.Error(0)
}

func (m *MockExamRepo) FindMarksByExam(ctx context.Context, examID string) ([]domain.ExamMark, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExamMark), args.Error(1)
}

func (m *MockExamRepo) FindMarksByExamAndStudent(ctx context.Context, examID string, studentID string) ([]domain.ExamMark, error) {
	args := m.Called(ctx, examID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExamMark), args.Error(1)
}

// --- MockCertificateRepo mocks CertificateRepositoryFacade ---

type MockCertificateRepo struct {
	mock.Mock
}

func (m *MockCertificateRepo) FindCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.Certificate, error) {
	args := m.Called(ctx, certificateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepo) FindCertificateByStudent(ctx context.Context, studentID string, courseCode string) (*domain.Certificate, error) {
	args := m.Called(ctx, studentID, courseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepo) SaveCertificate(ctx context.Context, certificate domain.Certificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

// --- MockNotificationRepo mocks NotificationRepositoryFacade ---

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepo) ClaimPending(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.Notification, error) {
	args := m.Called(ctx, limit, staleAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkSent(ctx context.Context, notificationID string, now time.Time) error {
	args := m.Called(ctx, notificationID, now)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkFailed(ctx context.Context, notificationID string, deliveryError string, now time.Time) error {
	args := m.Called(ctx, notificationID, deliveryError, now)
	return args.Error(0)
}

// --- MockSequenceSvc mocks SequenceSvcFacade ---

type MockSequenceSvc struct {
	mock.Mock
}

func (m *MockSequenceSvc) NextReceiptNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceSvc) NextReceiptNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	args := m.Called(ctx, tx, year)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceSvc) NextSlipNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceSvc) NextStudentNumber(ctx context.Context, year int, courseCode string) (string, error) {
	args := m.Called(ctx, year, courseCode)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceSvc) NextCertificateNumber(ctx context.Context, year int, courseCode string) (string, error) {
	args := m.Called(ctx, year, courseCode)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceSvc) NextTeacherNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

// --- MockPaymentGateway mocks PaymentGateway ---

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amount string, currency string, receipt string) (string, error) {
	args := m.Called(ctx, amount, currency, receipt)
	return args.String(0), args.Error(1)
}

// --- MockMessagingGateway mocks MessagingGateway ---

type MockMessagingGateway struct {
	mock.Mock
}

func (m *MockMessagingGateway) SendMessage(ctx context.Context, phone string, message string, documentURL string) (*domain.DeliveryResult, error) {
	args := m.Called(ctx, phone, message, documentURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryResult), args.Error(1)
}

// --- MockEnqueuer mocks NotificationEnqueuerSvc ---

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockEnqueuer) SendFeeReminders(ctx context.Context, req dto.SendRemindersRequest, userID string) (*domain.BatchDispatchSummary, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchDispatchSummary), args.Error(1)
}
