package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/services"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepo
	mockFeeRepo     *MockFeePaymentRepo
	mockStudentRepo *MockStudentRepo
	mockSequence    *MockSequenceSvc
	mockGateway     *MockPaymentGateway
	mockEnqueuer    *MockEnqueuer
	service         portssvc.PaymentSvcFacade
	ctx             context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepo)
	suite.mockFeeRepo = new(MockFeePaymentRepo)
	suite.mockStudentRepo = new(MockStudentRepo)
	suite.mockSequence = new(MockSequenceSvc)
	suite.mockGateway = new(MockPaymentGateway)
	suite.mockEnqueuer = new(MockEnqueuer)
	suite.service = services.NewPaymentService(
		suite.mockTxnRepo,
		suite.mockFeeRepo,
		suite.mockStudentRepo,
		suite.mockSequence,
		suite.mockGateway,
		suite.mockEnqueuer,
	)
	suite.ctx = context.Background()
}

func (suite *PaymentServiceTestSuite) sampleStudent() *domain.Student {
	return &domain.Student{
		StudentID:     "student-1",
		StudentNumber: "RK2026PHRM001",
		Name:          "Asha Kulkarni",
		Phone:         "9876543210",
		GuardianName:  "Ravi Kulkarni",
		CourseCode:    "PHRM",
		Session:       "2026-27",
		TotalFees:     decimal.NewFromInt(12000),
		IsActive:      true,
	}
}

func (suite *PaymentServiceTestSuite) TestRecordManualPayment_Success() {
	student := suite.sampleStudent()
	req := dto.RecordFeePaymentRequest{
		StudentID:   "student-1",
		MonthLabel:  "April 2026",
		PaidAmount:  decimal.NewFromInt(3000),
		PaymentMode: "cash",
	}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockFeeRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockSequence.On("NextReceiptNumberInTx", suite.ctx, mock.Anything, mock.AnythingOfType("int")).
		Return("RK-FEE-2026-00042", nil).Once()
	suite.mockFeeRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Return(nil).Once()
	suite.mockFeeRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockFeeRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockEnqueuer.On("EnqueueNotification", suite.ctx, mock.AnythingOfType("domain.Notification")).
		Return(nil).Once()

	payment, err := suite.service.RecordManualPayment(suite.ctx, req, "user-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(payment)

	suite.Equal("RK-FEE-2026-00042", payment.ReceiptNumber)
	suite.Equal("April 2026", payment.MonthLabel)
	suite.True(payment.PaidAmount.Equal(decimal.NewFromInt(3000)))
	// 12000 total, 3000 paid -> the receipt records exactly 9000 remaining.
	suite.True(payment.RemainingAmount.Equal(decimal.NewFromInt(9000)))
	suite.Equal(domain.PaymentModeCash, payment.PaymentMode)
	suite.Equal(domain.NotificationPending, payment.NotificationStatus)
	suite.Equal("user-1", payment.CreatedBy)

	suite.mockFeeRepo.AssertExpectations(suite.T())
	suite.mockSequence.AssertExpectations(suite.T())
	suite.mockEnqueuer.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordManualPayment_RejectsPaidAboveTotal() {
	student := suite.sampleStudent()
	req := dto.RecordFeePaymentRequest{
		StudentID:   "student-1",
		MonthLabel:  "May 2026",
		PaidAmount:  decimal.NewFromInt(20000),
		PaymentMode: "cheque",
	}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()

	_, err := suite.service.RecordManualPayment(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSequence.AssertNotCalled(suite.T(), "NextReceiptNumberInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockFeeRepo.AssertNotCalled(suite.T(), "SavePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordManualPayment_AllowsPaidEqualToTotal() {
	student := suite.sampleStudent()
	req := dto.RecordFeePaymentRequest{
		StudentID:   "student-1",
		MonthLabel:  "May 2026",
		PaidAmount:  decimal.NewFromInt(12000),
		PaymentMode: "cheque",
	}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockFeeRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockSequence.On("NextReceiptNumberInTx", suite.ctx, mock.Anything, mock.AnythingOfType("int")).
		Return("RK-FEE-2026-00043", nil).Once()
	suite.mockFeeRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Return(nil).Once()
	suite.mockFeeRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockFeeRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockEnqueuer.On("EnqueueNotification", suite.ctx, mock.AnythingOfType("domain.Notification")).
		Return(nil).Once()

	payment, err := suite.service.RecordManualPayment(suite.ctx, req, "user-1")
	suite.Require().NoError(err)
	suite.True(payment.RemainingAmount.IsZero())
}

func (suite *PaymentServiceTestSuite) TestRecordManualPayment_RejectsNonPositiveAmount() {
	req := dto.RecordFeePaymentRequest{
		StudentID:   "student-1",
		MonthLabel:  "April 2026",
		PaidAmount:  decimal.Zero,
		PaymentMode: "cash",
	}

	_, err := suite.service.RecordManualPayment(suite.ctx, req, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStudentRepo.AssertNotCalled(suite.T(), "FindStudentByID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentOrder_Success() {
	student := suite.sampleStudent()
	req := dto.CreatePaymentOrderRequest{
		StudentID: "student-1",
		Amount:    decimal.NewFromInt(2500),
	}

	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockGateway.On("CreateOrder", suite.ctx, "2500", "INR", mock.AnythingOfType("string")).
		Return("order_N9z7xK", nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.PaymentTransaction")).
		Return(nil).Once()

	txn, err := suite.service.CreatePaymentOrder(suite.ctx, req, "user-1")
	suite.Require().NoError(err)
	suite.Equal("order_N9z7xK", txn.ExternalOrderID)
	suite.Equal(domain.TransactionCreated, txn.Status)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(2500)))

	suite.mockGateway.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestProcessWebhookEvent_CapturedInsertsLedgerRow() {
	student := suite.sampleStudent()
	txn := &domain.PaymentTransaction{
		TransactionID:   "txn-1",
		ExternalOrderID: "order_N9z7xK",
		StudentID:       "student-1",
		Amount:          decimal.NewFromInt(2500),
		Status:          domain.TransactionCreated,
	}
	event := dto.GatewayWebhookEvent{Event: "payment.captured"}
	event.Payload.Payment.Entity.ID = "pay_Lm3q"
	event.Payload.Payment.Entity.OrderID = "order_N9z7xK"

	suite.mockTxnRepo.On("FindTransactionByOrderID", suite.ctx, "order_N9z7xK").Return(txn, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockTxnRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("MarkCapturedInTx", suite.ctx, mock.Anything, "txn-1", "pay_Lm3q", "sig-abc", "system", mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	suite.mockSequence.On("NextReceiptNumberInTx", suite.ctx, mock.Anything, mock.AnythingOfType("int")).
		Return("RK-FEE-2026-00050", nil).Once()
	suite.mockFeeRepo.On("SumPaidByStudentInTx", suite.ctx, mock.Anything, "student-1").
		Return(decimal.NewFromInt(0), nil).Once()
	suite.mockFeeRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(p domain.FeePayment) bool {
		return p.ReceiptNumber == "RK-FEE-2026-00050" &&
			p.PaymentMode == domain.PaymentModeGateway &&
			p.TransactionID != nil && *p.TransactionID == "txn-1" &&
			p.RemainingAmount.Equal(decimal.NewFromInt(9500))
	})).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockEnqueuer.On("EnqueueNotification", suite.ctx, mock.AnythingOfType("domain.Notification")).
		Return(nil).Once()

	alreadyProcessed, err := suite.service.ProcessWebhookEvent(suite.ctx, event, "sig-abc")
	suite.Require().NoError(err)
	suite.False(alreadyProcessed)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockFeeRepo.AssertExpectations(suite.T())
	suite.mockEnqueuer.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestProcessWebhookEvent_DuplicateCaptureIsNoOp() {
	student := suite.sampleStudent()
	txn := &domain.PaymentTransaction{
		TransactionID:   "txn-1",
		ExternalOrderID: "order_N9z7xK",
		StudentID:       "student-1",
		Amount:          decimal.NewFromInt(2500),
		Status:          domain.TransactionCaptured,
	}
	event := dto.GatewayWebhookEvent{Event: "payment.captured"}
	event.Payload.Payment.Entity.ID = "pay_Lm3q"
	event.Payload.Payment.Entity.OrderID = "order_N9z7xK"

	suite.mockTxnRepo.On("FindTransactionByOrderID", suite.ctx, "order_N9z7xK").Return(txn, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockTxnRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("MarkCapturedInTx", suite.ctx, mock.Anything, "txn-1", "pay_Lm3q", "sig-abc", "system", mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()
	suite.mockTxnRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)

	alreadyProcessed, err := suite.service.ProcessWebhookEvent(suite.ctx, event, "sig-abc")
	suite.Require().NoError(err)
	suite.True(alreadyProcessed)

	suite.mockFeeRepo.AssertNotCalled(suite.T(), "SavePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEnqueuer.AssertNotCalled(suite.T(), "EnqueueNotification", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestProcessWebhookEvent_UnknownOrder() {
	event := dto.GatewayWebhookEvent{Event: "payment.captured"}
	event.Payload.Payment.Entity.OrderID = "order_unknown"

	suite.mockTxnRepo.On("FindTransactionByOrderID", suite.ctx, "order_unknown").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ProcessWebhookEvent(suite.ctx, event, "sig-abc")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestProcessWebhookEvent_FailedOnTerminalTransaction() {
	txn := &domain.PaymentTransaction{
		TransactionID:   "txn-1",
		ExternalOrderID: "order_N9z7xK",
		StudentID:       "student-1",
		Amount:          decimal.NewFromInt(2500),
		Status:          domain.TransactionFailed,
	}
	event := dto.GatewayWebhookEvent{Event: "payment.failed"}
	event.Payload.Payment.Entity.OrderID = "order_N9z7xK"

	suite.mockTxnRepo.On("FindTransactionByOrderID", suite.ctx, "order_N9z7xK").Return(txn, nil).Once()

	alreadyProcessed, err := suite.service.ProcessWebhookEvent(suite.ctx, event, "sig-abc")
	suite.Require().NoError(err)
	suite.True(alreadyProcessed)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkFailed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestProcessWebhookEvent_FailedMarksTransaction() {
	txn := &domain.PaymentTransaction{
		TransactionID:   "txn-1",
		ExternalOrderID: "order_N9z7xK",
		StudentID:       "student-1",
		Amount:          decimal.NewFromInt(2500),
		Status:          domain.TransactionCreated,
	}
	event := dto.GatewayWebhookEvent{Event: "payment.failed"}
	event.Payload.Payment.Entity.OrderID = "order_N9z7xK"

	suite.mockTxnRepo.On("FindTransactionByOrderID", suite.ctx, "order_N9z7xK").Return(txn, nil).Once()
	suite.mockTxnRepo.On("MarkFailed", suite.ctx, "txn-1", "system", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	alreadyProcessed, err := suite.service.ProcessWebhookEvent(suite.ctx, event, "sig-abc")
	suite.Require().NoError(err)
	suite.False(alreadyProcessed)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReconcileUnledgered_CreatesMissingLedgerRows() {
	student := suite.sampleStudent()
	orphans := []domain.PaymentTransaction{
		{
			TransactionID:   "txn-9",
			ExternalOrderID: "order_old",
			StudentID:       "student-1",
			Amount:          decimal.NewFromInt(1000),
			Status:          domain.TransactionCaptured,
		},
	}

	suite.mockTxnRepo.On("FindCapturedWithoutPayment", suite.ctx, mock.AnythingOfType("time.Time")).
		Return(orphans, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockTxnRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockSequence.On("NextReceiptNumberInTx", suite.ctx, mock.Anything, mock.AnythingOfType("int")).
		Return("RK-FEE-2026-00060", nil).Once()
	suite.mockFeeRepo.On("SumPaidByStudentInTx", suite.ctx, mock.Anything, "student-1").
		Return(decimal.NewFromInt(11000), nil).Once()
	suite.mockFeeRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Return(nil).Once()
	suite.mockTxnRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockEnqueuer.On("EnqueueNotification", suite.ctx, mock.AnythingOfType("domain.Notification")).
		Return(nil).Once()

	fixed, err := suite.service.ReconcileUnledgered(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(1, fixed)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReconcileUnledgered_SkipsTransactionLedgeredByAnotherWriter() {
	student := suite.sampleStudent()
	orphans := []domain.PaymentTransaction{
		{
			TransactionID:   "txn-9",
			ExternalOrderID: "order_old",
			StudentID:       "student-1",
			Amount:          decimal.NewFromInt(1000),
			Status:          domain.TransactionCaptured,
		},
	}

	suite.mockTxnRepo.On("FindCapturedWithoutPayment", suite.ctx, mock.AnythingOfType("time.Time")).
		Return(orphans, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").Return(student, nil).Once()
	suite.mockTxnRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockSequence.On("NextReceiptNumberInTx", suite.ctx, mock.Anything, mock.AnythingOfType("int")).
		Return("RK-FEE-2026-00061", nil).Once()
	suite.mockFeeRepo.On("SumPaidByStudentInTx", suite.ctx, mock.Anything, "student-1").
		Return(decimal.NewFromInt(11000), nil).Once()
	// The unique index on transaction_id fires when a concurrent sweep or a
	// late webhook commit inserted the ledger row first.
	suite.mockFeeRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockTxnRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Once()

	fixed, err := suite.service.ReconcileUnledgered(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(0, fixed)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockEnqueuer.AssertNotCalled(suite.T(), "EnqueueNotification", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyReceipt_NormalizesLookupKey() {
	receiptTime := time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)
	payment := &domain.FeePayment{
		PaymentID:     "pay-1",
		ReceiptNumber: "RK-FEE-2026-00042",
		StudentID:     "student-1",
		MonthLabel:    "April 2026",
		TotalFees:     decimal.NewFromInt(12000),
		PaidAmount:    decimal.NewFromInt(3000),
		PaymentDate:   receiptTime,
	}

	suite.mockFeeRepo.On("FindPaymentByReceiptNumber", suite.ctx, "RK-FEE-2026-00042").
		Return(payment, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", suite.ctx, "student-1").
		Return(suite.sampleStudent(), nil).Once()

	found, err := suite.service.VerifyReceipt(suite.ctx, "  rk-fee-2026-00042 ")
	suite.Require().NoError(err)
	suite.Equal("RK-FEE-2026-00042", found.ReceiptNumber)
	suite.Equal("Asha Kulkarni", found.StudentName)
	suite.Equal("RK2026PHRM001", found.StudentNumber)
	suite.mockFeeRepo.AssertExpectations(suite.T())
	suite.mockStudentRepo.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
