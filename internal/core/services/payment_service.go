package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/identifiers"
)

// systemUserID stamps mutations driven by webhooks and background workers,
// which have no authenticated caller.
const systemUserID = "system"

// reconcileSettleDelay keeps the sweep from racing a webhook that is still
// in flight for a freshly captured transaction.
const reconcileSettleDelay = 15 * time.Minute

const (
	eventPaymentCaptured = "payment.captured"
	eventPaymentFailed   = "payment.failed"
)

type paymentService struct {
	BaseService
	txnRepo     portsrepo.PaymentTransactionRepositoryWithTx
	feeRepo     portsrepo.FeePaymentRepositoryWithTx
	studentRepo portsrepo.StudentRepositoryFacade
	sequence    portssvc.SequenceSvcFacade
	gateway     portssvc.PaymentGateway
	enqueuer    portssvc.NotificationEnqueuerSvc
}

// NewPaymentService creates the fee ledger + gateway reconciliation service.
func NewPaymentService(
	txnRepo portsrepo.PaymentTransactionRepositoryWithTx,
	feeRepo portsrepo.FeePaymentRepositoryWithTx,
	studentRepo portsrepo.StudentRepositoryFacade,
	sequence portssvc.SequenceSvcFacade,
	gateway portssvc.PaymentGateway,
	enqueuer portssvc.NotificationEnqueuerSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		txnRepo:     txnRepo,
		feeRepo:     feeRepo,
		studentRepo: studentRepo,
		sequence:    sequence,
		gateway:     gateway,
		enqueuer:    enqueuer,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordManualPayment records a counter payment. The entered amount must
// not exceed the student's total fees, and the receipt carries exactly
// total minus paid. Receipt mint and ledger insert share one transaction.
func (s *paymentService) RecordManualPayment(ctx context.Context, req dto.RecordFeePaymentRequest, userID string) (*domain.FeePayment, error) {
	if !req.PaidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: paid amount must be positive", apperrors.ErrValidation)
	}

	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if req.PaidAmount.GreaterThan(student.TotalFees) {
		return nil, fmt.Errorf("%w: paid amount %s exceeds total fees %s",
			apperrors.ErrValidation, req.PaidAmount.String(), student.TotalFees.String())
	}

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}

	tx, err := s.feeRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.feeRepo.Rollback(ctx, tx) }()

	receiptNumber, err := s.sequence.NextReceiptNumberInTx(ctx, tx, paymentDate.Year())
	if err != nil {
		s.LogError(ctx, err, "failed to mint receipt number", slog.String("student_id", student.StudentID))
		return nil, err
	}

	payment := domain.FeePayment{
		PaymentID:          uuid.NewString(),
		ReceiptNumber:      receiptNumber,
		StudentID:          student.StudentID,
		MonthLabel:         req.MonthLabel,
		TotalFees:          student.TotalFees,
		PaidAmount:         req.PaidAmount,
		RemainingAmount:    student.TotalFees.Sub(req.PaidAmount),
		PaymentMode:        domain.PaymentMode(req.PaymentMode),
		PaymentDate:        paymentDate,
		NotificationStatus: domain.NotificationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.feeRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		s.LogError(ctx, err, "failed to save fee payment", slog.String("receipt", receiptNumber))
		return nil, err
	}
	if err := s.feeRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "fee payment recorded",
		slog.String("receipt", receiptNumber),
		slog.String("student_id", student.StudentID),
		slog.String("amount", req.PaidAmount.String()))

	s.enqueueReceiptNotification(ctx, payment, student)
	return &payment, nil
}

// CreatePaymentOrder opens a gateway order and records the pending
// transaction. The ledger stays untouched until capture is verified.
func (s *paymentService) CreatePaymentOrder(ctx context.Context, req dto.CreatePaymentOrderRequest, userID string) (*domain.PaymentTransaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: order amount must be positive", apperrors.ErrValidation)
	}

	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	transactionID := uuid.NewString()
	orderID, err := s.gateway.CreateOrder(ctx, req.Amount.String(), "INR", transactionID)
	if err != nil {
		s.LogError(ctx, err, "gateway order creation failed", slog.String("student_id", student.StudentID))
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.PaymentTransaction{
		TransactionID:   transactionID,
		ExternalOrderID: orderID,
		StudentID:       student.StudentID,
		Amount:          req.Amount,
		Status:          domain.TransactionCreated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "payment order created",
		slog.String("transaction_id", transactionID),
		slog.String("order_id", orderID))
	return &txn, nil
}

// ProcessWebhookEvent applies a signature-verified gateway event. Capture is
// idempotent: the conditional status flip and the ledger insert commit
// together, and a duplicate delivery flips nothing and inserts nothing.
func (s *paymentService) ProcessWebhookEvent(ctx context.Context, event dto.GatewayWebhookEvent, signature string) (bool, error) {
	entity := event.Payload.Payment.Entity
	if entity.OrderID == "" {
		return false, fmt.Errorf("%w: webhook event missing order id", apperrors.ErrValidation)
	}

	txn, err := s.txnRepo.FindTransactionByOrderID(ctx, entity.OrderID)
	if err != nil {
		return false, err
	}

	switch event.Event {
	case eventPaymentCaptured:
		return s.capture(ctx, txn, entity.ID, signature)
	case eventPaymentFailed:
		if txn.IsTerminal() {
			return true, nil
		}
		if err := s.txnRepo.MarkFailed(ctx, txn.TransactionID, systemUserID, time.Now().UTC()); err != nil {
			return false, err
		}
		s.LogInfo(ctx, "transaction marked failed", slog.String("transaction_id", txn.TransactionID))
		return false, nil
	default:
		s.LogDebug(ctx, "ignoring webhook event", slog.String("event", event.Event))
		return false, nil
	}
}

func (s *paymentService) capture(ctx context.Context, txn *domain.PaymentTransaction, externalPaymentID string, signature string) (bool, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, txn.StudentID)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	flipped, err := s.txnRepo.MarkCapturedInTx(ctx, tx, txn.TransactionID, externalPaymentID, signature, systemUserID, now)
	if err != nil {
		return false, err
	}
	if !flipped {
		// Lost the race or a duplicate delivery. Either way the first
		// processing owns the ledger entry.
		s.LogInfo(ctx, "duplicate capture ignored", slog.String("transaction_id", txn.TransactionID))
		return true, nil
	}

	payment, err := s.insertLedgerRowInTx(ctx, tx, txn, student, now)
	if err != nil {
		return false, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return false, err
	}

	s.LogInfo(ctx, "payment captured and ledgered",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("receipt", payment.ReceiptNumber))

	s.enqueueReceiptNotification(ctx, *payment, student)
	return false, nil
}

// insertLedgerRowInTx mints the receipt and writes the fee payment for a
// captured transaction inside the caller's transaction.
func (s *paymentService) insertLedgerRowInTx(ctx context.Context, tx pgx.Tx, txn *domain.PaymentTransaction, student *domain.Student, now time.Time) (*domain.FeePayment, error) {
	receiptNumber, err := s.sequence.NextReceiptNumberInTx(ctx, tx, now.Year())
	if err != nil {
		return nil, err
	}
	alreadyPaid, err := s.feeRepo.SumPaidByStudentInTx(ctx, tx, student.StudentID)
	if err != nil {
		return nil, err
	}

	transactionID := txn.TransactionID
	payment := domain.FeePayment{
		PaymentID:          uuid.NewString(),
		ReceiptNumber:      receiptNumber,
		StudentID:          student.StudentID,
		MonthLabel:         now.Format("January 2006"),
		TotalFees:          student.TotalFees,
		PaidAmount:         txn.Amount,
		RemainingAmount:    domain.RemainingAfter(student.TotalFees, alreadyPaid.Add(txn.Amount)),
		PaymentMode:        domain.PaymentModeGateway,
		PaymentDate:        now,
		TransactionID:      &transactionID,
		NotificationStatus: domain.NotificationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: systemUserID,
		},
	}
	if err := s.feeRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ReconcileUnledgered sweeps captured transactions that somehow have no
// ledger row and creates the missing fee payments. Normal captures write
// both rows in one transaction, so hits here mean an older inconsistency.
func (s *paymentService) ReconcileUnledgered(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-reconcileSettleDelay)
	orphans, err := s.txnRepo.FindCapturedWithoutPayment(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for i := range orphans {
		txn := &orphans[i]
		student, err := s.studentRepo.FindStudentByID(ctx, txn.StudentID)
		if err != nil {
			s.LogError(ctx, err, "reconcile: student lookup failed", slog.String("transaction_id", txn.TransactionID))
			continue
		}

		now := time.Now().UTC()
		tx, err := s.txnRepo.Begin(ctx)
		if err != nil {
			return fixed, err
		}
		payment, err := s.insertLedgerRowInTx(ctx, tx, txn, student, now)
		if err != nil {
			_ = s.txnRepo.Rollback(ctx, tx)
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Another sweep or a late webhook ledgered it first; the
				// unique index on transaction_id keeps the row single.
				s.LogInfo(ctx, "reconcile: transaction already ledgered", slog.String("transaction_id", txn.TransactionID))
				continue
			}
			s.LogError(ctx, err, "reconcile: ledger insert failed", slog.String("transaction_id", txn.TransactionID))
			continue
		}
		if err := s.txnRepo.Commit(ctx, tx); err != nil {
			s.LogError(ctx, err, "reconcile: commit failed", slog.String("transaction_id", txn.TransactionID))
			continue
		}

		s.LogWarn(ctx, "reconciled unledgered capture",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("receipt", payment.ReceiptNumber))
		s.enqueueReceiptNotification(ctx, *payment, student)
		fixed++
	}
	return fixed, nil
}

// GetPaymentByID retrieves a fee payment by its identifier.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error) {
	payment, err := s.feeRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find fee payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

// ListPayments retrieves a paginated ledger, optionally scoped to one student.
func (s *paymentService) ListPayments(ctx context.Context, studentID string, limit int, offset int) ([]domain.FeePayment, error) {
	var payments []domain.FeePayment
	var err error
	if studentID != "" {
		payments, err = s.feeRepo.ListPaymentsByStudent(ctx, studentID, limit, offset)
	} else {
		payments, err = s.feeRepo.ListPayments(ctx, limit, offset)
	}
	if err != nil {
		s.LogError(ctx, err, "failed to list fee payments")
		return nil, err
	}
	if payments == nil {
		payments = []domain.FeePayment{}
	}
	return payments, nil
}

// VerifyReceipt resolves a receipt number to its public view.
func (s *paymentService) VerifyReceipt(ctx context.Context, receiptNumber string) (*dto.ReceiptVerificationResponse, error) {
	normalized := identifiers.NormalizeLookupKey(receiptNumber)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty receipt number", apperrors.ErrValidation)
	}

	payment, err := s.feeRepo.FindPaymentByReceiptNumber(ctx, normalized)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.FindStudentByID(ctx, payment.StudentID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToReceiptVerificationResponse(payment, student)
	return &resp, nil
}

// enqueueReceiptNotification stores the receipt message in the outbox.
// Failures are logged and swallowed: delivery never fails the payment.
func (s *paymentService) enqueueReceiptNotification(ctx context.Context, payment domain.FeePayment, student *domain.Student) {
	if s.enqueuer == nil {
		return
	}
	message := fmt.Sprintf(
		"Dear %s, we have received a fee payment of Rs %s for %s (%s). Receipt: %s. Remaining balance: Rs %s.",
		student.Name,
		payment.PaidAmount.StringFixed(2),
		payment.MonthLabel,
		student.StudentNumber,
		payment.ReceiptNumber,
		payment.RemainingAmount.StringFixed(2),
	)
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		Kind:           domain.NotificationKindFeeReceipt,
		RecordID:       payment.PaymentID,
		Phone:          student.Phone,
		Message:        message,
		Status:         domain.NotificationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     payment.CreatedAt,
			CreatedBy:     payment.CreatedBy,
			LastUpdatedAt: payment.CreatedAt,
			LastUpdatedBy: payment.CreatedBy,
		},
	}
	if err := s.enqueuer.EnqueueNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "failed to enqueue receipt notification", slog.String("payment_id", payment.PaymentID))
	}
}
