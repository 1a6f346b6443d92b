package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/handlers"
)

// MockNotificationService is a mock for the NotificationSvcFacade
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) EnqueueNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationService) SendFeeReminders(ctx context.Context, req dto.SendRemindersRequest, userID string) (*domain.BatchDispatchSummary, error) {
	args := m.Called(ctx, req, userID)
	summary, _ := args.Get(0).(*domain.BatchDispatchSummary)
	return summary, args.Error(1)
}

func (m *MockNotificationService) DispatchPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

type FeeHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockPaymentService      *MockPaymentService
	mockNotificationService *MockNotificationService
}

func (suite *FeeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockPaymentService = new(MockPaymentService)
	suite.mockNotificationService = new(MockNotificationService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterFeeRoutes(v1, suite.mockPaymentService, suite.mockNotificationService)
}

func (suite *FeeHandlerTestSuite) TestReconcile_ReturnsLedgeredCount() {
	suite.mockPaymentService.On("ReconcileUnledgered", mock.Anything).Return(3, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/fees/reconcile", nil)
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusOK, rr.Code)

	var resp dto.ReconcileResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal(3, resp.Fixed)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *FeeHandlerTestSuite) TestReconcile_SweepFailure() {
	suite.mockPaymentService.On("ReconcileUnledgered", mock.Anything).
		Return(0, errors.New("db connection lost")).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/fees/reconcile", nil)
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusInternalServerError, rr.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func TestFeeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FeeHandlerTestSuite))
}
