package services_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/services"
)

type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) NextValue(ctx context.Context, namespace string) (int64, error) {
	args := m.Called(ctx, namespace)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceRepo) NextValueInTx(ctx context.Context, tx pgx.Tx, namespace string) (int64, error) {
	args := m.Called(ctx, tx, namespace)
	return args.Get(0).(int64), args.Error(1)
}

type SequenceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSequenceRepo
	service  portssvc.SequenceSvcFacade
	ctx      context.Context
}

func (suite *SequenceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSequenceRepo)
	suite.service = services.NewSequenceService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *SequenceServiceTestSuite) TestNextReceiptNumber() {
	suite.mockRepo.On("NextValue", suite.ctx, "RK-FEE-2026").Return(int64(42), nil).Once()

	number, err := suite.service.NextReceiptNumber(suite.ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal("RK-FEE-2026-00042", number)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SequenceServiceTestSuite) TestNextSlipNumber() {
	suite.mockRepo.On("NextValue", suite.ctx, "RK-SAL-2026").Return(int64(7), nil).Once()

	number, err := suite.service.NextSlipNumber(suite.ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal("RK-SAL-2026-00007", number)
}

func (suite *SequenceServiceTestSuite) TestStudentAndCertificateShareCourseNamespace() {
	suite.mockRepo.On("NextValue", suite.ctx, "RK2026PHRM").Return(int64(12), nil).Once()
	suite.mockRepo.On("NextValue", suite.ctx, "RK2026PHRM").Return(int64(13), nil).Once()

	studentNumber, err := suite.service.NextStudentNumber(suite.ctx, 2026, "PHRM")
	suite.Require().NoError(err)
	suite.Equal("RK2026PHRM012", studentNumber)

	certNumber, err := suite.service.NextCertificateNumber(suite.ctx, 2026, "PHRM")
	suite.Require().NoError(err)
	suite.Equal("RK2026PHRM013", certNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SequenceServiceTestSuite) TestNextTeacherNumber() {
	suite.mockRepo.On("NextValue", suite.ctx, "RK2026TCH").Return(int64(3), nil).Once()

	number, err := suite.service.NextTeacherNumber(suite.ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal("RK2026TCH003", number)
}

func TestSequenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceServiceTestSuite))
}
