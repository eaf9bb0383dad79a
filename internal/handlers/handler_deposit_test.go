package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/dto"
	"github.com/vendmach/vending_machine_api/internal/handlers"
	"github.com/vendmach/vending_machine_api/internal/utils"
	"github.com/vendmach/vending_machine_api/pkg/config"
)

// --- Test Suite ---
type DepositHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockDepositService *MockDepositService
	jwtSecret          string
}

func (suite *DepositHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockDepositService = new(MockDepositService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		User:     new(MockUserService),
		Token:    new(MockTokenService),
		Product:  new(MockProductService),
		Deposit:  suite.mockDepositService,
		Purchase: new(MockPurchaseService),
	}

	rate, err := limiter.NewRateFromFormatted("100-M")
	suite.Require().NoError(err)
	handlers.RegisterRoutes(suite.router, cfg, services, limiter.New(memory.NewStore(), rate))
}

func (suite *DepositHandlerTestSuite) generateTestToken(userID string) string {
	token, _, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "vma-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *DepositHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *DepositHandlerTestSuite) TestCreateDeposit_Success() {
	userID := uuid.NewString()
	body := dto.CreateDepositRequest{Coins: []dto.CoinItem{
		{Value: 100, Quantity: 1},
		{Value: 50, Quantity: 2},
	}}

	created := &domain.Deposit{
		DepositID: uuid.NewString(),
		UserID:    userID,
		Amount:    decimal.NewFromFloat(2.00),
		Coins: domain.CoinStack{
			{Value: domain.Denomination(100), Quantity: 1},
			{Value: domain.Denomination(50), Quantity: 2},
		},
	}
	suite.mockDepositService.On("CreateDeposit", mock.Anything, body, userID).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/deposits", suite.generateTestToken(userID), body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.DepositResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.DepositID, resp.DepositID)
	suite.True(resp.Amount.Equal(decimal.NewFromFloat(2.00)))
	suite.Len(resp.Coins, 2)
	suite.mockDepositService.AssertExpectations(suite.T())
}

func (suite *DepositHandlerTestSuite) TestCreateDeposit_InvalidDenomination() {
	userID := uuid.NewString()
	body := dto.CreateDepositRequest{Coins: []dto.CoinItem{{Value: 25, Quantity: 1}}}

	suite.mockDepositService.On("CreateDeposit", mock.Anything, body, userID).
		Return(nil, apperrors.ErrInvalidDenomination).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/deposits", suite.generateTestToken(userID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DepositHandlerTestSuite) TestCreateDeposit_LiveDepositConflict() {
	userID := uuid.NewString()
	body := dto.CreateDepositRequest{Coins: []dto.CoinItem{{Value: 5, Quantity: 1}}}

	suite.mockDepositService.On("CreateDeposit", mock.Anything, body, userID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/deposits", suite.generateTestToken(userID), body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *DepositHandlerTestSuite) TestGetCurrentDeposit_NoneLive() {
	userID := uuid.NewString()

	suite.mockDepositService.On("GetCurrentDeposit", mock.Anything, userID).
		Return(nil, apperrors.ErrNoActiveDeposit).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/deposits", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DepositHandlerTestSuite) TestResetDeposit_Success() {
	userID := uuid.NewString()
	existing := &domain.Deposit{
		DepositID: uuid.NewString(),
		UserID:    userID,
		Amount:    decimal.NewFromFloat(0.75),
		Coins: domain.CoinStack{
			{Value: domain.Denomination(50), Quantity: 1},
			{Value: domain.Denomination(20), Quantity: 1},
			{Value: domain.Denomination(5), Quantity: 1},
		},
	}
	suite.mockDepositService.On("ResetDeposit", mock.Anything, userID).Return(existing, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/deposits/reset", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DepositResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Coins, 3)
	suite.mockDepositService.AssertExpectations(suite.T())
}

func (suite *DepositHandlerTestSuite) TestResetDeposit_NoneLive() {
	userID := uuid.NewString()
	suite.mockDepositService.On("ResetDeposit", mock.Anything, userID).
		Return(nil, apperrors.ErrNoActiveDeposit).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/deposits/reset", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockDepositService.AssertExpectations(suite.T())
}

func (suite *DepositHandlerTestSuite) TestDeposit_RequiresAuthentication() {
	w := suite.doRequest(http.MethodGet, "/api/v1/deposits", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDepositService.AssertNotCalled(suite.T(), "GetCurrentDeposit", mock.Anything, mock.Anything)
}

func TestDepositHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DepositHandlerTestSuite))
}
