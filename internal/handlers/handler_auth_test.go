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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/dto"
	"github.com/vendmach/vending_machine_api/internal/handlers"
	"github.com/vendmach/vending_machine_api/pkg/config"
)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)

	cfg := &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		User:     suite.mockUserService,
		Token:    suite.mockTokenService,
		Product:  new(MockProductService),
		Deposit:  new(MockDepositService),
		Purchase: new(MockPurchaseService),
	}

	rate, err := limiter.NewRateFromFormatted("100-M")
	suite.Require().NoError(err)
	handlers.RegisterRoutes(suite.router, cfg, services, limiter.New(memory.NewStore(), rate))
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	body := dto.RegisterUserRequest{
		Username: "buyer1",
		Email:    "buyer1@example.com",
		FullName: "Buyer One",
		Password: "password123",
		Roles:    []string{"buyer"},
	}
	created := &domain.User{
		UserID:   uuid.NewString(),
		Username: body.Username,
		Email:    body.Email,
		FullName: body.FullName,
		Roles:    []domain.Role{domain.RoleBuyer},
	}
	suite.mockUserService.On("RegisterUser", mock.Anything, body).Return(created, nil).Once()

	w := suite.postJSON("/api/v1/auth/register", body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.UserID, resp.UserID)
	suite.Equal([]string{"buyer"}, resp.Roles)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_UsernameTaken() {
	body := dto.RegisterUserRequest{
		Username: "taken",
		Email:    "taken@example.com",
		FullName: "Taken",
		Password: "password123",
		Roles:    []string{"seller"},
	}
	suite.mockUserService.On("RegisterUser", mock.Anything, body).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/api/v1/auth/register", body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_MissingFields() {
	w := suite.postJSON("/api/v1/auth/register", gin.H{"username": "x"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "RegisterUser", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	body := dto.LoginRequest{Username: "buyer1", Password: "password123"}
	user := &domain.User{UserID: uuid.NewString(), Username: body.Username}
	expiresAt := time.Now().Add(time.Hour).UTC()

	suite.mockUserService.On("AuthenticateUser", mock.Anything, body.Username, body.Password).
		Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).
		Return("signed-token", expiresAt, nil).Once()

	w := suite.postJSON("/api/v1/auth/login", body)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed-token", resp.Token)
	suite.WithinDuration(expiresAt, resp.ExpiresAt, time.Second)
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	body := dto.LoginRequest{Username: "buyer1", Password: "wrong"}

	suite.mockUserService.On("AuthenticateUser", mock.Anything, body.Username, body.Password).
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/api/v1/auth/login", body)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
