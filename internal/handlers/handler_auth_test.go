package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/handlers"
	"github.com/ScaffRent/rental_logistics_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)

	cfg := &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		IsProduction: true,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:  suite.mockUserService,
		Token: suite.mockTokenService,
	})
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{
		UserID:   uuid.NewString(),
		Username: "jdoe",
		Name:     "Jane Doe",
		Email:    "jdoe@example.com",
		Roles:    []string{domain.RoleSales},
	}
	expiresAt := time.Now().Add(8 * time.Hour)

	suite.mockUserService.On("AuthenticateUser", mock.Anything, "jdoe", "secret-password-1").Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).Return("signed.jwt.token", expiresAt, nil).Once()

	w := suite.postJSON("/api/auth/login", map[string]string{"username": "jdoe", "password": "secret-password-1"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"success":true`)
	suite.Contains(w.Body.String(), `"token":"signed.jwt.token"`)
	suite.Contains(w.Body.String(), `"username":"jdoe"`)

	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "jdoe", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("Invalid username or password")).Once()

	w := suite.postJSON("/api/auth/login", map[string]string{"username": "jdoe", "password": "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid username or password")

	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_MissingFields() {
	w := suite.postJSON("/api/auth/login", map[string]string{"username": "jdoe"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "AuthenticateUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	created := &domain.User{
		UserID:   uuid.NewString(),
		Username: "newuser",
		Name:     "New User",
		Email:    "new@example.com",
		Roles:    []string{domain.RoleSales},
	}

	suite.mockUserService.On("CreateUser", mock.Anything, mock.MatchedBy(func(r dto.CreateUserRequest) bool {
		return r.Username == "newuser" && r.Email == "new@example.com"
	})).Return(created, nil).Once()

	w := suite.postJSON("/api/auth/register", map[string]string{
		"username": "newuser",
		"password": "long-enough-password",
		"name":     "New User",
		"email":    "new@example.com",
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"roles":["sales"]`)

	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_UsernameTaken() {
	suite.mockUserService.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.CreateUserRequest")).
		Return(nil, apperrors.NewConflictError("Username is already taken")).Once()

	w := suite.postJSON("/api/auth/register", map[string]string{
		"username": "jdoe",
		"password": "long-enough-password",
		"name":     "Jane Doe",
		"email":    "jdoe@example.com",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "Username is already taken")
}

func (suite *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	w := suite.postJSON("/api/auth/register", map[string]string{
		"username": "jdoe",
		"password": "short",
		"name":     "Jane Doe",
		"email":    "jdoe@example.com",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
