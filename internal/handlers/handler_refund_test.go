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
	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/handlers"
	"github.com/ScaffRent/rental_logistics_app/internal/utils"
	"github.com/ScaffRent/rental_logistics_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RefundService ---
type MockRefundService struct {
	mock.Mock
}

func (m *MockRefundService) CreateRefund(ctx context.Context, req dto.CreateRefundRequest, createdBy string) (*domain.Refund, error) {
	args := m.Called(ctx, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundService) ListRefunds(ctx context.Context, filter portsrepo.RefundFilter) ([]domain.Refund, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refund), args.Error(1)
}

func (m *MockRefundService) ApproveRefund(ctx context.Context, refundID, approvedBy string) (*domain.Refund, error) {
	args := m.Called(ctx, refundID, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundService) RejectRefund(ctx context.Context, refundID, rejectedBy, rejectionReason string) (*domain.Refund, error) {
	args := m.Called(ctx, refundID, rejectedBy, rejectionReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.RefundSvcFacade = (*MockRefundService)(nil)

// --- Test Suite ---
type RefundHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockRefundService *MockRefundService
	jwtSecret         string
}

func (suite *RefundHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockRefundService = new(MockRefundService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Refund: suite.mockRefundService,
	})
}

// generateTestToken creates a signed session token carrying the given
// identity and roles.
func (suite *RefundHandlerTestSuite) generateTestToken(email, name string, roles []string) string {
	token, err := utils.GenerateJWT(uuid.NewString(), email, name, roles, suite.jwtSecret, time.Hour, "test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (suite *RefundHandlerTestSuite) decodeEnvelope(w *httptest.ResponseRecorder) envelope {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// --- Test Cases ---

func (suite *RefundHandlerTestSuite) TestListRefunds_Success() {
	now := time.Now()
	refunds := []domain.Refund{
		{
			RefundID:     uuid.NewString(),
			RefundNumber: "REF-2026-001",
			InvoiceType:  domain.InvoiceTypeDeposit,
			Amount:       decimal.RequireFromString("150.75"),
			Status:       domain.RefundStatusDraft,
			AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: "finance@example.com", LastUpdatedAt: now, LastUpdatedBy: "finance@example.com"},
		},
	}

	suite.mockRefundService.On("ListRefunds", mock.Anything, portsrepo.RefundFilter{}).Return(refunds, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/refunds", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("finance@example.com", "Fin", []string{domain.RoleFinance}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decodeEnvelope(w)
	suite.True(env.Success)

	var data []dto.RefundResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &data))
	suite.Require().Len(data, 1)
	suite.Equal("REF-2026-001", data[0].RefundNumber)
	// Amount is a plain JSON number, not a quoted string
	suite.Contains(w.Body.String(), `"amount":150.75`)

	suite.mockRefundService.AssertExpectations(suite.T())
}

func (suite *RefundHandlerTestSuite) TestListRefunds_StatusFilterPassed() {
	status := "Pending Approval"
	suite.mockRefundService.On("ListRefunds", mock.Anything, portsrepo.RefundFilter{Status: &status}).
		Return([]domain.Refund{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/refunds?status=Pending+Approval", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("ops@example.com", "", []string{domain.RoleOperations}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRefundService.AssertExpectations(suite.T())
}

func (suite *RefundHandlerTestSuite) TestListRefunds_NoToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/refunds", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	env := suite.decodeEnvelope(w)
	suite.False(env.Success)

	suite.mockRefundService.AssertNotCalled(suite.T(), "ListRefunds", mock.Anything, mock.Anything)
}

func (suite *RefundHandlerTestSuite) TestListRefunds_NoBackofficeRole() {
	req, _ := http.NewRequest(http.MethodGet, "/api/refunds", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("guest@example.com", "", []string{"visitor"}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	env := suite.decodeEnvelope(w)
	suite.False(env.Success)
}

func (suite *RefundHandlerTestSuite) TestCreateRefund_Success() {
	body := map[string]any{
		"invoiceType":     "deposit",
		"sourceId":        "INV-2024-001",
		"originalInvoice": "INV-2024-001",
		"customerName":    "Acme Scaffolding Sdn Bhd",
		"customerId":      "CUST-001",
		"amount":          500,
		"status":          "Draft",
	}
	payload, _ := json.Marshal(body)

	created := &domain.Refund{
		RefundID:     uuid.NewString(),
		RefundNumber: "REF-2026-003",
		Amount:       decimal.NewFromInt(500),
		Status:       domain.RefundStatusDraft,
	}

	// createdBy resolves to the session email
	suite.mockRefundService.On("CreateRefund", mock.Anything, mock.MatchedBy(func(r dto.CreateRefundRequest) bool {
		return r.SourceID == "INV-2024-001" && r.Amount.Equal(decimal.NewFromInt(500))
	}), "sales@example.com").Return(created, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/refunds", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("sales@example.com", "Sally", []string{domain.RoleSales}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decodeEnvelope(w)
	suite.True(env.Success)
	suite.Contains(w.Body.String(), `"refundNumber":"REF-2026-003"`)

	suite.mockRefundService.AssertExpectations(suite.T())
}

func (suite *RefundHandlerTestSuite) TestCreateRefund_CreatedByFallsBackToName() {
	payload, _ := json.Marshal(map[string]any{"invoiceType": "deposit", "sourceId": "INV-1", "originalInvoice": "INV-1", "customerName": "C", "customerId": "1", "amount": 10})

	suite.mockRefundService.On("CreateRefund", mock.Anything, mock.AnythingOfType("dto.CreateRefundRequest"), "Sally Field").
		Return(&domain.Refund{RefundID: uuid.NewString()}, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/refunds", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("", "Sally Field", []string{domain.RoleSales}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRefundService.AssertExpectations(suite.T())
}

func (suite *RefundHandlerTestSuite) TestCreateRefund_ValidationError() {
	payload, _ := json.Marshal(map[string]any{"invoiceType": "deposit", "sourceId": "INV-1", "originalInvoice": "INV-1", "customerName": "C", "customerId": "1", "amount": 2000})

	suite.mockRefundService.On("CreateRefund", mock.Anything, mock.AnythingOfType("dto.CreateRefundRequest"), mock.AnythingOfType("string")).
		Return(nil, apperrors.NewValidationError("Refund amount cannot exceed total credited amount (RM1000.00)")).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/refunds", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("sales@example.com", "", []string{domain.RoleSales}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decodeEnvelope(w)
	suite.False(env.Success)
	suite.Contains(env.Message, "cannot exceed total credited amount (RM1000.00)")
}

func (suite *RefundHandlerTestSuite) TestCreateRefund_MalformedBody() {
	req, _ := http.NewRequest(http.MethodPost, "/api/refunds", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("sales@example.com", "", []string{domain.RoleSales}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRefundService.AssertNotCalled(suite.T(), "CreateRefund", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefundHandlerTestSuite) TestApproveRefund_RequiresApproverRole() {
	refundID := uuid.NewString()
	req, _ := http.NewRequest(http.MethodPost, "/api/refunds/"+refundID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("sales@example.com", "", []string{domain.RoleSales}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockRefundService.AssertNotCalled(suite.T(), "ApproveRefund", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefundHandlerTestSuite) TestApproveRefund_Success() {
	refundID := uuid.NewString()
	approved := &domain.Refund{RefundID: refundID, Status: domain.RefundStatusApproved}

	suite.mockRefundService.On("ApproveRefund", mock.Anything, refundID, "finance@example.com").Return(approved, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/refunds/"+refundID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("finance@example.com", "", []string{domain.RoleFinance}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"Approved"`)

	suite.mockRefundService.AssertExpectations(suite.T())
}

func (suite *RefundHandlerTestSuite) TestApproveRefund_NotFound() {
	refundID := uuid.NewString()

	suite.mockRefundService.On("ApproveRefund", mock.Anything, refundID, "admin@example.com").
		Return(nil, apperrors.NewNotFoundError("Refund not found")).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/refunds/"+refundID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("admin@example.com", "", []string{domain.RoleAdmin}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	env := suite.decodeEnvelope(w)
	suite.False(env.Success)
}

func (suite *RefundHandlerTestSuite) TestRejectRefund_MissingReason() {
	refundID := uuid.NewString()
	payload, _ := json.Marshal(map[string]any{})

	req, _ := http.NewRequest(http.MethodPost, "/api/refunds/"+refundID+"/reject", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("finance@example.com", "", []string{domain.RoleFinance}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRefundService.AssertNotCalled(suite.T(), "RejectRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefundHandlerTestSuite) TestRejectRefund_Conflict() {
	refundID := uuid.NewString()
	payload, _ := json.Marshal(map[string]any{"rejectionReason": "Amount disputed"})

	suite.mockRefundService.On("RejectRefund", mock.Anything, refundID, "finance@example.com", "Amount disputed").
		Return(nil, apperrors.NewConflictError("Refund is not pending approval")).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/refunds/"+refundID+"/reject", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("finance@example.com", "", []string{domain.RoleFinance}))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	env := suite.decodeEnvelope(w)
	suite.False(env.Success)
	suite.Contains(env.Message, "not pending approval")
}

// --- Run Test Suite ---
func TestRefundHandler(t *testing.T) {
	suite.Run(t, new(RefundHandlerTestSuite))
}
