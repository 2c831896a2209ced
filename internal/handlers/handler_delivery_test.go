package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
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

// --- Mock DeliveryRequestService ---
type MockDeliveryRequestService struct {
	mock.Mock
}

func (m *MockDeliveryRequestService) CreateDeliveryRequest(ctx context.Context, req dto.CreateDeliveryRequestRequest, createdBy string) (*domain.DeliveryRequest, error) {
	args := m.Called(ctx, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRequestService) GetDeliveryRequestByID(ctx context.Context, requestID string) (*domain.DeliveryRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRequestService) ListDeliveryRequests(ctx context.Context, limit int, nextToken string) ([]domain.DeliveryRequest, string, error) {
	args := m.Called(ctx, limit, nextToken)
	var requests []domain.DeliveryRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.DeliveryRequest)
	}
	return requests, args.String(1), args.Error(2)
}

func (m *MockDeliveryRequestService) QuoteDeliveryRequest(ctx context.Context, requestID string, amount decimal.Decimal, quotedBy string) (*domain.DeliveryRequest, error) {
	args := m.Called(ctx, requestID, amount, quotedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRequestService) GenerateDeliveryOrder(ctx context.Context, requestID, generatedBy string) (*domain.DeliveryOrder, error) {
	args := m.Called(ctx, requestID, generatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryRequestService) CancelDeliveryRequest(ctx context.Context, requestID, cancelledBy string) (*domain.DeliveryRequest, error) {
	args := m.Called(ctx, requestID, cancelledBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryRequest), args.Error(1)
}

var _ portssvc.DeliveryRequestSvcFacade = (*MockDeliveryRequestService)(nil)

// --- Mock DeliveryOrderService ---
type MockDeliveryOrderService struct {
	mock.Mock
}

func (m *MockDeliveryOrderService) GetDeliveryOrderByID(ctx context.Context, orderID string) (*domain.DeliveryOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderService) ListDeliveryOrders(ctx context.Context, limit int, nextToken string) ([]domain.DeliveryOrder, string, error) {
	args := m.Called(ctx, limit, nextToken)
	var orders []domain.DeliveryOrder
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.DeliveryOrder)
	}
	return orders, args.String(1), args.Error(2)
}

func (m *MockDeliveryOrderService) AcknowledgeDeliveryOrder(ctx context.Context, orderID, acknowledgedBy string) (*domain.DeliveryOrder, error) {
	args := m.Called(ctx, orderID, acknowledgedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryOrder), args.Error(1)
}

var _ portssvc.DeliveryOrderSvcFacade = (*MockDeliveryOrderService)(nil)

// --- Mock ReturnRequestService ---
type MockReturnRequestService struct {
	mock.Mock
}

func (m *MockReturnRequestService) CreateReturnRequest(ctx context.Context, req dto.CreateReturnRequestRequest, createdBy string) (*domain.ReturnRequest, error) {
	args := m.Called(ctx, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestService) GetReturnRequestByID(ctx context.Context, requestID string) (*domain.ReturnRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestService) ListReturnRequests(ctx context.Context, limit int, nextToken string) ([]domain.ReturnRequest, string, error) {
	args := m.Called(ctx, limit, nextToken)
	var requests []domain.ReturnRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.ReturnRequest)
	}
	return requests, args.String(1), args.Error(2)
}

func (m *MockReturnRequestService) ScheduleReturnRequest(ctx context.Context, requestID string, pickupDate time.Time, scheduledBy string) (*domain.ReturnRequest, error) {
	args := m.Called(ctx, requestID, pickupDate, scheduledBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestService) CollectReturnRequest(ctx context.Context, requestID, collectedBy string) (*domain.ReturnRequest, error) {
	args := m.Called(ctx, requestID, collectedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRequest), args.Error(1)
}

func (m *MockReturnRequestService) CancelReturnRequest(ctx context.Context, requestID, cancelledBy string) (*domain.ReturnRequest, error) {
	args := m.Called(ctx, requestID, cancelledBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRequest), args.Error(1)
}

var _ portssvc.ReturnRequestSvcFacade = (*MockReturnRequestService)(nil)

// --- Test Suite ---
type DeliveryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockRequest *MockDeliveryRequestService
	mockOrder   *MockDeliveryOrderService
	mockReturn  *MockReturnRequestService
	jwtSecret   string
}

func (suite *DeliveryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockRequest = new(MockDeliveryRequestService)
	suite.mockOrder = new(MockDeliveryOrderService)
	suite.mockReturn = new(MockReturnRequestService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in tests
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		DeliveryRequest: suite.mockRequest,
		DeliveryOrder:   suite.mockOrder,
		ReturnRequest:   suite.mockReturn,
	})
}

func (suite *DeliveryHandlerTestSuite) generateTestToken(email, name string, roles []string) string {
	token, err := utils.GenerateJWT(uuid.NewString(), email, name, roles, suite.jwtSecret, time.Hour, "test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *DeliveryHandlerTestSuite) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validDeliveryRequestBody() dto.CreateDeliveryRequestRequest {
	return dto.CreateDeliveryRequestRequest{
		CustomerName:  "Hillview Builders",
		CustomerID:    uuid.NewString(),
		SiteAddress:   "12 Jalan Ampang, Kuala Lumpur",
		RequestedDate: time.Now().UTC().Add(72 * time.Hour),
		Items: []dto.DeliveryRequestItemInput{
			{Description: "Scaffolding frame 5x5", Quantity: 40},
		},
	}
}

func (suite *DeliveryHandlerTestSuite) TestCreateDeliveryRequest_ForbiddenForFinanceOnlyRole() {
	token := suite.generateTestToken("finance@example.com", "Fin User", []string{"finance"})

	w := suite.doJSON(http.MethodPost, "/api/delivery-requests", token, validDeliveryRequestBody())

	suite.Equal(http.StatusForbidden, w.Code)
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	suite.False(env.Success)
	suite.mockRequest.AssertNotCalled(suite.T(), "CreateDeliveryRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DeliveryHandlerTestSuite) TestCreateDeliveryRequest_AllowedForOperationsRole() {
	token := suite.generateTestToken("ops@example.com", "Ops User", []string{"operations"})
	body := validDeliveryRequestBody()

	created := &domain.DeliveryRequest{
		DeliveryRequestID: uuid.NewString(),
		DRNumber:          "DR-2026-004",
		CustomerName:      body.CustomerName,
		CustomerID:        body.CustomerID,
		SiteAddress:       body.SiteAddress,
		RequestedDate:     body.RequestedDate,
		Status:            domain.DeliveryRequestStatusNew,
	}
	suite.mockRequest.On("CreateDeliveryRequest", mock.Anything, mock.Anything, "ops@example.com").Return(created, nil)

	w := suite.doJSON(http.MethodPost, "/api/delivery-requests", token, body)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"drNumber":"DR-2026-004"`)
	suite.mockRequest.AssertExpectations(suite.T())
}

func (suite *DeliveryHandlerTestSuite) TestListDeliveryRequests_OpenToFinanceRole() {
	token := suite.generateTestToken("finance@example.com", "Fin User", []string{"finance"})
	suite.mockRequest.On("ListDeliveryRequests", mock.Anything, 20, "").Return([]domain.DeliveryRequest{}, "", nil)

	w := suite.doJSON(http.MethodGet, "/api/delivery-requests", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRequest.AssertExpectations(suite.T())
}

func (suite *DeliveryHandlerTestSuite) TestQuoteDeliveryRequest_ForbiddenForFinanceOnlyRole() {
	token := suite.generateTestToken("finance@example.com", "Fin User", []string{"finance"})

	w := suite.doJSON(http.MethodPost, "/api/delivery-requests/"+uuid.NewString()+"/quote", token,
		dto.QuoteDeliveryRequestRequest{QuotationAmount: decimal.NewFromInt(500)})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockRequest.AssertNotCalled(suite.T(), "QuoteDeliveryRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DeliveryHandlerTestSuite) TestAcknowledgeDeliveryOrder_ForbiddenForFinanceOnlyRole() {
	token := suite.generateTestToken("finance@example.com", "Fin User", []string{"finance"})

	w := suite.doJSON(http.MethodPost, "/api/delivery-orders/"+uuid.NewString()+"/acknowledge", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockOrder.AssertNotCalled(suite.T(), "AcknowledgeDeliveryOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DeliveryHandlerTestSuite) TestAcknowledgeDeliveryOrder_AllowedForSalesRole() {
	token := suite.generateTestToken("sales@example.com", "Sales User", []string{"sales"})
	orderID := uuid.NewString()
	ackBy := "sales@example.com"
	ackAt := time.Now().UTC()
	suite.mockOrder.On("AcknowledgeDeliveryOrder", mock.Anything, orderID, "sales@example.com").Return(&domain.DeliveryOrder{
		DeliveryOrderID: orderID,
		DONumber:        "DO-2026-002",
		Status:          domain.DeliveryOrderStatusAcknowledged,
		AcknowledgedBy:  &ackBy,
		AcknowledgedAt:  &ackAt,
		ScheduledDate:   ackAt,
	}, nil)

	w := suite.doJSON(http.MethodPost, "/api/delivery-orders/"+orderID+"/acknowledge", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"status":"Acknowledged"`)
	suite.mockOrder.AssertExpectations(suite.T())
}

func (suite *DeliveryHandlerTestSuite) TestCollectReturnRequest_ForbiddenForFinanceOnlyRole() {
	token := suite.generateTestToken("finance@example.com", "Fin User", []string{"finance"})

	w := suite.doJSON(http.MethodPost, "/api/return-requests/"+uuid.NewString()+"/collect", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockReturn.AssertNotCalled(suite.T(), "CollectReturnRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DeliveryHandlerTestSuite) TestCreateReturnRequest_ForbiddenForFinanceOnlyRole() {
	token := suite.generateTestToken("finance@example.com", "Fin User", []string{"finance"})

	w := suite.doJSON(http.MethodPost, "/api/return-requests", token, dto.CreateReturnRequestRequest{
		DeliveryOrderID: uuid.NewString(),
		CustomerName:    "Hillview Builders",
		PickupAddress:   "12 Jalan Ampang, Kuala Lumpur",
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockReturn.AssertNotCalled(suite.T(), "CreateReturnRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DeliveryHandlerTestSuite) TestListReturnRequests_OpenToFinanceRole() {
	token := suite.generateTestToken("finance@example.com", "Fin User", []string{"finance"})
	suite.mockReturn.On("ListReturnRequests", mock.Anything, 20, "").Return([]domain.ReturnRequest{}, "", nil)

	w := suite.doJSON(http.MethodGet, "/api/return-requests", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReturn.AssertExpectations(suite.T())
}

func TestDeliveryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryHandlerTestSuite))
}
