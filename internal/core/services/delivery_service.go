package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
)

const (
	defaultDeliveryPageSize = 20
	maxDeliveryPageSize     = 100
)

func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultDeliveryPageSize
	}
	if limit > maxDeliveryPageSize {
		return maxDeliveryPageSize
	}
	return limit
}

func tokenPtr(token string) *string {
	if token == "" {
		return nil
	}
	return &token
}

func tokenValue(token *string) string {
	if token == nil {
		return ""
	}
	return *token
}

// DeliveryRequestService drives the delivery request workflow.
type DeliveryRequestService struct {
	requestRepo portsrepo.DeliveryRequestRepositoryFacade
}

func NewDeliveryRequestService(requestRepo portsrepo.DeliveryRequestRepositoryFacade) *DeliveryRequestService {
	return &DeliveryRequestService{requestRepo: requestRepo}
}

// CreateDeliveryRequest opens a new request in the New state.
func (s *DeliveryRequestService) CreateDeliveryRequest(ctx context.Context, req dto.CreateDeliveryRequestRequest, createdBy string) (*domain.DeliveryRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	requestID := uuid.NewString()
	items := make([]domain.DeliveryRequestItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.DeliveryRequestItem{
			ItemID:            uuid.NewString(),
			DeliveryRequestID: requestID,
			Description:       item.Description,
			Quantity:          item.Quantity,
		}
	}

	request := domain.DeliveryRequest{
		DeliveryRequestID: requestID,
		CustomerName:      req.CustomerName,
		CustomerID:        req.CustomerID,
		SiteAddress:       req.SiteAddress,
		RequestedDate:     req.RequestedDate,
		Status:            domain.DeliveryRequestStatusNew,
		Items:             items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	saved, err := s.requestRepo.SaveDeliveryRequest(ctx, request)
	if err != nil {
		logger.Error("Failed to save delivery request", slog.String("error", err.Error()), slog.String("delivery_request_id", requestID))
		return nil, err
	}

	logger.Info("Delivery request created",
		slog.String("delivery_request_id", saved.DeliveryRequestID),
		slog.String("dr_number", saved.DRNumber))
	return saved, nil
}

func (s *DeliveryRequestService) GetDeliveryRequestByID(ctx context.Context, requestID string) (*domain.DeliveryRequest, error) {
	return s.requestRepo.FindDeliveryRequestByID(ctx, requestID)
}

func (s *DeliveryRequestService) ListDeliveryRequests(ctx context.Context, limit int, nextToken string) ([]domain.DeliveryRequest, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	requests, token, err := s.requestRepo.ListDeliveryRequests(ctx, clampPageSize(limit), tokenPtr(nextToken))
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list delivery requests", slog.String("error", err.Error()))
		}
		return nil, "", err
	}
	if requests == nil {
		requests = []domain.DeliveryRequest{}
	}
	return requests, tokenValue(token), nil
}

// QuoteDeliveryRequest records the quotation and moves New to Quoted.
func (s *DeliveryRequestService) QuoteDeliveryRequest(ctx context.Context, requestID string, amount decimal.Decimal, quotedBy string) (*domain.DeliveryRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("Quotation amount must be a positive number")
	}
	if err := s.requestRepo.UpdateDeliveryRequestQuote(ctx, requestID, amount, quotedBy, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to quote delivery request", slog.String("error", err.Error()), slog.String("delivery_request_id", requestID))
		}
		return nil, err
	}
	logger.Info("Delivery request quoted", slog.String("delivery_request_id", requestID), slog.String("quoted_by", quotedBy))
	return s.requestRepo.FindDeliveryRequestByID(ctx, requestID)
}

// GenerateDeliveryOrder issues a delivery order for a Quoted request and
// flips the request to DO Generated. Both writes happen in one transaction
// in the repository.
func (s *DeliveryRequestService) GenerateDeliveryOrder(ctx context.Context, requestID, generatedBy string) (*domain.DeliveryOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.requestRepo.FindDeliveryRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.DeliveryRequestStatusQuoted {
		return nil, apperrors.NewConflictError("Delivery order can only be generated for a quoted request")
	}

	now := time.Now()
	order := domain.DeliveryOrder{
		DeliveryOrderID:   uuid.NewString(),
		DeliveryRequestID: request.DeliveryRequestID,
		CustomerName:      request.CustomerName,
		SiteAddress:       request.SiteAddress,
		ScheduledDate:     request.RequestedDate,
		Status:            domain.DeliveryOrderStatusIssued,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     generatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: generatedBy,
		},
	}

	saved, err := s.requestRepo.GenerateDeliveryOrder(ctx, requestID, order)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to generate delivery order", slog.String("error", err.Error()), slog.String("delivery_request_id", requestID))
		}
		return nil, err
	}

	logger.Info("Delivery order generated",
		slog.String("delivery_request_id", requestID),
		slog.String("do_number", saved.DONumber))
	return saved, nil
}

// CancelDeliveryRequest moves a New or Quoted request to Cancelled.
func (s *DeliveryRequestService) CancelDeliveryRequest(ctx context.Context, requestID, cancelledBy string) (*domain.DeliveryRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.requestRepo.CancelDeliveryRequest(ctx, requestID, cancelledBy, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to cancel delivery request", slog.String("error", err.Error()), slog.String("delivery_request_id", requestID))
		}
		return nil, err
	}
	logger.Info("Delivery request cancelled", slog.String("delivery_request_id", requestID), slog.String("cancelled_by", cancelledBy))
	return s.requestRepo.FindDeliveryRequestByID(ctx, requestID)
}

// DeliveryOrderService exposes issued delivery orders.
type DeliveryOrderService struct {
	orderRepo portsrepo.DeliveryOrderRepositoryFacade
}

func NewDeliveryOrderService(orderRepo portsrepo.DeliveryOrderRepositoryFacade) *DeliveryOrderService {
	return &DeliveryOrderService{orderRepo: orderRepo}
}

func (s *DeliveryOrderService) GetDeliveryOrderByID(ctx context.Context, orderID string) (*domain.DeliveryOrder, error) {
	return s.orderRepo.FindDeliveryOrderByID(ctx, orderID)
}

func (s *DeliveryOrderService) ListDeliveryOrders(ctx context.Context, limit int, nextToken string) ([]domain.DeliveryOrder, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	orders, token, err := s.orderRepo.ListDeliveryOrders(ctx, clampPageSize(limit), tokenPtr(nextToken))
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list delivery orders", slog.String("error", err.Error()))
		}
		return nil, "", err
	}
	if orders == nil {
		orders = []domain.DeliveryOrder{}
	}
	return orders, tokenValue(token), nil
}

// AcknowledgeDeliveryOrder records site acknowledgement of an Issued order.
func (s *DeliveryOrderService) AcknowledgeDeliveryOrder(ctx context.Context, orderID, acknowledgedBy string) (*domain.DeliveryOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	order, err := s.orderRepo.AcknowledgeDeliveryOrder(ctx, orderID, acknowledgedBy, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to acknowledge delivery order", slog.String("error", err.Error()), slog.String("delivery_order_id", orderID))
		}
		return nil, err
	}
	logger.Info("Delivery order acknowledged", slog.String("delivery_order_id", orderID), slog.String("acknowledged_by", acknowledgedBy))
	return order, nil
}

// ReturnRequestService drives the return/pickup workflow.
type ReturnRequestService struct {
	returnRepo portsrepo.ReturnRequestRepositoryFacade
	orderRepo  portsrepo.DeliveryOrderRepositoryFacade
}

func NewReturnRequestService(returnRepo portsrepo.ReturnRequestRepositoryFacade, orderRepo portsrepo.DeliveryOrderRepositoryFacade) *ReturnRequestService {
	return &ReturnRequestService{returnRepo: returnRepo, orderRepo: orderRepo}
}

// CreateReturnRequest opens a return request against an existing delivery order.
func (s *ReturnRequestService) CreateReturnRequest(ctx context.Context, req dto.CreateReturnRequestRequest, createdBy string) (*domain.ReturnRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The delivery order must exist before equipment can be returned.
	if _, err := s.orderRepo.FindDeliveryOrderByID(ctx, req.DeliveryOrderID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("Delivery order not found for return request")
		}
		return nil, err
	}

	now := time.Now()
	request := domain.ReturnRequest{
		ReturnRequestID: uuid.NewString(),
		DeliveryOrderID: req.DeliveryOrderID,
		CustomerName:    req.CustomerName,
		PickupAddress:   req.PickupAddress,
		Status:          domain.ReturnRequestStatusRequested,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	saved, err := s.returnRepo.SaveReturnRequest(ctx, request)
	if err != nil {
		logger.Error("Failed to save return request", slog.String("error", err.Error()), slog.String("return_request_id", request.ReturnRequestID))
		return nil, err
	}

	logger.Info("Return request created",
		slog.String("return_request_id", saved.ReturnRequestID),
		slog.String("rr_number", saved.RRNumber))
	return saved, nil
}

func (s *ReturnRequestService) GetReturnRequestByID(ctx context.Context, requestID string) (*domain.ReturnRequest, error) {
	return s.returnRepo.FindReturnRequestByID(ctx, requestID)
}

func (s *ReturnRequestService) ListReturnRequests(ctx context.Context, limit int, nextToken string) ([]domain.ReturnRequest, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	requests, token, err := s.returnRepo.ListReturnRequests(ctx, clampPageSize(limit), tokenPtr(nextToken))
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list return requests", slog.String("error", err.Error()))
		}
		return nil, "", err
	}
	if requests == nil {
		requests = []domain.ReturnRequest{}
	}
	return requests, tokenValue(token), nil
}

// ScheduleReturnRequest records a pickup date and moves Requested to Scheduled.
func (s *ReturnRequestService) ScheduleReturnRequest(ctx context.Context, requestID string, pickupDate time.Time, scheduledBy string) (*domain.ReturnRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if pickupDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, apperrors.NewValidationError("Pickup date cannot be in the past")
	}
	if err := s.returnRepo.ScheduleReturnRequest(ctx, requestID, pickupDate, scheduledBy, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to schedule return request", slog.String("error", err.Error()), slog.String("return_request_id", requestID))
		}
		return nil, err
	}
	logger.Info("Return request scheduled", slog.String("return_request_id", requestID), slog.String("scheduled_by", scheduledBy))
	return s.returnRepo.FindReturnRequestByID(ctx, requestID)
}

// CollectReturnRequest moves a Scheduled request to Collected.
func (s *ReturnRequestService) CollectReturnRequest(ctx context.Context, requestID, collectedBy string) (*domain.ReturnRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.returnRepo.CollectReturnRequest(ctx, requestID, collectedBy, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to collect return request", slog.String("error", err.Error()), slog.String("return_request_id", requestID))
		}
		return nil, err
	}
	logger.Info("Return request collected", slog.String("return_request_id", requestID), slog.String("collected_by", collectedBy))
	return s.returnRepo.FindReturnRequestByID(ctx, requestID)
}

// CancelReturnRequest moves a Requested request to Cancelled.
func (s *ReturnRequestService) CancelReturnRequest(ctx context.Context, requestID, cancelledBy string) (*domain.ReturnRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.returnRepo.CancelReturnRequest(ctx, requestID, cancelledBy, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to cancel return request", slog.String("error", err.Error()), slog.String("return_request_id", requestID))
		}
		return nil, err
	}
	logger.Info("Return request cancelled", slog.String("return_request_id", requestID), slog.String("cancelled_by", cancelledBy))
	return s.returnRepo.FindReturnRequestByID(ctx, requestID)
}
