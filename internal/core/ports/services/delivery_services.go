package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
)

// DeliveryRequestSvcFacade covers the delivery request lifecycle from
// creation through quotation and delivery order generation.
type DeliveryRequestSvcFacade interface {
	CreateDeliveryRequest(ctx context.Context, req dto.CreateDeliveryRequestRequest, createdBy string) (*domain.DeliveryRequest, error)

	GetDeliveryRequestByID(ctx context.Context, requestID string) (*domain.DeliveryRequest, error)

	// ListDeliveryRequests returns up to limit requests plus a token for the
	// next page, or an empty token when the listing is exhausted.
	ListDeliveryRequests(ctx context.Context, limit int, nextToken string) ([]domain.DeliveryRequest, string, error)

	QuoteDeliveryRequest(ctx context.Context, requestID string, amount decimal.Decimal, quotedBy string) (*domain.DeliveryRequest, error)

	GenerateDeliveryOrder(ctx context.Context, requestID, generatedBy string) (*domain.DeliveryOrder, error)

	CancelDeliveryRequest(ctx context.Context, requestID, cancelledBy string) (*domain.DeliveryRequest, error)
}

// DeliveryOrderSvcFacade exposes issued delivery orders and their
// acknowledgement by site personnel.
type DeliveryOrderSvcFacade interface {
	GetDeliveryOrderByID(ctx context.Context, orderID string) (*domain.DeliveryOrder, error)

	ListDeliveryOrders(ctx context.Context, limit int, nextToken string) ([]domain.DeliveryOrder, string, error)

	AcknowledgeDeliveryOrder(ctx context.Context, orderID, acknowledgedBy string) (*domain.DeliveryOrder, error)
}

// ReturnRequestSvcFacade covers equipment collection at the end of a rental.
type ReturnRequestSvcFacade interface {
	CreateReturnRequest(ctx context.Context, req dto.CreateReturnRequestRequest, createdBy string) (*domain.ReturnRequest, error)

	GetReturnRequestByID(ctx context.Context, requestID string) (*domain.ReturnRequest, error)

	ListReturnRequests(ctx context.Context, limit int, nextToken string) ([]domain.ReturnRequest, string, error)

	ScheduleReturnRequest(ctx context.Context, requestID string, pickupDate time.Time, scheduledBy string) (*domain.ReturnRequest, error)

	CollectReturnRequest(ctx context.Context, requestID, collectedBy string) (*domain.ReturnRequest, error)

	CancelReturnRequest(ctx context.Context, requestID, cancelledBy string) (*domain.ReturnRequest, error)
}
