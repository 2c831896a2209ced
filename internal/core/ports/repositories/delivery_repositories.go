package repositories

import (
	"context"
	"time"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DeliveryRequestRepositoryFacade defines persistence operations for delivery requests.
type DeliveryRequestRepositoryFacade interface {
	// SaveDeliveryRequest assigns the next DR number for the current year
	// and inserts the request with its item lines in one transaction.
	SaveDeliveryRequest(ctx context.Context, request domain.DeliveryRequest) (*domain.DeliveryRequest, error)

	// FindDeliveryRequestByID retrieves a delivery request with its items.
	FindDeliveryRequestByID(ctx context.Context, deliveryRequestID string) (*domain.DeliveryRequest, error)

	// ListDeliveryRequests returns a page of delivery requests, newest
	// first, with a token for the next page when more rows exist.
	ListDeliveryRequests(ctx context.Context, limit int, nextToken *string) ([]domain.DeliveryRequest, *string, error)

	// UpdateDeliveryRequestQuote records a quotation amount and moves the
	// request from New to Quoted. Returns ErrConflict when the request is
	// not in the New state.
	UpdateDeliveryRequestQuote(ctx context.Context, deliveryRequestID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// CancelDeliveryRequest moves a request in New or Quoted to Cancelled.
	CancelDeliveryRequest(ctx context.Context, deliveryRequestID string, updatedBy string, updatedAt time.Time) error

	// GenerateDeliveryOrder inserts the delivery order and flips the parent
	// request from Quoted to DO Generated in one transaction. The order's
	// DO number is assigned inside the transaction.
	GenerateDeliveryOrder(ctx context.Context, deliveryRequestID string, order domain.DeliveryOrder) (*domain.DeliveryOrder, error)
}

// DeliveryOrderRepositoryFacade defines persistence operations for delivery orders.
type DeliveryOrderRepositoryFacade interface {
	FindDeliveryOrderByID(ctx context.Context, deliveryOrderID string) (*domain.DeliveryOrder, error)

	ListDeliveryOrders(ctx context.Context, limit int, nextToken *string) ([]domain.DeliveryOrder, *string, error)

	// AcknowledgeDeliveryOrder moves an Issued order to Acknowledged and
	// flips the parent request to Acknowledged in one transaction.
	AcknowledgeDeliveryOrder(ctx context.Context, deliveryOrderID, acknowledgedBy string, acknowledgedAt time.Time) (*domain.DeliveryOrder, error)
}

// ReturnRequestRepositoryFacade defines persistence operations for return requests.
type ReturnRequestRepositoryFacade interface {
	// SaveReturnRequest assigns the next RR number for the current year and
	// inserts the request.
	SaveReturnRequest(ctx context.Context, request domain.ReturnRequest) (*domain.ReturnRequest, error)

	FindReturnRequestByID(ctx context.Context, returnRequestID string) (*domain.ReturnRequest, error)

	ListReturnRequests(ctx context.Context, limit int, nextToken *string) ([]domain.ReturnRequest, *string, error)

	// ScheduleReturnRequest records a pickup date and moves the request
	// from Requested to Scheduled.
	ScheduleReturnRequest(ctx context.Context, returnRequestID string, pickupDate time.Time, updatedBy string, updatedAt time.Time) error

	// CollectReturnRequest moves a Scheduled request to Collected.
	CollectReturnRequest(ctx context.Context, returnRequestID string, updatedBy string, updatedAt time.Time) error

	// CancelReturnRequest moves a Requested request to Cancelled.
	CancelReturnRequest(ctx context.Context, returnRequestID string, updatedBy string, updatedAt time.Time) error
}
