package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
)

// DeliveryRequestItemInput is one equipment line on a new delivery request.
type DeliveryRequestItemInput struct {
	Description string `json:"description" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// CreateDeliveryRequestRequest defines the data needed to open a delivery request.
type CreateDeliveryRequestRequest struct {
	CustomerName  string                     `json:"customerName" binding:"required"`
	CustomerID    string                     `json:"customerId" binding:"required"`
	SiteAddress   string                     `json:"siteAddress" binding:"required"`
	RequestedDate time.Time                  `json:"requestedDate" binding:"required"`
	Items         []DeliveryRequestItemInput `json:"items" binding:"required,min=1,dive"`
}

// QuoteDeliveryRequestRequest carries the quotation amount for a new request.
type QuoteDeliveryRequestRequest struct {
	QuotationAmount decimal.Decimal `json:"quotationAmount" binding:"required"`
}

// ScheduleReturnRequestRequest carries the pickup date for a return request.
type ScheduleReturnRequestRequest struct {
	PickupDate time.Time `json:"pickupDate" binding:"required"`
}

// CreateReturnRequestRequest defines the data needed to open a return request.
type CreateReturnRequestRequest struct {
	DeliveryOrderID string `json:"deliveryOrderID" binding:"required"`
	CustomerName    string `json:"customerName" binding:"required"`
	PickupAddress   string `json:"pickupAddress" binding:"required"`
}

// ListDeliveryParams defines the token-paginated listing parameters shared by
// the delivery request, delivery order and return request listings.
type ListDeliveryParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// DeliveryRequestItemResponse is the JSON-safe shape of one request line.
type DeliveryRequestItemResponse struct {
	ItemID      string `json:"itemID"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// DeliveryRequestResponse defines the data returned for a delivery request.
type DeliveryRequestResponse struct {
	DeliveryRequestID string                        `json:"id"`
	DRNumber          string                        `json:"drNumber"`
	CustomerName      string                        `json:"customerName"`
	CustomerID        string                        `json:"customerId"`
	SiteAddress       string                        `json:"siteAddress"`
	RequestedDate     string                        `json:"requestedDate"`
	QuotationAmount   *float64                      `json:"quotationAmount"`
	Status            domain.DeliveryRequestStatus  `json:"status"`
	Items             []DeliveryRequestItemResponse `json:"items"`
	CreatedAt         string                        `json:"createdAt"`
	CreatedBy         string                        `json:"createdBy"`
	LastUpdatedAt     string                        `json:"updatedAt"`
	LastUpdatedBy     string                        `json:"updatedBy"`
}

// ToDeliveryRequestResponse converts a domain.DeliveryRequest to its DTO.
func ToDeliveryRequestResponse(dr *domain.DeliveryRequest) DeliveryRequestResponse {
	items := make([]DeliveryRequestItemResponse, len(dr.Items))
	for i, item := range dr.Items {
		items[i] = DeliveryRequestItemResponse{
			ItemID:      item.ItemID,
			Description: item.Description,
			Quantity:    item.Quantity,
		}
	}
	var quote *float64
	if dr.QuotationAmount != nil {
		f := dr.QuotationAmount.InexactFloat64()
		quote = &f
	}
	return DeliveryRequestResponse{
		DeliveryRequestID: dr.DeliveryRequestID,
		DRNumber:          dr.DRNumber,
		CustomerName:      dr.CustomerName,
		CustomerID:        dr.CustomerID,
		SiteAddress:       dr.SiteAddress,
		RequestedDate:     isoTime(dr.RequestedDate),
		QuotationAmount:   quote,
		Status:            dr.Status,
		Items:             items,
		CreatedAt:         isoTime(dr.CreatedAt),
		CreatedBy:         dr.CreatedBy,
		LastUpdatedAt:     isoTime(dr.LastUpdatedAt),
		LastUpdatedBy:     dr.LastUpdatedBy,
	}
}

// ListDeliveryRequestsResponse wraps a page of delivery requests.
type ListDeliveryRequestsResponse struct {
	DeliveryRequests []DeliveryRequestResponse `json:"deliveryRequests"`
	NextToken        string                    `json:"nextToken,omitempty"`
}

// ToListDeliveryRequestsResponse converts a page of domain requests to DTOs.
func ToListDeliveryRequestsResponse(requests []domain.DeliveryRequest, nextToken string) ListDeliveryRequestsResponse {
	res := make([]DeliveryRequestResponse, len(requests))
	for i := range requests {
		res[i] = ToDeliveryRequestResponse(&requests[i])
	}
	return ListDeliveryRequestsResponse{DeliveryRequests: res, NextToken: nextToken}
}

// DeliveryOrderResponse defines the data returned for a delivery order.
type DeliveryOrderResponse struct {
	DeliveryOrderID   string                     `json:"id"`
	DONumber          string                     `json:"doNumber"`
	DeliveryRequestID string                     `json:"deliveryRequestID"`
	CustomerName      string                     `json:"customerName"`
	SiteAddress       string                     `json:"siteAddress"`
	ScheduledDate     string                     `json:"scheduledDate"`
	Status            domain.DeliveryOrderStatus `json:"status"`
	AcknowledgedBy    *string                    `json:"acknowledgedBy"`
	AcknowledgedAt    *string                    `json:"acknowledgedAt"`
	CreatedAt         string                     `json:"createdAt"`
	CreatedBy         string                     `json:"createdBy"`
	LastUpdatedAt     string                     `json:"updatedAt"`
	LastUpdatedBy     string                     `json:"updatedBy"`
}

// ToDeliveryOrderResponse converts a domain.DeliveryOrder to its DTO.
func ToDeliveryOrderResponse(do *domain.DeliveryOrder) DeliveryOrderResponse {
	return DeliveryOrderResponse{
		DeliveryOrderID:   do.DeliveryOrderID,
		DONumber:          do.DONumber,
		DeliveryRequestID: do.DeliveryRequestID,
		CustomerName:      do.CustomerName,
		SiteAddress:       do.SiteAddress,
		ScheduledDate:     isoTime(do.ScheduledDate),
		Status:            do.Status,
		AcknowledgedBy:    do.AcknowledgedBy,
		AcknowledgedAt:    isoTimePtr(do.AcknowledgedAt),
		CreatedAt:         isoTime(do.CreatedAt),
		CreatedBy:         do.CreatedBy,
		LastUpdatedAt:     isoTime(do.LastUpdatedAt),
		LastUpdatedBy:     do.LastUpdatedBy,
	}
}

// ListDeliveryOrdersResponse wraps a page of delivery orders.
type ListDeliveryOrdersResponse struct {
	DeliveryOrders []DeliveryOrderResponse `json:"deliveryOrders"`
	NextToken      string                  `json:"nextToken,omitempty"`
}

// ToListDeliveryOrdersResponse converts a page of domain orders to DTOs.
func ToListDeliveryOrdersResponse(orders []domain.DeliveryOrder, nextToken string) ListDeliveryOrdersResponse {
	res := make([]DeliveryOrderResponse, len(orders))
	for i := range orders {
		res[i] = ToDeliveryOrderResponse(&orders[i])
	}
	return ListDeliveryOrdersResponse{DeliveryOrders: res, NextToken: nextToken}
}

// ReturnRequestResponse defines the data returned for a return request.
type ReturnRequestResponse struct {
	ReturnRequestID string                     `json:"id"`
	RRNumber        string                     `json:"rrNumber"`
	DeliveryOrderID string                     `json:"deliveryOrderID"`
	CustomerName    string                     `json:"customerName"`
	PickupAddress   string                     `json:"pickupAddress"`
	PickupDate      *string                    `json:"pickupDate"`
	Status          domain.ReturnRequestStatus `json:"status"`
	CreatedAt       string                     `json:"createdAt"`
	CreatedBy       string                     `json:"createdBy"`
	LastUpdatedAt   string                     `json:"updatedAt"`
	LastUpdatedBy   string                     `json:"updatedBy"`
}

// ToReturnRequestResponse converts a domain.ReturnRequest to its DTO.
func ToReturnRequestResponse(rr *domain.ReturnRequest) ReturnRequestResponse {
	return ReturnRequestResponse{
		ReturnRequestID: rr.ReturnRequestID,
		RRNumber:        rr.RRNumber,
		DeliveryOrderID: rr.DeliveryOrderID,
		CustomerName:    rr.CustomerName,
		PickupAddress:   rr.PickupAddress,
		PickupDate:      isoTimePtr(rr.PickupDate),
		Status:          rr.Status,
		CreatedAt:       isoTime(rr.CreatedAt),
		CreatedBy:       rr.CreatedBy,
		LastUpdatedAt:   isoTime(rr.LastUpdatedAt),
		LastUpdatedBy:   rr.LastUpdatedBy,
	}
}

// ListReturnRequestsResponse wraps a page of return requests.
type ListReturnRequestsResponse struct {
	ReturnRequests []ReturnRequestResponse `json:"returnRequests"`
	NextToken      string                  `json:"nextToken,omitempty"`
}

// ToListReturnRequestsResponse converts a page of domain return requests to DTOs.
func ToListReturnRequestsResponse(requests []domain.ReturnRequest, nextToken string) ListReturnRequestsResponse {
	res := make([]ReturnRequestResponse, len(requests))
	for i := range requests {
		res[i] = ToReturnRequestResponse(&requests[i])
	}
	return ListReturnRequestsResponse{ReturnRequests: res, NextToken: nextToken}
}
