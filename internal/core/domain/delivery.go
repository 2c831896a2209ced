package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryRequestStatus tracks a delivery request through its linear workflow.
type DeliveryRequestStatus string

const (
	DeliveryRequestStatusNew          DeliveryRequestStatus = "New"
	DeliveryRequestStatusQuoted       DeliveryRequestStatus = "Quoted"
	DeliveryRequestStatusDOGenerated  DeliveryRequestStatus = "DO Generated"
	DeliveryRequestStatusAcknowledged DeliveryRequestStatus = "Acknowledged"
	DeliveryRequestStatusCancelled    DeliveryRequestStatus = "Cancelled"
)

// DeliveryRequestItem is one equipment line on a delivery request.
type DeliveryRequestItem struct {
	ItemID            string `json:"itemID"`
	DeliveryRequestID string `json:"deliveryRequestID"`
	Description       string `json:"description"`
	Quantity          int    `json:"quantity"`
}

// DeliveryRequest is a customer's request to have rental equipment delivered
// to a site. New -> Quoted -> DO Generated -> Acknowledged, with Cancelled
// reachable from New and Quoted.
type DeliveryRequest struct {
	DeliveryRequestID string                `json:"deliveryRequestID"`
	DRNumber          string                `json:"drNumber"` // DR-<year>-<seq3>, unique
	CustomerName      string                `json:"customerName"`
	CustomerID        string                `json:"customerId"`
	SiteAddress       string                `json:"siteAddress"`
	RequestedDate     time.Time             `json:"requestedDate"`
	QuotationAmount   *decimal.Decimal      `json:"quotationAmount,omitempty"`
	Status            DeliveryRequestStatus `json:"status"`
	Items             []DeliveryRequestItem `json:"items"`
	AuditFields
}

// DeliveryOrderStatus tracks an issued delivery order.
type DeliveryOrderStatus string

const (
	DeliveryOrderStatusIssued       DeliveryOrderStatus = "Issued"
	DeliveryOrderStatusAcknowledged DeliveryOrderStatus = "Acknowledged"
)

// DeliveryOrder is the dispatch document generated from a quoted delivery request.
type DeliveryOrder struct {
	DeliveryOrderID   string              `json:"deliveryOrderID"`
	DONumber          string              `json:"doNumber"` // DO-<year>-<seq3>, unique
	DeliveryRequestID string              `json:"deliveryRequestID"`
	CustomerName      string              `json:"customerName"`
	SiteAddress       string              `json:"siteAddress"`
	ScheduledDate     time.Time           `json:"scheduledDate"`
	Status            DeliveryOrderStatus `json:"status"`
	AcknowledgedBy    *string             `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt    *time.Time          `json:"acknowledgedAt,omitempty"`
	AuditFields
}

// ReturnRequestStatus tracks a return/pickup request.
type ReturnRequestStatus string

const (
	ReturnRequestStatusRequested ReturnRequestStatus = "Requested"
	ReturnRequestStatusScheduled ReturnRequestStatus = "Scheduled"
	ReturnRequestStatusCollected ReturnRequestStatus = "Collected"
	ReturnRequestStatusCancelled ReturnRequestStatus = "Cancelled"
)

// ReturnRequest is a customer's request to have equipment picked up after a
// rental period. Requested -> Scheduled -> Collected, with Cancelled reachable
// from Requested.
type ReturnRequest struct {
	ReturnRequestID string              `json:"returnRequestID"`
	RRNumber        string              `json:"rrNumber"` // RR-<year>-<seq3>, unique
	DeliveryOrderID string              `json:"deliveryOrderID"`
	CustomerName    string              `json:"customerName"`
	PickupAddress   string              `json:"pickupAddress"`
	PickupDate      *time.Time          `json:"pickupDate,omitempty"`
	Status          ReturnRequestStatus `json:"status"`
	AuditFields
}
