package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryRequest is the row model for the delivery_requests table.
type DeliveryRequest struct {
	DeliveryRequestID string           `db:"delivery_request_id"`
	DRNumber          string           `db:"dr_number"`
	CustomerName      string           `db:"customer_name"`
	CustomerID        string           `db:"customer_id"`
	SiteAddress       string           `db:"site_address"`
	RequestedDate     time.Time        `db:"requested_date"`
	QuotationAmount   *decimal.Decimal `db:"quotation_amount"`
	Status            string           `db:"status"`
	AuditFields
}

// DeliveryRequestItem is the row model for the delivery_request_items table.
type DeliveryRequestItem struct {
	ItemID            string `db:"item_id"`
	DeliveryRequestID string `db:"delivery_request_id"`
	Description       string `db:"description"`
	Quantity          int    `db:"quantity"`
}

// DeliveryOrder is the row model for the delivery_orders table.
type DeliveryOrder struct {
	DeliveryOrderID   string     `db:"delivery_order_id"`
	DONumber          string     `db:"do_number"`
	DeliveryRequestID string     `db:"delivery_request_id"`
	CustomerName      string     `db:"customer_name"`
	SiteAddress       string     `db:"site_address"`
	ScheduledDate     time.Time  `db:"scheduled_date"`
	Status            string     `db:"status"`
	AcknowledgedBy    *string    `db:"acknowledged_by"`
	AcknowledgedAt    *time.Time `db:"acknowledged_at"`
	AuditFields
}

// ReturnRequest is the row model for the return_requests table.
type ReturnRequest struct {
	ReturnRequestID string     `db:"return_request_id"`
	RRNumber        string     `db:"rr_number"`
	DeliveryOrderID string     `db:"delivery_order_id"`
	CustomerName    string     `db:"customer_name"`
	PickupAddress   string     `db:"pickup_address"`
	PickupDate      *time.Time `db:"pickup_date"`
	Status          string     `db:"status"`
	AuditFields
}
