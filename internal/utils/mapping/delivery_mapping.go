package mapping

import (
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/models"
)

// ToModelDeliveryRequest converts a domain DeliveryRequest to its row model.
// Items are persisted separately.
func ToModelDeliveryRequest(d domain.DeliveryRequest) models.DeliveryRequest {
	return models.DeliveryRequest{
		DeliveryRequestID: d.DeliveryRequestID,
		DRNumber:          d.DRNumber,
		CustomerName:      d.CustomerName,
		CustomerID:        d.CustomerID,
		SiteAddress:       d.SiteAddress,
		RequestedDate:     d.RequestedDate,
		QuotationAmount:   d.QuotationAmount,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeliveryRequest converts a row model to a domain DeliveryRequest.
func ToDomainDeliveryRequest(m models.DeliveryRequest) domain.DeliveryRequest {
	return domain.DeliveryRequest{
		DeliveryRequestID: m.DeliveryRequestID,
		DRNumber:          m.DRNumber,
		CustomerName:      m.CustomerName,
		CustomerID:        m.CustomerID,
		SiteAddress:       m.SiteAddress,
		RequestedDate:     m.RequestedDate,
		QuotationAmount:   m.QuotationAmount,
		Status:            domain.DeliveryRequestStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDeliveryRequestItem converts an item row model to its domain form.
func ToDomainDeliveryRequestItem(m models.DeliveryRequestItem) domain.DeliveryRequestItem {
	return domain.DeliveryRequestItem{
		ItemID:            m.ItemID,
		DeliveryRequestID: m.DeliveryRequestID,
		Description:       m.Description,
		Quantity:          m.Quantity,
	}
}

// ToModelDeliveryOrder converts a domain DeliveryOrder to its row model.
func ToModelDeliveryOrder(d domain.DeliveryOrder) models.DeliveryOrder {
	return models.DeliveryOrder{
		DeliveryOrderID:   d.DeliveryOrderID,
		DONumber:          d.DONumber,
		DeliveryRequestID: d.DeliveryRequestID,
		CustomerName:      d.CustomerName,
		SiteAddress:       d.SiteAddress,
		ScheduledDate:     d.ScheduledDate,
		Status:            string(d.Status),
		AcknowledgedBy:    d.AcknowledgedBy,
		AcknowledgedAt:    d.AcknowledgedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeliveryOrder converts a row model to a domain DeliveryOrder.
func ToDomainDeliveryOrder(m models.DeliveryOrder) domain.DeliveryOrder {
	return domain.DeliveryOrder{
		DeliveryOrderID:   m.DeliveryOrderID,
		DONumber:          m.DONumber,
		DeliveryRequestID: m.DeliveryRequestID,
		CustomerName:      m.CustomerName,
		SiteAddress:       m.SiteAddress,
		ScheduledDate:     m.ScheduledDate,
		Status:            domain.DeliveryOrderStatus(m.Status),
		AcknowledgedBy:    m.AcknowledgedBy,
		AcknowledgedAt:    m.AcknowledgedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReturnRequest converts a domain ReturnRequest to its row model.
func ToModelReturnRequest(d domain.ReturnRequest) models.ReturnRequest {
	return models.ReturnRequest{
		ReturnRequestID: d.ReturnRequestID,
		RRNumber:        d.RRNumber,
		DeliveryOrderID: d.DeliveryOrderID,
		CustomerName:    d.CustomerName,
		PickupAddress:   d.PickupAddress,
		PickupDate:      d.PickupDate,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReturnRequest converts a row model to a domain ReturnRequest.
func ToDomainReturnRequest(m models.ReturnRequest) domain.ReturnRequest {
	return domain.ReturnRequest{
		ReturnRequestID: m.ReturnRequestID,
		RRNumber:        m.RRNumber,
		DeliveryOrderID: m.DeliveryOrderID,
		CustomerName:    m.CustomerName,
		PickupAddress:   m.PickupAddress,
		PickupDate:      m.PickupDate,
		Status:          domain.ReturnRequestStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
