package mapping

import (
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/models"
)

// ToModelRefund converts a domain Refund to a model Refund.
func ToModelRefund(d domain.Refund) models.Refund {
	return models.Refund{
		RefundID:        d.RefundID,
		RefundNumber:    d.RefundNumber,
		InvoiceType:     string(d.InvoiceType),
		SourceID:        d.SourceID,
		OriginalInvoice: d.OriginalInvoice,
		CustomerName:    d.CustomerName,
		CustomerID:      d.CustomerID,
		Amount:          d.Amount,
		RefundMethod:    d.RefundMethod,
		Reason:          d.Reason,
		ReasonDesc:      d.ReasonDesc,
		Status:          models.RefundStatus(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectedBy:      d.RejectedBy,
		RejectedAt:      d.RejectedAt,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRefund converts a model Refund to a domain Refund.
func ToDomainRefund(m models.Refund) domain.Refund {
	return domain.Refund{
		RefundID:        m.RefundID,
		RefundNumber:    m.RefundNumber,
		InvoiceType:     domain.InvoiceType(m.InvoiceType),
		SourceID:        m.SourceID,
		OriginalInvoice: m.OriginalInvoice,
		CustomerName:    m.CustomerName,
		CustomerID:      m.CustomerID,
		Amount:          m.Amount,
		RefundMethod:    m.RefundMethod,
		Reason:          m.Reason,
		ReasonDesc:      m.ReasonDesc,
		Status:          domain.RefundStatus(m.Status),
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectedBy:      m.RejectedBy,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRefundAttachment converts a domain attachment to its row model.
func ToModelRefundAttachment(d domain.RefundAttachment) models.RefundAttachment {
	return models.RefundAttachment{
		AttachmentID: d.AttachmentID,
		RefundID:     d.RefundID,
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		FileSize:     d.FileSize,
		UploadedAt:   d.UploadedAt,
	}
}

// ToDomainRefundAttachment converts a row model attachment to its domain form.
func ToDomainRefundAttachment(m models.RefundAttachment) domain.RefundAttachment {
	return domain.RefundAttachment{
		AttachmentID: m.AttachmentID,
		RefundID:     m.RefundID,
		FileName:     m.FileName,
		FileURL:      m.FileURL,
		FileSize:     m.FileSize,
		UploadedAt:   m.UploadedAt,
	}
}