package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
)

// AttachmentInput is one attachment supplied on refund creation. Missing
// fields coerce to empty string / zero rather than failing the request.
type AttachmentInput struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
}

// CreateRefundRequest defines the data needed to create a new refund.
// Status and invoiceType are accepted as free strings; the service coerces
// them onto known values instead of rejecting unknown ones.
type CreateRefundRequest struct {
	InvoiceType     string            `json:"invoiceType"`
	SourceID        string            `json:"sourceId"`
	OriginalInvoice string            `json:"originalInvoice"`
	CustomerName    string            `json:"customerName"`
	CustomerID      string            `json:"customerId"`
	Amount          decimal.Decimal   `json:"amount"`
	RefundMethod    *string           `json:"refundMethod"`
	Reason          *string           `json:"reason"`
	ReasonDesc      *string           `json:"reasonDescription"`
	Status          string            `json:"status"`
	Attachments     []AttachmentInput `json:"attachments"`
}

// ListRefundsParams defines query parameters for listing refunds.
type ListRefundsParams struct {
	Status       string `form:"status"`
	CustomerName string `form:"customerName"`
	InvoiceType  string `form:"invoiceType"`
}

// RejectRefundRequest carries the reviewer's reason for rejecting a refund.
type RejectRefundRequest struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

// RefundAttachmentResponse is the JSON-safe shape of one attachment.
type RefundAttachmentResponse struct {
	AttachmentID string `json:"attachmentID"`
	FileName     string `json:"fileName"`
	FileURL      string `json:"fileUrl"`
	FileSize     int64  `json:"fileSize"`
	UploadedAt   string `json:"uploadedAt"`
}

// RefundResponse defines the data returned for a refund. Amount is a plain
// JSON number and all timestamps are ISO-8601 strings.
type RefundResponse struct {
	RefundID        string                     `json:"id"`
	RefundNumber    string                     `json:"refundNumber"`
	InvoiceType     domain.InvoiceType         `json:"invoiceType"`
	SourceID        string                     `json:"sourceId"`
	OriginalInvoice string                     `json:"originalInvoice"`
	CustomerName    string                     `json:"customerName"`
	CustomerID      string                     `json:"customerId"`
	Amount          float64                    `json:"amount"`
	RefundMethod    *string                    `json:"refundMethod"`
	Reason          *string                    `json:"reason"`
	ReasonDesc      *string                    `json:"reasonDescription"`
	Status          domain.RefundStatus        `json:"status"`
	ApprovedBy      *string                    `json:"approvedBy"`
	ApprovedAt      *string                    `json:"approvedAt"`
	RejectedBy      *string                    `json:"rejectedBy"`
	RejectedAt      *string                    `json:"rejectedAt"`
	RejectionReason *string                    `json:"rejectionReason"`
	Attachments     []RefundAttachmentResponse `json:"attachments"`
	CreatedAt       string                     `json:"createdAt"`
	CreatedBy       string                     `json:"createdBy"`
	LastUpdatedAt   string                     `json:"updatedAt"`
	LastUpdatedBy   string                     `json:"updatedBy"`
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func isoTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := isoTime(*t)
	return &s
}

// ToRefundResponse converts a domain.Refund to RefundResponse DTO.
func ToRefundResponse(r *domain.Refund) RefundResponse {
	attachments := make([]RefundAttachmentResponse, len(r.Attachments))
	for i, a := range r.Attachments {
		attachments[i] = RefundAttachmentResponse{
			AttachmentID: a.AttachmentID,
			FileName:     a.FileName,
			FileURL:      a.FileURL,
			FileSize:     a.FileSize,
			UploadedAt:   isoTime(a.UploadedAt),
		}
	}
	return RefundResponse{
		RefundID:        r.RefundID,
		RefundNumber:    r.RefundNumber,
		InvoiceType:     r.InvoiceType,
		SourceID:        r.SourceID,
		OriginalInvoice: r.OriginalInvoice,
		CustomerName:    r.CustomerName,
		CustomerID:      r.CustomerID,
		Amount:          r.Amount.InexactFloat64(),
		RefundMethod:    r.RefundMethod,
		Reason:          r.Reason,
		ReasonDesc:      r.ReasonDesc,
		Status:          r.Status,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      isoTimePtr(r.ApprovedAt),
		RejectedBy:      r.RejectedBy,
		RejectedAt:      isoTimePtr(r.RejectedAt),
		RejectionReason: r.RejectionReason,
		Attachments:     attachments,
		CreatedAt:       isoTime(r.CreatedAt),
		CreatedBy:       r.CreatedBy,
		LastUpdatedAt:   isoTime(r.LastUpdatedAt),
		LastUpdatedBy:   r.LastUpdatedBy,
	}
}

// ToListRefundResponse converts a slice of domain.Refund to response DTOs.
func ToListRefundResponse(refunds []domain.Refund) []RefundResponse {
	res := make([]RefundResponse, len(refunds))
	for i := range refunds {
		res[i] = ToRefundResponse(&refunds[i])
	}
	return res
}
