package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType classifies the invoice a refund or credit note originates from.
type InvoiceType string

const (
	InvoiceTypeDeposit          InvoiceType = "deposit"
	InvoiceTypeMonthlyRental    InvoiceType = "monthlyRental"
	InvoiceTypeAdditionalCharge InvoiceType = "additionalCharge"
)

// CoerceInvoiceType maps an arbitrary string onto a known invoice type.
// Unrecognised values fall back to deposit rather than failing; the
// backoffice UI has always relied on this.
func CoerceInvoiceType(s string) InvoiceType {
	switch InvoiceType(s) {
	case InvoiceTypeDeposit, InvoiceTypeMonthlyRental, InvoiceTypeAdditionalCharge:
		return InvoiceType(s)
	default:
		return InvoiceTypeDeposit
	}
}

// RefundStatus is the workflow state of a refund request.
type RefundStatus string

const (
	RefundStatusDraft           RefundStatus = "Draft"
	RefundStatusPendingApproval RefundStatus = "Pending Approval"
	RefundStatusApproved        RefundStatus = "Approved"
	RefundStatusRejected        RefundStatus = "Rejected"
)

// CoerceRefundStatus maps an arbitrary string onto a creatable refund status.
// Anything other than the two creatable states falls back to Draft.
func CoerceRefundStatus(s string) RefundStatus {
	switch RefundStatus(s) {
	case RefundStatusDraft, RefundStatusPendingApproval:
		return RefundStatus(s)
	default:
		return RefundStatusDraft
	}
}

// RefundAttachment is a file record owned exclusively by one refund.
type RefundAttachment struct {
	AttachmentID string    `json:"attachmentID"`
	RefundID     string    `json:"refundID"`
	FileName     string    `json:"fileName"`
	FileURL      string    `json:"fileUrl"`
	FileSize     int64     `json:"fileSize"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Refund represents a customer refund request against a source invoice.
type Refund struct {
	RefundID        string          `json:"refundID"`
	RefundNumber    string          `json:"refundNumber"` // REF-<year>-<seq3>, unique
	InvoiceType     InvoiceType     `json:"invoiceType"`
	SourceID        string          `json:"sourceId"`
	OriginalInvoice string          `json:"originalInvoice"`
	CustomerName    string          `json:"customerName"`
	CustomerID      string          `json:"customerId"`
	Amount          decimal.Decimal `json:"amount"`
	RefundMethod    *string         `json:"refundMethod,omitempty"`
	Reason          *string         `json:"reason,omitempty"`
	ReasonDesc      *string         `json:"reasonDescription,omitempty"`
	Status          RefundStatus    `json:"status"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	RejectedBy      *string         `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time      `json:"rejectedAt,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	Attachments     []RefundAttachment
	AuditFields
}
