package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundStatus mirrors domain.RefundStatus at the persistence layer.
type RefundStatus string

// Refund is the row model for the refunds table.
type Refund struct {
	RefundID        string          `db:"refund_id"`
	RefundNumber    string          `db:"refund_number"`
	InvoiceType     string          `db:"invoice_type"`
	SourceID        string          `db:"source_id"`
	OriginalInvoice string          `db:"original_invoice"`
	CustomerName    string          `db:"customer_name"`
	CustomerID      string          `db:"customer_id"`
	Amount          decimal.Decimal `db:"amount"`
	RefundMethod    *string         `db:"refund_method"`
	Reason          *string         `db:"reason"`
	ReasonDesc      *string         `db:"reason_description"`
	Status          RefundStatus    `db:"status"`
	ApprovedBy      *string         `db:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at"`
	RejectedBy      *string         `db:"rejected_by"`
	RejectedAt      *time.Time      `db:"rejected_at"`
	RejectionReason *string         `db:"rejection_reason"`
	AuditFields
}

// RefundAttachment is the row model for the refund_attachments table.
type RefundAttachment struct {
	AttachmentID string    `db:"attachment_id"`
	RefundID     string    `db:"refund_id"`
	FileName     string    `db:"file_name"`
	FileURL      string    `db:"file_url"`
	FileSize     int64     `db:"file_size"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
