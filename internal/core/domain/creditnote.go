package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNoteStatus is the workflow state of a credit note.
type CreditNoteStatus string

const (
	CreditNoteStatusDraft           CreditNoteStatus = "Draft"
	CreditNoteStatusPendingApproval CreditNoteStatus = "Pending Approval"
	CreditNoteStatusApproved        CreditNoteStatus = "Approved"
	CreditNoteStatusRejected        CreditNoteStatus = "Rejected"
)

// CoerceCreditNoteStatus maps an arbitrary string onto a creatable credit note
// status, defaulting to Draft.
func CoerceCreditNoteStatus(s string) CreditNoteStatus {
	switch CreditNoteStatus(s) {
	case CreditNoteStatusDraft, CreditNoteStatusPendingApproval:
		return CreditNoteStatus(s)
	default:
		return CreditNoteStatusDraft
	}
}

// CreditNote credits part of a source invoice back to a customer. Approved
// credit notes against a source invoice form the ceiling for refunds.
type CreditNote struct {
	CreditNoteID     string           `json:"creditNoteID"`
	CreditNoteNumber string           `json:"creditNoteNumber"` // CN-<year>-<seq3>, unique
	InvoiceType      InvoiceType      `json:"invoiceType"`
	SourceID         string           `json:"sourceId"`
	OriginalInvoice  string           `json:"originalInvoice"`
	CustomerName     string           `json:"customerName"`
	CustomerID       string           `json:"customerId"`
	Amount           decimal.Decimal  `json:"amount"`
	Reason           *string          `json:"reason,omitempty"`
	Status           CreditNoteStatus `json:"status"`
	ApprovedBy       *string          `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time       `json:"approvedAt,omitempty"`
	RejectedBy       *string          `json:"rejectedBy,omitempty"`
	RejectedAt       *time.Time       `json:"rejectedAt,omitempty"`
	RejectionReason  *string          `json:"rejectionReason,omitempty"`
	AuditFields
}
