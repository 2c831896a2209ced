package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNoteStatus mirrors domain.CreditNoteStatus at the persistence layer.
type CreditNoteStatus string

// CreditNote is the row model for the credit_notes table.
type CreditNote struct {
	CreditNoteID     string           `db:"credit_note_id"`
	CreditNoteNumber string           `db:"credit_note_number"`
	InvoiceType      string           `db:"invoice_type"`
	SourceID         string           `db:"source_id"`
	OriginalInvoice  string           `db:"original_invoice"`
	CustomerName     string           `db:"customer_name"`
	CustomerID       string           `db:"customer_id"`
	Amount           decimal.Decimal  `db:"amount"`
	Reason           *string          `db:"reason"`
	Status           CreditNoteStatus `db:"status"`
	ApprovedBy       *string          `db:"approved_by"`
	ApprovedAt       *time.Time       `db:"approved_at"`
	RejectedBy       *string          `db:"rejected_by"`
	RejectedAt       *time.Time       `db:"rejected_at"`
	RejectionReason  *string          `db:"rejection_reason"`
	AuditFields
}
