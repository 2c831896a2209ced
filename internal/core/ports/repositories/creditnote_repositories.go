package repositories

import (
	"context"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditNoteFilter holds the optional list filters for credit notes.
type CreditNoteFilter struct {
	Status       *string
	SourceID     *string
	CustomerName *string
}

// CreditNoteRepositoryFacade defines persistence operations for credit notes.
type CreditNoteRepositoryFacade interface {
	// SaveCreditNote assigns the next credit note number for the current
	// year and inserts the credit note in one database transaction.
	SaveCreditNote(ctx context.Context, creditNote domain.CreditNote) (*domain.CreditNote, error)

	// FindCreditNoteByID retrieves a single credit note.
	FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)

	// ListCreditNotes returns all credit notes matching the filter, newest first.
	ListCreditNotes(ctx context.Context, filter CreditNoteFilter) ([]domain.CreditNote, error)

	// SumApprovedBySource sums the amounts of all Approved credit notes
	// linked to the given source invoice.
	SumApprovedBySource(ctx context.Context, sourceID string) (decimal.Decimal, error)

	// MarkCreditNoteApproved transitions a credit note from Pending Approval
	// to Approved. Returns ErrConflict if it is in any other state.
	MarkCreditNoteApproved(ctx context.Context, creditNoteID, approvedBy string) (*domain.CreditNote, error)

	// MarkCreditNoteRejected transitions a credit note from Pending Approval
	// to Rejected. Returns ErrConflict if it is in any other state.
	MarkCreditNoteRejected(ctx context.Context, creditNoteID, rejectedBy, rejectionReason string) (*domain.CreditNote, error)
}
