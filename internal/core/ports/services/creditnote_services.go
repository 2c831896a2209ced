package services

import (
	"context"

	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
)

// CreditNoteSvcFacade defines the credit note operations exposed to handlers.
type CreditNoteSvcFacade interface {
	CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, createdBy string) (*domain.CreditNote, error)

	ListCreditNotes(ctx context.Context, filter portsrepo.CreditNoteFilter) ([]domain.CreditNote, error)

	ApproveCreditNote(ctx context.Context, creditNoteID, approvedBy string) (*domain.CreditNote, error)

	RejectCreditNote(ctx context.Context, creditNoteID, rejectedBy, rejectionReason string) (*domain.CreditNote, error)
}
