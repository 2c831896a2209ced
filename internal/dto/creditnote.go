package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
)

// CreateCreditNoteRequest defines the data needed to create a new credit note.
// Status and invoiceType are coerced onto known values by the service.
type CreateCreditNoteRequest struct {
	InvoiceType     string          `json:"invoiceType"`
	SourceID        string          `json:"sourceId"`
	OriginalInvoice string          `json:"originalInvoice"`
	CustomerName    string          `json:"customerName"`
	CustomerID      string          `json:"customerId"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          *string         `json:"reason"`
	Status          string          `json:"status"`
}

// ListCreditNotesParams defines query parameters for listing credit notes.
type ListCreditNotesParams struct {
	Status       string `form:"status"`
	SourceID     string `form:"sourceId"`
	CustomerName string `form:"customerName"`
}

// RejectCreditNoteRequest carries the reviewer's reason for rejection.
type RejectCreditNoteRequest struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

// CreditNoteResponse defines the data returned for a credit note.
type CreditNoteResponse struct {
	CreditNoteID     string                  `json:"id"`
	CreditNoteNumber string                  `json:"creditNoteNumber"`
	InvoiceType      domain.InvoiceType      `json:"invoiceType"`
	SourceID         string                  `json:"sourceId"`
	OriginalInvoice  string                  `json:"originalInvoice"`
	CustomerName     string                  `json:"customerName"`
	CustomerID       string                  `json:"customerId"`
	Amount           float64                 `json:"amount"`
	Reason           *string                 `json:"reason"`
	Status           domain.CreditNoteStatus `json:"status"`
	ApprovedBy       *string                 `json:"approvedBy"`
	ApprovedAt       *string                 `json:"approvedAt"`
	RejectedBy       *string                 `json:"rejectedBy"`
	RejectedAt       *string                 `json:"rejectedAt"`
	RejectionReason  *string                 `json:"rejectionReason"`
	CreatedAt        string                  `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
	LastUpdatedAt    string                  `json:"updatedAt"`
	LastUpdatedBy    string                  `json:"updatedBy"`
}

// ToCreditNoteResponse converts a domain.CreditNote to CreditNoteResponse DTO.
func ToCreditNoteResponse(cn *domain.CreditNote) CreditNoteResponse {
	return CreditNoteResponse{
		CreditNoteID:     cn.CreditNoteID,
		CreditNoteNumber: cn.CreditNoteNumber,
		InvoiceType:      cn.InvoiceType,
		SourceID:         cn.SourceID,
		OriginalInvoice:  cn.OriginalInvoice,
		CustomerName:     cn.CustomerName,
		CustomerID:       cn.CustomerID,
		Amount:           cn.Amount.InexactFloat64(),
		Reason:           cn.Reason,
		Status:           cn.Status,
		ApprovedBy:       cn.ApprovedBy,
		ApprovedAt:       isoTimePtr(cn.ApprovedAt),
		RejectedBy:       cn.RejectedBy,
		RejectedAt:       isoTimePtr(cn.RejectedAt),
		RejectionReason:  cn.RejectionReason,
		CreatedAt:        isoTime(cn.CreatedAt),
		CreatedBy:        cn.CreatedBy,
		LastUpdatedAt:    isoTime(cn.LastUpdatedAt),
		LastUpdatedBy:    cn.LastUpdatedBy,
	}
}

// ToListCreditNoteResponse converts a slice of domain.CreditNote to DTOs.
func ToListCreditNoteResponse(notes []domain.CreditNote) []CreditNoteResponse {
	res := make([]CreditNoteResponse, len(notes))
	for i := range notes {
		res[i] = ToCreditNoteResponse(&notes[i])
	}
	return res
}
