package mapping

import (
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/models"
)

// ToModelCreditNote converts a domain CreditNote to a model CreditNote.
func ToModelCreditNote(d domain.CreditNote) models.CreditNote {
	return models.CreditNote{
		CreditNoteID:     d.CreditNoteID,
		CreditNoteNumber: d.CreditNoteNumber,
		InvoiceType:      string(d.InvoiceType),
		SourceID:         d.SourceID,
		OriginalInvoice:  d.OriginalInvoice,
		CustomerName:     d.CustomerName,
		CustomerID:       d.CustomerID,
		Amount:           d.Amount,
		Reason:           d.Reason,
		Status:           models.CreditNoteStatus(d.Status),
		ApprovedBy:       d.ApprovedBy,
		ApprovedAt:       d.ApprovedAt,
		RejectedBy:       d.RejectedBy,
		RejectedAt:       d.RejectedAt,
		RejectionReason:  d.RejectionReason,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditNote converts a model CreditNote to a domain CreditNote.
func ToDomainCreditNote(m models.CreditNote) domain.CreditNote {
	return domain.CreditNote{
		CreditNoteID:     m.CreditNoteID,
		CreditNoteNumber: m.CreditNoteNumber,
		InvoiceType:      domain.InvoiceType(m.InvoiceType),
		SourceID:         m.SourceID,
		OriginalInvoice:  m.OriginalInvoice,
		CustomerName:     m.CustomerName,
		CustomerID:       m.CustomerID,
		Amount:           m.Amount,
		Reason:           m.Reason,
		Status:           domain.CreditNoteStatus(m.Status),
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		RejectedBy:       m.RejectedBy,
		RejectedAt:       m.RejectedAt,
		RejectionReason:  m.RejectionReason,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditNoteSlice converts a slice of credit note row models.
func ToDomainCreditNoteSlice(ms []models.CreditNote) []domain.CreditNote {
	ds := make([]domain.CreditNote, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditNote(m)
	}
	return ds
}
