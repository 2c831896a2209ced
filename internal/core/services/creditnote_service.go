package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
)

type CreditNoteService struct {
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade
}

func NewCreditNoteService(creditNoteRepo portsrepo.CreditNoteRepositoryFacade) *CreditNoteService {
	return &CreditNoteService{creditNoteRepo: creditNoteRepo}
}

// CreateCreditNote validates and persists a new credit note. Status and
// invoice type coerce the same way refunds do.
func (s *CreditNoteService) CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest, createdBy string) (*domain.CreditNote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	required := []struct {
		name  string
		value string
	}{
		{"invoiceType", req.InvoiceType},
		{"sourceId", req.SourceID},
		{"originalInvoice", req.OriginalInvoice},
		{"customerName", req.CustomerName},
		{"customerId", req.CustomerID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Missing required field: %s", f.name))
		}
	}

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("Credit note amount must be a positive number")
	}

	status := domain.CoerceCreditNoteStatus(req.Status)
	if status == domain.CreditNoteStatusPendingApproval {
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			return nil, apperrors.NewValidationError("Reason is required when submitting a credit note for approval")
		}
	}

	now := time.Now()
	creditNote := domain.CreditNote{
		CreditNoteID:    uuid.NewString(),
		InvoiceType:     domain.CoerceInvoiceType(req.InvoiceType),
		SourceID:        req.SourceID,
		OriginalInvoice: req.OriginalInvoice,
		CustomerName:    req.CustomerName,
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		Reason:          req.Reason,
		Status:          status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	saved, err := s.creditNoteRepo.SaveCreditNote(ctx, creditNote)
	if err != nil {
		logger.Error("Failed to save credit note in repository", slog.String("error", err.Error()), slog.String("credit_note_id", creditNote.CreditNoteID))
		return nil, err
	}

	logger.Info("Credit note created",
		slog.String("credit_note_id", saved.CreditNoteID),
		slog.String("credit_note_number", saved.CreditNoteNumber))
	return saved, nil
}

// ListCreditNotes returns all credit notes matching the filter, newest first.
func (s *CreditNoteService) ListCreditNotes(ctx context.Context, filter portsrepo.CreditNoteFilter) ([]domain.CreditNote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	notes, err := s.creditNoteRepo.ListCreditNotes(ctx, filter)
	if err != nil {
		logger.Error("Failed to list credit notes from repository", slog.String("error", err.Error()))
		return nil, err
	}
	if notes == nil {
		return []domain.CreditNote{}, nil
	}
	return notes, nil
}

// ApproveCreditNote transitions a Pending Approval credit note to Approved.
// Approval raises the refund ceiling for the note's source invoice.
func (s *CreditNoteService) ApproveCreditNote(ctx context.Context, creditNoteID, approvedBy string) (*domain.CreditNote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	note, err := s.creditNoteRepo.MarkCreditNoteApproved(ctx, creditNoteID, approvedBy)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to approve credit note", slog.String("error", err.Error()), slog.String("credit_note_id", creditNoteID))
		}
		return nil, err
	}
	logger.Info("Credit note approved", slog.String("credit_note_id", creditNoteID), slog.String("approved_by", approvedBy))
	return note, nil
}

// RejectCreditNote transitions a Pending Approval credit note to Rejected.
func (s *CreditNoteService) RejectCreditNote(ctx context.Context, creditNoteID, rejectedBy, rejectionReason string) (*domain.CreditNote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if strings.TrimSpace(rejectionReason) == "" {
		return nil, apperrors.NewValidationError("Rejection reason is required")
	}
	note, err := s.creditNoteRepo.MarkCreditNoteRejected(ctx, creditNoteID, rejectedBy, rejectionReason)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to reject credit note", slog.String("error", err.Error()), slog.String("credit_note_id", creditNoteID))
		}
		return nil, err
	}
	logger.Info("Credit note rejected", slog.String("credit_note_id", creditNoteID), slog.String("rejected_by", rejectedBy))
	return note, nil
}
