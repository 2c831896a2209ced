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
	"github.com/ScaffRent/rental_logistics_app/internal/utils"
)

type RefundService struct {
	refundRepo     portsrepo.RefundRepositoryFacade
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade
}

func NewRefundService(refundRepo portsrepo.RefundRepositoryFacade, creditNoteRepo portsrepo.CreditNoteRepositoryFacade) *RefundService {
	return &RefundService{
		refundRepo:     refundRepo,
		creditNoteRepo: creditNoteRepo,
	}
}

// CreateRefund validates the request in a fixed order, checks the refund
// amount against the approved credit note total for the source invoice, and
// persists the refund with its attachments. The repository re-checks the
// ceiling and assigns the refund number inside its transaction, so the check
// here is the fast path and the transactional one is authoritative.
func (s *RefundService) CreateRefund(ctx context.Context, req dto.CreateRefundRequest, createdBy string) (*domain.Refund, error) {
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
		return nil, apperrors.NewValidationError("Refund amount must be a positive number")
	}

	// Unknown statuses and invoice types are coerced, not rejected.
	status := domain.CoerceRefundStatus(req.Status)
	invoiceType := domain.CoerceInvoiceType(req.InvoiceType)

	creditTotal, err := s.creditNoteRepo.SumApprovedBySource(ctx, req.SourceID)
	if err != nil {
		logger.Error("Failed to sum approved credit notes", slog.String("error", err.Error()), slog.String("source_id", req.SourceID))
		return nil, err
	}
	if req.Amount.GreaterThan(creditTotal) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Refund amount cannot exceed total credited amount (%s)", utils.FormatRM(creditTotal)))
	}

	if status == domain.RefundStatusPendingApproval {
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			return nil, apperrors.NewValidationError("Reason is required when submitting a refund for approval")
		}
	}

	now := time.Now()
	refundID := uuid.NewString()

	attachments := make([]domain.RefundAttachment, len(req.Attachments))
	for i, a := range req.Attachments {
		attachments[i] = domain.RefundAttachment{
			AttachmentID: uuid.NewString(),
			RefundID:     refundID,
			FileName:     a.FileName,
			FileURL:      a.FileURL,
			FileSize:     a.FileSize,
			UploadedAt:   now,
		}
	}

	refund := domain.Refund{
		RefundID:        refundID,
		InvoiceType:     invoiceType,
		SourceID:        req.SourceID,
		OriginalInvoice: req.OriginalInvoice,
		CustomerName:    req.CustomerName,
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		RefundMethod:    req.RefundMethod,
		Reason:          req.Reason,
		ReasonDesc:      req.ReasonDesc,
		Status:          status,
		Attachments:     attachments,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	saved, err := s.refundRepo.SaveRefund(ctx, refund)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to save refund in repository", slog.String("error", err.Error()), slog.String("refund_id", refundID))
		}
		return nil, err
	}

	logger.Info("Refund created",
		slog.String("refund_id", saved.RefundID),
		slog.String("refund_number", saved.RefundNumber),
		slog.String("status", string(saved.Status)))
	return saved, nil
}

// ListRefunds returns all refunds matching the filter, newest first.
func (s *RefundService) ListRefunds(ctx context.Context, filter portsrepo.RefundFilter) ([]domain.Refund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	refunds, err := s.refundRepo.ListRefunds(ctx, filter)
	if err != nil {
		logger.Error("Failed to list refunds from repository", slog.String("error", err.Error()))
		return nil, err
	}
	if refunds == nil {
		return []domain.Refund{}, nil
	}
	return refunds, nil
}

// ApproveRefund transitions a Pending Approval refund to Approved.
func (s *RefundService) ApproveRefund(ctx context.Context, refundID, approvedBy string) (*domain.Refund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	refund, err := s.refundRepo.MarkRefundApproved(ctx, refundID, approvedBy)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to approve refund", slog.String("error", err.Error()), slog.String("refund_id", refundID))
		}
		return nil, err
	}
	logger.Info("Refund approved", slog.String("refund_id", refundID), slog.String("approved_by", approvedBy))
	return refund, nil
}

// RejectRefund transitions a Pending Approval refund to Rejected.
func (s *RefundService) RejectRefund(ctx context.Context, refundID, rejectedBy, rejectionReason string) (*domain.Refund, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if strings.TrimSpace(rejectionReason) == "" {
		return nil, apperrors.NewValidationError("Rejection reason is required")
	}
	refund, err := s.refundRepo.MarkRefundRejected(ctx, refundID, rejectedBy, rejectionReason)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to reject refund", slog.String("error", err.Error()), slog.String("refund_id", refundID))
		}
		return nil, err
	}
	logger.Info("Refund rejected", slog.String("refund_id", refundID), slog.String("rejected_by", rejectedBy))
	return refund, nil
}
