package services

import (
	"context"

	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
)

// RefundSvcFacade defines the refund operations exposed to handlers.
type RefundSvcFacade interface {
	// CreateRefund validates and persists a new refund request. createdBy
	// is the audit label resolved from the caller's session.
	CreateRefund(ctx context.Context, req dto.CreateRefundRequest, createdBy string) (*domain.Refund, error)

	// ListRefunds returns all refunds matching the filter, newest first.
	ListRefunds(ctx context.Context, filter portsrepo.RefundFilter) ([]domain.Refund, error)

	// ApproveRefund transitions a Pending Approval refund to Approved.
	ApproveRefund(ctx context.Context, refundID, approvedBy string) (*domain.Refund, error)

	// RejectRefund transitions a Pending Approval refund to Rejected.
	RejectRefund(ctx context.Context, refundID, rejectedBy, rejectionReason string) (*domain.Refund, error)
}
