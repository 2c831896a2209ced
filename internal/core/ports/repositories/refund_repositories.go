package repositories

import (
	"context"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
)

// RefundFilter holds the optional list filters for refunds. Status and
// InvoiceType match exactly; CustomerName is a substring match.
type RefundFilter struct {
	Status       *string
	CustomerName *string
	InvoiceType  *string
}

// RefundRepositoryFacade defines persistence operations for refunds.
type RefundRepositoryFacade interface {
	// SaveRefund assigns the next refund number for the current year and
	// inserts the refund together with its attachments in one database
	// transaction. The credit ceiling for the refund's source invoice is
	// re-checked inside the same transaction.
	SaveRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error)

	// FindRefundByID retrieves a refund and its attachments.
	FindRefundByID(ctx context.Context, refundID string) (*domain.Refund, error)

	// ListRefunds returns all refunds matching the filter, newest first.
	ListRefunds(ctx context.Context, filter RefundFilter) ([]domain.Refund, error)

	// MarkRefundApproved transitions a refund from Pending Approval to
	// Approved. Returns ErrConflict if the refund is in any other state.
	MarkRefundApproved(ctx context.Context, refundID, approvedBy string) (*domain.Refund, error)

	// MarkRefundRejected transitions a refund from Pending Approval to
	// Rejected. Returns ErrConflict if the refund is in any other state.
	MarkRefundRejected(ctx context.Context, refundID, rejectedBy, rejectionReason string) (*domain.Refund, error)
}
