package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	"github.com/ScaffRent/rental_logistics_app/internal/models"
	"github.com/ScaffRent/rental_logistics_app/internal/utils"
	"github.com/ScaffRent/rental_logistics_app/internal/utils/mapping"
)

// refundNumberRetries bounds how often SaveRefund retries after losing a
// refund number race to a concurrent writer.
const refundNumberRetries = 3

type PgxRefundRepository struct {
	BaseRepository
}

func newPgxRefundRepository(pool *pgxpool.Pool) portsrepo.RefundRepositoryFacade {
	return &PgxRefundRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RefundRepositoryFacade = (*PgxRefundRepository)(nil)

const refundColumns = `refund_id, refund_number, invoice_type, source_id, original_invoice, customer_name, customer_id, amount, refund_method, reason, reason_description, status, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

func scanRefund(row pgx.Row) (*models.Refund, error) {
	var m models.Refund
	err := row.Scan(
		&m.RefundID,
		&m.RefundNumber,
		&m.InvoiceType,
		&m.SourceID,
		&m.OriginalInvoice,
		&m.CustomerName,
		&m.CustomerID,
		&m.Amount,
		&m.RefundMethod,
		&m.Reason,
		&m.ReasonDesc,
		&m.Status,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectedBy,
		&m.RejectedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveRefund assigns the next refund number and inserts the refund with its
// attachments in one transaction. The approved credit total for the source
// invoice is re-checked inside the transaction, closing the check-then-act
// gap against concurrent credit note changes. A unique violation on
// refund_number means a concurrent writer claimed the same number; the whole
// transaction is retried with a freshly computed number.
func (r *PgxRefundRepository) SaveRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error) {
	var lastErr error
	for attempt := 0; attempt < refundNumberRetries; attempt++ {
		saved, err := r.trySaveRefund(ctx, refund)
		if err == nil {
			return saved, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "refunds_refund_number_key" {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to allocate refund number after %d attempts: %w", refundNumberRetries, lastErr)
}

func (r *PgxRefundRepository) trySaveRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var creditTotal decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM credit_notes
		WHERE source_id = $1 AND status = $2;
	`, refund.SourceID, string(domain.CreditNoteStatusApproved)).Scan(&creditTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved credit notes for source %s: %w", refund.SourceID, err)
	}
	if refund.Amount.GreaterThan(creditTotal) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Refund amount cannot exceed total credited amount (%s)", utils.FormatRM(creditTotal)))
	}

	number, err := nextDocumentNumber(ctx, tx, "refunds", "refund_number", "REF")
	if err != nil {
		return nil, err
	}
	refund.RefundNumber = number

	m := mapping.ToModelRefund(refund)
	_, err = tx.Exec(ctx, `
		INSERT INTO refunds (`+refundColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`,
		m.RefundID, m.RefundNumber, m.InvoiceType, m.SourceID, m.OriginalInvoice,
		m.CustomerName, m.CustomerID, m.Amount, m.RefundMethod, m.Reason,
		m.ReasonDesc, m.Status, m.ApprovedBy, m.ApprovedAt, m.RejectedBy,
		m.RejectedAt, m.RejectionReason, m.CreatedAt, m.CreatedBy,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName != "refunds_refund_number_key" {
			return nil, fmt.Errorf("%w: refund with ID %s already exists", apperrors.ErrDuplicate, m.RefundID)
		}
		return nil, fmt.Errorf("failed to save refund %s: %w", m.RefundID, err)
	}

	if len(refund.Attachments) > 0 {
		batch := &pgx.Batch{}
		for _, a := range refund.Attachments {
			am := mapping.ToModelRefundAttachment(a)
			batch.Queue(`
				INSERT INTO refund_attachments (attachment_id, refund_id, file_name, file_url, file_size, uploaded_at)
				VALUES ($1, $2, $3, $4, $5, $6);
			`, am.AttachmentID, am.RefundID, am.FileName, am.FileURL, am.FileSize, am.UploadedAt)
		}
		br := tx.SendBatch(ctx, batch)
		for range refund.Attachments {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return nil, fmt.Errorf("failed to save refund attachments for %s: %w", m.RefundID, err)
			}
		}
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("failed to close attachment batch for %s: %w", m.RefundID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &refund, nil
}

// FindRefundByID retrieves a refund with its attachments.
func (r *PgxRefundRepository) FindRefundByID(ctx context.Context, refundID string) (*domain.Refund, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+refundColumns+` FROM refunds WHERE refund_id = $1;
	`, refundID)

	m, err := scanRefund(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refund %s: %w", refundID, err)
	}

	refund := mapping.ToDomainRefund(*m)
	attachments, err := r.findAttachments(ctx, refundID)
	if err != nil {
		return nil, err
	}
	refund.Attachments = attachments
	return &refund, nil
}

func (r *PgxRefundRepository) findAttachments(ctx context.Context, refundID string) ([]domain.RefundAttachment, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT attachment_id, refund_id, file_name, file_url, file_size, uploaded_at
		FROM refund_attachments
		WHERE refund_id = $1
		ORDER BY uploaded_at;
	`, refundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments for refund %s: %w", refundID, err)
	}
	defer rows.Close()

	var out []domain.RefundAttachment
	for rows.Next() {
		var am models.RefundAttachment
		if err := rows.Scan(&am.AttachmentID, &am.RefundID, &am.FileName, &am.FileURL, &am.FileSize, &am.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment row: %w", err)
		}
		out = append(out, mapping.ToDomainRefundAttachment(am))
	}
	return out, rows.Err()
}

// ListRefunds returns all refunds matching the filter, newest first, each
// with its attachments loaded.
func (r *PgxRefundRepository) ListRefunds(ctx context.Context, filter portsrepo.RefundFilter) ([]domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds`
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.InvoiceType != nil {
		args = append(args, *filter.InvoiceType)
		conditions = append(conditions, fmt.Sprintf("invoice_type = $%d", len(args)))
	}
	if filter.CustomerName != nil {
		args = append(args, "%"+*filter.CustomerName+"%")
		conditions = append(conditions, fmt.Sprintf("customer_name ILIKE $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		m, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan refund row: %w", err)
		}
		refunds = append(refunds, mapping.ToDomainRefund(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range refunds {
		attachments, err := r.findAttachments(ctx, refunds[i].RefundID)
		if err != nil {
			return nil, err
		}
		refunds[i].Attachments = attachments
	}
	return refunds, nil
}

// MarkRefundApproved transitions a Pending Approval refund to Approved.
func (r *PgxRefundRepository) MarkRefundApproved(ctx context.Context, refundID, approvedBy string) (*domain.Refund, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE refunds
		SET status = $1, approved_by = $2, approved_at = now(), last_updated_at = now(), last_updated_by = $2
		WHERE refund_id = $3 AND status = $4;
	`, string(domain.RefundStatusApproved), approvedBy, refundID, string(domain.RefundStatusPendingApproval))
	if err != nil {
		return nil, fmt.Errorf("failed to approve refund %s: %w", refundID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.refundTransitionError(ctx, refundID)
	}
	return r.FindRefundByID(ctx, refundID)
}

// MarkRefundRejected transitions a Pending Approval refund to Rejected.
func (r *PgxRefundRepository) MarkRefundRejected(ctx context.Context, refundID, rejectedBy, rejectionReason string) (*domain.Refund, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE refunds
		SET status = $1, rejected_by = $2, rejected_at = now(), rejection_reason = $3, last_updated_at = now(), last_updated_by = $2
		WHERE refund_id = $4 AND status = $5;
	`, string(domain.RefundStatusRejected), rejectedBy, rejectionReason, refundID, string(domain.RefundStatusPendingApproval))
	if err != nil {
		return nil, fmt.Errorf("failed to reject refund %s: %w", refundID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.refundTransitionError(ctx, refundID)
	}
	return r.FindRefundByID(ctx, refundID)
}

// refundTransitionError distinguishes a missing refund from one in the wrong
// state after a guarded UPDATE matched no rows.
func (r *PgxRefundRepository) refundTransitionError(ctx context.Context, refundID string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM refunds WHERE refund_id = $1;`, refundID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check refund %s state: %w", refundID, err)
	}
	return fmt.Errorf("%w: refund is %s, expected %s", apperrors.ErrConflict, status, domain.RefundStatusPendingApproval)
}
