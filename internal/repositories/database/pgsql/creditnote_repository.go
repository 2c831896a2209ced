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
	"github.com/ScaffRent/rental_logistics_app/internal/utils/mapping"
)

type PgxCreditNoteRepository struct {
	BaseRepository
}

func newPgxCreditNoteRepository(pool *pgxpool.Pool) portsrepo.CreditNoteRepositoryFacade {
	return &PgxCreditNoteRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditNoteRepositoryFacade = (*PgxCreditNoteRepository)(nil)

const creditNoteColumns = `credit_note_id, credit_note_number, invoice_type, source_id, original_invoice, customer_name, customer_id, amount, reason, status, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

func scanCreditNote(row pgx.Row) (*models.CreditNote, error) {
	var m models.CreditNote
	err := row.Scan(
		&m.CreditNoteID,
		&m.CreditNoteNumber,
		&m.InvoiceType,
		&m.SourceID,
		&m.OriginalInvoice,
		&m.CustomerName,
		&m.CustomerID,
		&m.Amount,
		&m.Reason,
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

// SaveCreditNote assigns the next credit note number for the current year and
// inserts the note in one transaction, retrying when a concurrent writer
// claims the same number.
func (r *PgxCreditNoteRepository) SaveCreditNote(ctx context.Context, creditNote domain.CreditNote) (*domain.CreditNote, error) {
	var lastErr error
	for attempt := 0; attempt < refundNumberRetries; attempt++ {
		saved, err := r.trySaveCreditNote(ctx, creditNote)
		if err == nil {
			return saved, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "credit_notes_credit_note_number_key" {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to allocate credit note number after %d attempts: %w", refundNumberRetries, lastErr)
}

func (r *PgxCreditNoteRepository) trySaveCreditNote(ctx context.Context, creditNote domain.CreditNote) (*domain.CreditNote, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, "credit_notes", "credit_note_number", "CN")
	if err != nil {
		return nil, err
	}
	creditNote.CreditNoteNumber = number

	m := mapping.ToModelCreditNote(creditNote)
	_, err = tx.Exec(ctx, `
		INSERT INTO credit_notes (`+creditNoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`,
		m.CreditNoteID, m.CreditNoteNumber, m.InvoiceType, m.SourceID, m.OriginalInvoice,
		m.CustomerName, m.CustomerID, m.Amount, m.Reason, m.Status,
		m.ApprovedBy, m.ApprovedAt, m.RejectedBy, m.RejectedAt, m.RejectionReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName != "credit_notes_credit_note_number_key" {
			return nil, fmt.Errorf("%w: credit note with ID %s already exists", apperrors.ErrDuplicate, m.CreditNoteID)
		}
		return nil, fmt.Errorf("failed to save credit note %s: %w", m.CreditNoteID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &creditNote, nil
}

// FindCreditNoteByID retrieves a single credit note.
func (r *PgxCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+creditNoteColumns+` FROM credit_notes WHERE credit_note_id = $1;
	`, creditNoteID)

	m, err := scanCreditNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit note %s: %w", creditNoteID, err)
	}
	note := mapping.ToDomainCreditNote(*m)
	return &note, nil
}

// ListCreditNotes returns all credit notes matching the filter, newest first.
func (r *PgxCreditNoteRepository) ListCreditNotes(ctx context.Context, filter portsrepo.CreditNoteFilter) ([]domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes`
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SourceID != nil {
		args = append(args, *filter.SourceID)
		conditions = append(conditions, fmt.Sprintf("source_id = $%d", len(args)))
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
		return nil, fmt.Errorf("failed to list credit notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.CreditNote
	for rows.Next() {
		m, err := scanCreditNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit note row: %w", err)
		}
		notes = append(notes, mapping.ToDomainCreditNote(*m))
	}
	return notes, rows.Err()
}

// SumApprovedBySource sums the amounts of all Approved credit notes linked to
// the given source invoice. The result is the refund ceiling for that source.
func (r *PgxCreditNoteRepository) SumApprovedBySource(ctx context.Context, sourceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM credit_notes
		WHERE source_id = $1 AND status = $2;
	`, sourceID, string(domain.CreditNoteStatusApproved)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved credit notes for source %s: %w", sourceID, err)
	}
	return total, nil
}

// MarkCreditNoteApproved transitions a Pending Approval credit note to Approved.
func (r *PgxCreditNoteRepository) MarkCreditNoteApproved(ctx context.Context, creditNoteID, approvedBy string) (*domain.CreditNote, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE credit_notes
		SET status = $1, approved_by = $2, approved_at = now(), last_updated_at = now(), last_updated_by = $2
		WHERE credit_note_id = $3 AND status = $4;
	`, string(domain.CreditNoteStatusApproved), approvedBy, creditNoteID, string(domain.CreditNoteStatusPendingApproval))
	if err != nil {
		return nil, fmt.Errorf("failed to approve credit note %s: %w", creditNoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.creditNoteTransitionError(ctx, creditNoteID)
	}
	return r.FindCreditNoteByID(ctx, creditNoteID)
}

// MarkCreditNoteRejected transitions a Pending Approval credit note to Rejected.
func (r *PgxCreditNoteRepository) MarkCreditNoteRejected(ctx context.Context, creditNoteID, rejectedBy, rejectionReason string) (*domain.CreditNote, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE credit_notes
		SET status = $1, rejected_by = $2, rejected_at = now(), rejection_reason = $3, last_updated_at = now(), last_updated_by = $2
		WHERE credit_note_id = $4 AND status = $5;
	`, string(domain.CreditNoteStatusRejected), rejectedBy, rejectionReason, creditNoteID, string(domain.CreditNoteStatusPendingApproval))
	if err != nil {
		return nil, fmt.Errorf("failed to reject credit note %s: %w", creditNoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.creditNoteTransitionError(ctx, creditNoteID)
	}
	return r.FindCreditNoteByID(ctx, creditNoteID)
}

func (r *PgxCreditNoteRepository) creditNoteTransitionError(ctx context.Context, creditNoteID string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM credit_notes WHERE credit_note_id = $1;`, creditNoteID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check credit note %s state: %w", creditNoteID, err)
	}
	return fmt.Errorf("%w: credit note is %s, expected %s", apperrors.ErrConflict, status, domain.CreditNoteStatusPendingApproval)
}
