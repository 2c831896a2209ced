package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	"github.com/ScaffRent/rental_logistics_app/internal/models"
	"github.com/ScaffRent/rental_logistics_app/internal/utils/mapping"
	"github.com/ScaffRent/rental_logistics_app/internal/utils/pagination"
)

const deliveryRequestColumns = `delivery_request_id, dr_number, customer_name, customer_id, site_address, requested_date, quotation_amount, status, created_at, created_by, last_updated_at, last_updated_by`

const deliveryOrderColumns = `delivery_order_id, do_number, delivery_request_id, customer_name, site_address, scheduled_date, status, acknowledged_by, acknowledged_at, created_at, created_by, last_updated_at, last_updated_by`

const returnRequestColumns = `return_request_id, rr_number, delivery_order_id, customer_name, pickup_address, pickup_date, status, created_at, created_by, last_updated_at, last_updated_by`

// decodeCursor turns an optional page token into a keyset cursor. A bad token
// is a caller error, not a server one.
func decodeCursor(nextToken *string) (*time.Time, *string, error) {
	if nextToken == nil || *nextToken == "" {
		return nil, nil, nil
	}
	createdAt, id, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return &createdAt, &id, nil
}

// PgxDeliveryRequestRepository persists delivery requests and generates
// delivery orders from them.
type PgxDeliveryRequestRepository struct {
	BaseRepository
}

func newPgxDeliveryRequestRepository(pool *pgxpool.Pool) portsrepo.DeliveryRequestRepositoryFacade {
	return &PgxDeliveryRequestRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DeliveryRequestRepositoryFacade = (*PgxDeliveryRequestRepository)(nil)

func scanDeliveryRequest(row pgx.Row) (*models.DeliveryRequest, error) {
	var m models.DeliveryRequest
	err := row.Scan(
		&m.DeliveryRequestID,
		&m.DRNumber,
		&m.CustomerName,
		&m.CustomerID,
		&m.SiteAddress,
		&m.RequestedDate,
		&m.QuotationAmount,
		&m.Status,
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

// SaveDeliveryRequest assigns the next DR number and inserts the request with
// its item lines in one transaction.
func (r *PgxDeliveryRequestRepository) SaveDeliveryRequest(ctx context.Context, request domain.DeliveryRequest) (*domain.DeliveryRequest, error) {
	var lastErr error
	for attempt := 0; attempt < refundNumberRetries; attempt++ {
		saved, err := r.trySaveDeliveryRequest(ctx, request)
		if err == nil {
			return saved, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "delivery_requests_dr_number_key" {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to allocate delivery request number after %d attempts: %w", refundNumberRetries, lastErr)
}

func (r *PgxDeliveryRequestRepository) trySaveDeliveryRequest(ctx context.Context, request domain.DeliveryRequest) (*domain.DeliveryRequest, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, "delivery_requests", "dr_number", "DR")
	if err != nil {
		return nil, err
	}
	request.DRNumber = number

	m := mapping.ToModelDeliveryRequest(request)
	_, err = tx.Exec(ctx, `
		INSERT INTO delivery_requests (`+deliveryRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.DeliveryRequestID, m.DRNumber, m.CustomerName, m.CustomerID, m.SiteAddress,
		m.RequestedDate, m.QuotationAmount, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName != "delivery_requests_dr_number_key" {
			return nil, fmt.Errorf("%w: delivery request with ID %s already exists", apperrors.ErrDuplicate, m.DeliveryRequestID)
		}
		return nil, fmt.Errorf("failed to save delivery request %s: %w", m.DeliveryRequestID, err)
	}

	if len(request.Items) > 0 {
		batch := &pgx.Batch{}
		for _, item := range request.Items {
			batch.Queue(`
				INSERT INTO delivery_request_items (item_id, delivery_request_id, description, quantity)
				VALUES ($1, $2, $3, $4);
			`, item.ItemID, item.DeliveryRequestID, item.Description, item.Quantity)
		}
		br := tx.SendBatch(ctx, batch)
		for range request.Items {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return nil, fmt.Errorf("failed to save delivery request items for %s: %w", m.DeliveryRequestID, err)
			}
		}
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("failed to close item batch for %s: %w", m.DeliveryRequestID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &request, nil
}

// FindDeliveryRequestByID retrieves a delivery request with its items.
func (r *PgxDeliveryRequestRepository) FindDeliveryRequestByID(ctx context.Context, deliveryRequestID string) (*domain.DeliveryRequest, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+deliveryRequestColumns+` FROM delivery_requests WHERE delivery_request_id = $1;
	`, deliveryRequestID)

	m, err := scanDeliveryRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find delivery request %s: %w", deliveryRequestID, err)
	}

	request := mapping.ToDomainDeliveryRequest(*m)
	items, err := r.findItems(ctx, deliveryRequestID)
	if err != nil {
		return nil, err
	}
	request.Items = items
	return &request, nil
}

func (r *PgxDeliveryRequestRepository) findItems(ctx context.Context, deliveryRequestID string) ([]domain.DeliveryRequestItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, delivery_request_id, description, quantity
		FROM delivery_request_items
		WHERE delivery_request_id = $1
		ORDER BY item_id;
	`, deliveryRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for delivery request %s: %w", deliveryRequestID, err)
	}
	defer rows.Close()

	var out []domain.DeliveryRequestItem
	for rows.Next() {
		var im models.DeliveryRequestItem
		if err := rows.Scan(&im.ItemID, &im.DeliveryRequestID, &im.Description, &im.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan delivery request item row: %w", err)
		}
		out = append(out, mapping.ToDomainDeliveryRequestItem(im))
	}
	return out, rows.Err()
}

// ListDeliveryRequests returns a page of delivery requests, newest first.
// Keyset pagination on (created_at, delivery_request_id) keeps pages stable
// while new requests arrive.
func (r *PgxDeliveryRequestRepository) ListDeliveryRequests(ctx context.Context, limit int, nextToken *string) ([]domain.DeliveryRequest, *string, error) {
	cursorTime, cursorID, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + deliveryRequestColumns + ` FROM delivery_requests`
	var args []any
	if cursorTime != nil {
		args = append(args, *cursorTime, *cursorID)
		query += ` WHERE (created_at, delivery_request_id) < ($1, $2)`
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, delivery_request_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list delivery requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.DeliveryRequest
	for rows.Next() {
		m, err := scanDeliveryRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan delivery request row: %w", err)
		}
		requests = append(requests, mapping.ToDomainDeliveryRequest(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.DeliveryRequestID)
		token = &t
	}

	for i := range requests {
		items, err := r.findItems(ctx, requests[i].DeliveryRequestID)
		if err != nil {
			return nil, nil, err
		}
		requests[i].Items = items
	}
	return requests, token, nil
}

// UpdateDeliveryRequestQuote records a quotation and moves New to Quoted.
func (r *PgxDeliveryRequestRepository) UpdateDeliveryRequestQuote(ctx context.Context, deliveryRequestID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE delivery_requests
		SET quotation_amount = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE delivery_request_id = $5 AND status = $6;
	`, amount, string(domain.DeliveryRequestStatusQuoted), updatedAt, updatedBy, deliveryRequestID, string(domain.DeliveryRequestStatusNew))
	if err != nil {
		return fmt.Errorf("failed to quote delivery request %s: %w", deliveryRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.requestTransitionError(ctx, deliveryRequestID, domain.DeliveryRequestStatusNew)
	}
	return nil
}

// CancelDeliveryRequest moves a request in New or Quoted to Cancelled.
func (r *PgxDeliveryRequestRepository) CancelDeliveryRequest(ctx context.Context, deliveryRequestID string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE delivery_requests
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE delivery_request_id = $4 AND status IN ($5, $6);
	`, string(domain.DeliveryRequestStatusCancelled), updatedAt, updatedBy, deliveryRequestID,
		string(domain.DeliveryRequestStatusNew), string(domain.DeliveryRequestStatusQuoted))
	if err != nil {
		return fmt.Errorf("failed to cancel delivery request %s: %w", deliveryRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.requestTransitionError(ctx, deliveryRequestID, domain.DeliveryRequestStatusNew)
	}
	return nil
}

// GenerateDeliveryOrder inserts the delivery order and flips the parent
// request from Quoted to DO Generated in one transaction.
func (r *PgxDeliveryRequestRepository) GenerateDeliveryOrder(ctx context.Context, deliveryRequestID string, order domain.DeliveryOrder) (*domain.DeliveryOrder, error) {
	var lastErr error
	for attempt := 0; attempt < refundNumberRetries; attempt++ {
		saved, err := r.tryGenerateDeliveryOrder(ctx, deliveryRequestID, order)
		if err == nil {
			return saved, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "delivery_orders_do_number_key" {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to allocate delivery order number after %d attempts: %w", refundNumberRetries, lastErr)
}

func (r *PgxDeliveryRequestRepository) tryGenerateDeliveryOrder(ctx context.Context, deliveryRequestID string, order domain.DeliveryOrder) (*domain.DeliveryOrder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE delivery_requests
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE delivery_request_id = $4 AND status = $5;
	`, string(domain.DeliveryRequestStatusDOGenerated), order.CreatedAt, order.CreatedBy,
		deliveryRequestID, string(domain.DeliveryRequestStatusQuoted))
	if err != nil {
		return nil, fmt.Errorf("failed to flip delivery request %s to DO Generated: %w", deliveryRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.requestTransitionError(ctx, deliveryRequestID, domain.DeliveryRequestStatusQuoted)
	}

	number, err := nextDocumentNumber(ctx, tx, "delivery_orders", "do_number", "DO")
	if err != nil {
		return nil, err
	}
	order.DONumber = number

	m := mapping.ToModelDeliveryOrder(order)
	_, err = tx.Exec(ctx, `
		INSERT INTO delivery_orders (`+deliveryOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.DeliveryOrderID, m.DONumber, m.DeliveryRequestID, m.CustomerName, m.SiteAddress,
		m.ScheduledDate, m.Status, m.AcknowledgedBy, m.AcknowledgedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save delivery order %s: %w", m.DeliveryOrderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PgxDeliveryRequestRepository) requestTransitionError(ctx context.Context, deliveryRequestID string, expected domain.DeliveryRequestStatus) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM delivery_requests WHERE delivery_request_id = $1;`, deliveryRequestID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check delivery request %s state: %w", deliveryRequestID, err)
	}
	return fmt.Errorf("%w: delivery request is %s, expected %s", apperrors.ErrConflict, status, expected)
}

// PgxDeliveryOrderRepository reads and acknowledges issued delivery orders.
type PgxDeliveryOrderRepository struct {
	BaseRepository
}

func newPgxDeliveryOrderRepository(pool *pgxpool.Pool) portsrepo.DeliveryOrderRepositoryFacade {
	return &PgxDeliveryOrderRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DeliveryOrderRepositoryFacade = (*PgxDeliveryOrderRepository)(nil)

func scanDeliveryOrder(row pgx.Row) (*models.DeliveryOrder, error) {
	var m models.DeliveryOrder
	err := row.Scan(
		&m.DeliveryOrderID,
		&m.DONumber,
		&m.DeliveryRequestID,
		&m.CustomerName,
		&m.SiteAddress,
		&m.ScheduledDate,
		&m.Status,
		&m.AcknowledgedBy,
		&m.AcknowledgedAt,
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

func (r *PgxDeliveryOrderRepository) FindDeliveryOrderByID(ctx context.Context, deliveryOrderID string) (*domain.DeliveryOrder, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+deliveryOrderColumns+` FROM delivery_orders WHERE delivery_order_id = $1;
	`, deliveryOrderID)

	m, err := scanDeliveryOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find delivery order %s: %w", deliveryOrderID, err)
	}
	order := mapping.ToDomainDeliveryOrder(*m)
	return &order, nil
}

func (r *PgxDeliveryOrderRepository) ListDeliveryOrders(ctx context.Context, limit int, nextToken *string) ([]domain.DeliveryOrder, *string, error) {
	cursorTime, cursorID, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + deliveryOrderColumns + ` FROM delivery_orders`
	var args []any
	if cursorTime != nil {
		args = append(args, *cursorTime, *cursorID)
		query += ` WHERE (created_at, delivery_order_id) < ($1, $2)`
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, delivery_order_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list delivery orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.DeliveryOrder
	for rows.Next() {
		m, err := scanDeliveryOrder(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan delivery order row: %w", err)
		}
		orders = append(orders, mapping.ToDomainDeliveryOrder(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[len(orders)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.DeliveryOrderID)
		token = &t
	}
	return orders, token, nil
}

// AcknowledgeDeliveryOrder moves an Issued order to Acknowledged and flips
// the parent request to Acknowledged in the same transaction.
func (r *PgxDeliveryOrderRepository) AcknowledgeDeliveryOrder(ctx context.Context, deliveryOrderID, acknowledgedBy string, acknowledgedAt time.Time) (*domain.DeliveryOrder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var deliveryRequestID string
	err = tx.QueryRow(ctx, `
		UPDATE delivery_orders
		SET status = $1, acknowledged_by = $2, acknowledged_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE delivery_order_id = $4 AND status = $5
		RETURNING delivery_request_id;
	`, string(domain.DeliveryOrderStatusAcknowledged), acknowledgedBy, acknowledgedAt,
		deliveryOrderID, string(domain.DeliveryOrderStatusIssued)).Scan(&deliveryRequestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.orderTransitionError(ctx, deliveryOrderID)
		}
		return nil, fmt.Errorf("failed to acknowledge delivery order %s: %w", deliveryOrderID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE delivery_requests
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE delivery_request_id = $4 AND status = $5;
	`, string(domain.DeliveryRequestStatusAcknowledged), acknowledgedAt, acknowledgedBy,
		deliveryRequestID, string(domain.DeliveryRequestStatusDOGenerated))
	if err != nil {
		return nil, fmt.Errorf("failed to flip delivery request %s to Acknowledged: %w", deliveryRequestID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindDeliveryOrderByID(ctx, deliveryOrderID)
}

func (r *PgxDeliveryOrderRepository) orderTransitionError(ctx context.Context, deliveryOrderID string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM delivery_orders WHERE delivery_order_id = $1;`, deliveryOrderID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check delivery order %s state: %w", deliveryOrderID, err)
	}
	return fmt.Errorf("%w: delivery order is %s, expected %s", apperrors.ErrConflict, status, domain.DeliveryOrderStatusIssued)
}

// PgxReturnRequestRepository persists return/pickup requests.
type PgxReturnRequestRepository struct {
	BaseRepository
}

func newPgxReturnRequestRepository(pool *pgxpool.Pool) portsrepo.ReturnRequestRepositoryFacade {
	return &PgxReturnRequestRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReturnRequestRepositoryFacade = (*PgxReturnRequestRepository)(nil)

func scanReturnRequest(row pgx.Row) (*models.ReturnRequest, error) {
	var m models.ReturnRequest
	err := row.Scan(
		&m.ReturnRequestID,
		&m.RRNumber,
		&m.DeliveryOrderID,
		&m.CustomerName,
		&m.PickupAddress,
		&m.PickupDate,
		&m.Status,
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

// SaveReturnRequest assigns the next RR number and inserts the request.
func (r *PgxReturnRequestRepository) SaveReturnRequest(ctx context.Context, request domain.ReturnRequest) (*domain.ReturnRequest, error) {
	var lastErr error
	for attempt := 0; attempt < refundNumberRetries; attempt++ {
		saved, err := r.trySaveReturnRequest(ctx, request)
		if err == nil {
			return saved, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "return_requests_rr_number_key" {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to allocate return request number after %d attempts: %w", refundNumberRetries, lastErr)
}

func (r *PgxReturnRequestRepository) trySaveReturnRequest(ctx context.Context, request domain.ReturnRequest) (*domain.ReturnRequest, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, "return_requests", "rr_number", "RR")
	if err != nil {
		return nil, err
	}
	request.RRNumber = number

	m := mapping.ToModelReturnRequest(request)
	_, err = tx.Exec(ctx, `
		INSERT INTO return_requests (`+returnRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.ReturnRequestID, m.RRNumber, m.DeliveryOrderID, m.CustomerName, m.PickupAddress,
		m.PickupDate, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName != "return_requests_rr_number_key" {
			return nil, fmt.Errorf("%w: return request with ID %s already exists", apperrors.ErrDuplicate, m.ReturnRequestID)
		}
		return nil, fmt.Errorf("failed to save return request %s: %w", m.ReturnRequestID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PgxReturnRequestRepository) FindReturnRequestByID(ctx context.Context, returnRequestID string) (*domain.ReturnRequest, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+returnRequestColumns+` FROM return_requests WHERE return_request_id = $1;
	`, returnRequestID)

	m, err := scanReturnRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find return request %s: %w", returnRequestID, err)
	}
	request := mapping.ToDomainReturnRequest(*m)
	return &request, nil
}

func (r *PgxReturnRequestRepository) ListReturnRequests(ctx context.Context, limit int, nextToken *string) ([]domain.ReturnRequest, *string, error) {
	cursorTime, cursorID, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + returnRequestColumns + ` FROM return_requests`
	var args []any
	if cursorTime != nil {
		args = append(args, *cursorTime, *cursorID)
		query += ` WHERE (created_at, return_request_id) < ($1, $2)`
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, return_request_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list return requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ReturnRequest
	for rows.Next() {
		m, err := scanReturnRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan return request row: %w", err)
		}
		requests = append(requests, mapping.ToDomainReturnRequest(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.ReturnRequestID)
		token = &t
	}
	return requests, token, nil
}

// ScheduleReturnRequest records a pickup date and moves Requested to Scheduled.
func (r *PgxReturnRequestRepository) ScheduleReturnRequest(ctx context.Context, returnRequestID string, pickupDate time.Time, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE return_requests
		SET pickup_date = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE return_request_id = $5 AND status = $6;
	`, pickupDate, string(domain.ReturnRequestStatusScheduled), updatedAt, updatedBy,
		returnRequestID, string(domain.ReturnRequestStatusRequested))
	if err != nil {
		return fmt.Errorf("failed to schedule return request %s: %w", returnRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.returnTransitionError(ctx, returnRequestID, domain.ReturnRequestStatusRequested)
	}
	return nil
}

// CollectReturnRequest moves a Scheduled request to Collected.
func (r *PgxReturnRequestRepository) CollectReturnRequest(ctx context.Context, returnRequestID string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE return_requests
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE return_request_id = $4 AND status = $5;
	`, string(domain.ReturnRequestStatusCollected), updatedAt, updatedBy,
		returnRequestID, string(domain.ReturnRequestStatusScheduled))
	if err != nil {
		return fmt.Errorf("failed to collect return request %s: %w", returnRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.returnTransitionError(ctx, returnRequestID, domain.ReturnRequestStatusScheduled)
	}
	return nil
}

// CancelReturnRequest moves a Requested request to Cancelled.
func (r *PgxReturnRequestRepository) CancelReturnRequest(ctx context.Context, returnRequestID string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE return_requests
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE return_request_id = $4 AND status = $5;
	`, string(domain.ReturnRequestStatusCancelled), updatedAt, updatedBy,
		returnRequestID, string(domain.ReturnRequestStatusRequested))
	if err != nil {
		return fmt.Errorf("failed to cancel return request %s: %w", returnRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.returnTransitionError(ctx, returnRequestID, domain.ReturnRequestStatusRequested)
	}
	return nil
}

func (r *PgxReturnRequestRepository) returnTransitionError(ctx context.Context, returnRequestID string, expected domain.ReturnRequestStatus) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM return_requests WHERE return_request_id = $1;`, returnRequestID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check return request %s state: %w", returnRequestID, err)
	}
	return fmt.Errorf("%w: return request is %s, expected %s", apperrors.ErrConflict, status, expected)
}
