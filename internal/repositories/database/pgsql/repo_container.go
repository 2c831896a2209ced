package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RefundRepo:          newPgxRefundRepository(dbPool),
		CreditNoteRepo:      newPgxCreditNoteRepository(dbPool),
		DeliveryRequestRepo: newPgxDeliveryRequestRepository(dbPool),
		DeliveryOrderRepo:   newPgxDeliveryOrderRepository(dbPool),
		ReturnRequestRepo:   newPgxReturnRequestRepository(dbPool),
		UserRepo:            newPgxUserRepository(dbPool),
	}
}
