package services

import (
	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Refund = NewRefundService(repos.RefundRepo, repos.CreditNoteRepo)
	container.CreditNote = NewCreditNoteService(repos.CreditNoteRepo)
	container.DeliveryRequest = NewDeliveryRequestService(repos.DeliveryRequestRepo)
	container.DeliveryOrder = NewDeliveryOrderService(repos.DeliveryOrderRepo)
	container.ReturnRequest = NewReturnRequestService(repos.ReturnRequestRepo, repos.DeliveryOrderRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.RefundSvcFacade          = (*RefundService)(nil)
	_ portssvc.CreditNoteSvcFacade      = (*CreditNoteService)(nil)
	_ portssvc.DeliveryRequestSvcFacade = (*DeliveryRequestService)(nil)
	_ portssvc.DeliveryOrderSvcFacade   = (*DeliveryOrderService)(nil)
	_ portssvc.ReturnRequestSvcFacade   = (*ReturnRequestService)(nil)
	_ portssvc.UserSvcFacade            = (*UserService)(nil)
)
