package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
)

// deliveryRequestHandler handles HTTP requests for the delivery request workflow.
type deliveryRequestHandler struct {
	requestService portssvc.DeliveryRequestSvcFacade
}

func newDeliveryRequestHandler(ds portssvc.DeliveryRequestSvcFacade) *deliveryRequestHandler {
	return &deliveryRequestHandler{requestService: ds}
}

// registerDeliveryRequestRoutes registers routes related to delivery requests.
// Write routes sit behind the logistics role guard; reads stay open to every
// backoffice role.
func registerDeliveryRequestRoutes(rg *gin.RouterGroup, requestService portssvc.DeliveryRequestSvcFacade, logisticsGuard gin.HandlerFunc) {
	h := newDeliveryRequestHandler(requestService)

	requests := rg.Group("/delivery-requests")
	{
		requests.POST("", logisticsGuard, h.createDeliveryRequest)
		requests.GET("", h.listDeliveryRequests)
		requests.GET("/:id", h.getDeliveryRequest)
		requests.POST("/:id/quote", logisticsGuard, h.quoteDeliveryRequest)
		requests.POST("/:id/generate-do", logisticsGuard, h.generateDeliveryOrder)
		requests.POST("/:id/cancel", logisticsGuard, h.cancelDeliveryRequest)
	}
}

// createDeliveryRequest godoc
// @Summary Create a delivery request
// @Description Opens a delivery request for rental equipment with at least one item line
// @Tags delivery-requests
// @Accept json
// @Produce json
// @Param request body dto.CreateDeliveryRequestRequest true "Delivery request details"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any "Validation failure"
// @Security BearerAuth
// @Router /delivery-requests [post]
func (h *deliveryRequestHandler) createDeliveryRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDeliveryRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDeliveryRequest", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	request, err := h.requestService.CreateDeliveryRequest(c.Request.Context(), req, session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to create delivery request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToDeliveryRequestResponse(request))
}

// listDeliveryRequests godoc
// @Summary List delivery requests
// @Description Lists delivery requests newest first with token pagination
// @Tags delivery-requests
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /delivery-requests [get]
func (h *deliveryRequestHandler) listDeliveryRequests(c *gin.Context) {
	var params dto.ListDeliveryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	requests, nextToken, err := h.requestService.ListDeliveryRequests(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list delivery requests")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToListDeliveryRequestsResponse(requests, nextToken))
}

// getDeliveryRequest godoc
// @Summary Get a delivery request
// @Tags delivery-requests
// @Produce json
// @Param id path string true "Delivery request ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any "Delivery request not found"
// @Security BearerAuth
// @Router /delivery-requests/{id} [get]
func (h *deliveryRequestHandler) getDeliveryRequest(c *gin.Context) {
	request, err := h.requestService.GetDeliveryRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve delivery request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToDeliveryRequestResponse(request))
}

// quoteDeliveryRequest godoc
// @Summary Quote a delivery request
// @Description Records a quotation amount and moves the request from New to Quoted
// @Tags delivery-requests
// @Accept json
// @Produce json
// @Param id path string true "Delivery request ID"
// @Param quote body dto.QuoteDeliveryRequestRequest true "Quotation amount"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any "Request not in New state"
// @Security BearerAuth
// @Router /delivery-requests/{id}/quote [post]
func (h *deliveryRequestHandler) quoteDeliveryRequest(c *gin.Context) {
	var req dto.QuoteDeliveryRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	request, err := h.requestService.QuoteDeliveryRequest(c.Request.Context(), c.Param("id"), req.QuotationAmount, session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to quote delivery request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToDeliveryRequestResponse(request))
}

// generateDeliveryOrder godoc
// @Summary Generate a delivery order
// @Description Issues a delivery order from a Quoted request and moves the request to DO Generated
// @Tags delivery-requests
// @Produce json
// @Param id path string true "Delivery request ID"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any "Request not in Quoted state"
// @Security BearerAuth
// @Router /delivery-requests/{id}/generate-do [post]
func (h *deliveryRequestHandler) generateDeliveryOrder(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := h.requestService.GenerateDeliveryOrder(c.Request.Context(), c.Param("id"), session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to generate delivery order")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToDeliveryOrderResponse(order))
}

// cancelDeliveryRequest godoc
// @Summary Cancel a delivery request
// @Description Moves a New or Quoted request to Cancelled
// @Tags delivery-requests
// @Produce json
// @Param id path string true "Delivery request ID"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any "Request already progressed past Quoted"
// @Security BearerAuth
// @Router /delivery-requests/{id}/cancel [post]
func (h *deliveryRequestHandler) cancelDeliveryRequest(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	request, err := h.requestService.CancelDeliveryRequest(c.Request.Context(), c.Param("id"), session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to cancel delivery request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToDeliveryRequestResponse(request))
}
