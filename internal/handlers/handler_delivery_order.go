package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
)

// deliveryOrderHandler handles HTTP requests for issued delivery orders.
type deliveryOrderHandler struct {
	orderService portssvc.DeliveryOrderSvcFacade
}

func newDeliveryOrderHandler(ds portssvc.DeliveryOrderSvcFacade) *deliveryOrderHandler {
	return &deliveryOrderHandler{orderService: ds}
}

// registerDeliveryOrderRoutes registers routes related to delivery orders.
func registerDeliveryOrderRoutes(rg *gin.RouterGroup, orderService portssvc.DeliveryOrderSvcFacade, logisticsGuard gin.HandlerFunc) {
	h := newDeliveryOrderHandler(orderService)

	orders := rg.Group("/delivery-orders")
	{
		orders.GET("", h.listDeliveryOrders)
		orders.GET("/:id", h.getDeliveryOrder)
		orders.POST("/:id/acknowledge", logisticsGuard, h.acknowledgeDeliveryOrder)
	}
}

// listDeliveryOrders godoc
// @Summary List delivery orders
// @Description Lists delivery orders newest first with token pagination
// @Tags delivery-orders
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /delivery-orders [get]
func (h *deliveryOrderHandler) listDeliveryOrders(c *gin.Context) {
	var params dto.ListDeliveryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	orders, nextToken, err := h.orderService.ListDeliveryOrders(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list delivery orders")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToListDeliveryOrdersResponse(orders, nextToken))
}

// getDeliveryOrder godoc
// @Summary Get a delivery order
// @Tags delivery-orders
// @Produce json
// @Param id path string true "Delivery order ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any "Delivery order not found"
// @Security BearerAuth
// @Router /delivery-orders/{id} [get]
func (h *deliveryOrderHandler) getDeliveryOrder(c *gin.Context) {
	order, err := h.orderService.GetDeliveryOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve delivery order")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToDeliveryOrderResponse(order))
}

// acknowledgeDeliveryOrder godoc
// @Summary Acknowledge a delivery order
// @Description Records site acknowledgement of an Issued order and completes the parent request
// @Tags delivery-orders
// @Produce json
// @Param id path string true "Delivery order ID"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any "Order already acknowledged"
// @Security BearerAuth
// @Router /delivery-orders/{id}/acknowledge [post]
func (h *deliveryOrderHandler) acknowledgeDeliveryOrder(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := h.orderService.AcknowledgeDeliveryOrder(c.Request.Context(), c.Param("id"), session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to acknowledge delivery order")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToDeliveryOrderResponse(order))
}
