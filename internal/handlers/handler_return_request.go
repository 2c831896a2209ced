package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
)

// returnRequestHandler handles HTTP requests for the return/pickup workflow.
type returnRequestHandler struct {
	returnService portssvc.ReturnRequestSvcFacade
}

func newReturnRequestHandler(rs portssvc.ReturnRequestSvcFacade) *returnRequestHandler {
	return &returnRequestHandler{returnService: rs}
}

// registerReturnRequestRoutes registers routes related to return requests.
func registerReturnRequestRoutes(rg *gin.RouterGroup, returnService portssvc.ReturnRequestSvcFacade, logisticsGuard gin.HandlerFunc) {
	h := newReturnRequestHandler(returnService)

	returns := rg.Group("/return-requests")
	{
		returns.POST("", logisticsGuard, h.createReturnRequest)
		returns.GET("", h.listReturnRequests)
		returns.GET("/:id", h.getReturnRequest)
		returns.POST("/:id/schedule", logisticsGuard, h.scheduleReturnRequest)
		returns.POST("/:id/collect", logisticsGuard, h.collectReturnRequest)
		returns.POST("/:id/cancel", logisticsGuard, h.cancelReturnRequest)
	}
}

// createReturnRequest godoc
// @Summary Create a return request
// @Description Opens a pickup request against an existing delivery order
// @Tags return-requests
// @Accept json
// @Produce json
// @Param request body dto.CreateReturnRequestRequest true "Return request details"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any "Validation failure"
// @Security BearerAuth
// @Router /return-requests [post]
func (h *returnRequestHandler) createReturnRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReturnRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createReturnRequest", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	request, err := h.returnService.CreateReturnRequest(c.Request.Context(), req, session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to create return request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToReturnRequestResponse(request))
}

// listReturnRequests godoc
// @Summary List return requests
// @Description Lists return requests newest first with token pagination
// @Tags return-requests
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /return-requests [get]
func (h *returnRequestHandler) listReturnRequests(c *gin.Context) {
	var params dto.ListDeliveryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	requests, nextToken, err := h.returnService.ListReturnRequests(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list return requests")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToListReturnRequestsResponse(requests, nextToken))
}

// getReturnRequest godoc
// @Summary Get a return request
// @Tags return-requests
// @Produce json
// @Param id path string true "Return request ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any "Return request not found"
// @Security BearerAuth
// @Router /return-requests/{id} [get]
func (h *returnRequestHandler) getReturnRequest(c *gin.Context) {
	request, err := h.returnService.GetReturnRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve return request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToReturnRequestResponse(request))
}

// scheduleReturnRequest godoc
// @Summary Schedule a return request
// @Description Records a pickup date and moves the request from Requested to Scheduled
// @Tags return-requests
// @Accept json
// @Produce json
// @Param id path string true "Return request ID"
// @Param schedule body dto.ScheduleReturnRequestRequest true "Pickup date"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any "Request not in Requested state"
// @Security BearerAuth
// @Router /return-requests/{id}/schedule [post]
func (h *returnRequestHandler) scheduleReturnRequest(c *gin.Context) {
	var req dto.ScheduleReturnRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	request, err := h.returnService.ScheduleReturnRequest(c.Request.Context(), c.Param("id"), req.PickupDate, session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to schedule return request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToReturnRequestResponse(request))
}

// collectReturnRequest godoc
// @Summary Mark a return request collected
// @Description Moves a Scheduled request to Collected
// @Tags return-requests
// @Produce json
// @Param id path string true "Return request ID"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any "Request not in Scheduled state"
// @Security BearerAuth
// @Router /return-requests/{id}/collect [post]
func (h *returnRequestHandler) collectReturnRequest(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	request, err := h.returnService.CollectReturnRequest(c.Request.Context(), c.Param("id"), session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to collect return request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToReturnRequestResponse(request))
}

// cancelReturnRequest godoc
// @Summary Cancel a return request
// @Description Moves a Requested request to Cancelled
// @Tags return-requests
// @Produce json
// @Param id path string true "Return request ID"
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any "Request already scheduled or collected"
// @Security BearerAuth
// @Router /return-requests/{id}/cancel [post]
func (h *returnRequestHandler) cancelReturnRequest(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	request, err := h.returnService.CancelReturnRequest(c.Request.Context(), c.Param("id"), session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to cancel return request")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToReturnRequestResponse(request))
}
