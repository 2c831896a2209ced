package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
)

// refundHandler handles HTTP requests related to refunds.
type refundHandler struct {
	refundService portssvc.RefundSvcFacade
}

func newRefundHandler(rs portssvc.RefundSvcFacade) *refundHandler {
	return &refundHandler{refundService: rs}
}

// registerRefundRoutes registers routes related to refunds. Approval and
// rejection sit behind the stricter approverGuard.
func registerRefundRoutes(rg *gin.RouterGroup, refundService portssvc.RefundSvcFacade, approverGuard gin.HandlerFunc) {
	h := newRefundHandler(refundService)

	refunds := rg.Group("/refunds")
	{
		refunds.GET("", h.listRefunds)
		refunds.POST("", h.createRefund)
		refunds.POST("/:id/approve", approverGuard, h.approveRefund)
		refunds.POST("/:id/reject", approverGuard, h.rejectRefund)
	}
}

// listRefunds godoc
// @Summary List refunds
// @Description Lists all refunds, newest first, with optional filters
// @Tags refunds
// @Produce json
// @Param status query string false "Exact status match"
// @Param customerName query string false "Customer name substring match"
// @Param invoiceType query string false "Exact invoice type match"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any "Unauthorized"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 500 {object} map[string]any "Failed to list refunds"
// @Security BearerAuth
// @Router /refunds [get]
func (h *refundHandler) listRefunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRefundsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	filter := portsrepo.RefundFilter{}
	if params.Status != "" {
		filter.Status = &params.Status
	}
	if params.CustomerName != "" {
		filter.CustomerName = &params.CustomerName
	}
	if params.InvoiceType != "" {
		filter.InvoiceType = &params.InvoiceType
	}

	refunds, err := h.refundService.ListRefunds(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list refunds", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list refunds")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToListRefundResponse(refunds))
}

// createRefund godoc
// @Summary Create a refund
// @Description Creates a refund against a source invoice, capped by its approved credit note total
// @Tags refunds
// @Accept json
// @Produce json
// @Param refund body dto.CreateRefundRequest true "Refund details"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any "Validation failure"
// @Failure 401 {object} map[string]any "Unauthorized"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 500 {object} map[string]any "Failed to create refund"
// @Security BearerAuth
// @Router /refunds [post]
func (h *refundHandler) createRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRefund", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	refund, err := h.refundService.CreateRefund(c.Request.Context(), req, session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to create refund")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToRefundResponse(refund))
}

// approveRefund godoc
// @Summary Approve a refund
// @Description Transitions a Pending Approval refund to Approved
// @Tags refunds
// @Produce json
// @Param id path string true "Refund ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any "Refund not found"
// @Failure 409 {object} map[string]any "Refund not pending approval"
// @Security BearerAuth
// @Router /refunds/{id}/approve [post]
func (h *refundHandler) approveRefund(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	refund, err := h.refundService.ApproveRefund(c.Request.Context(), c.Param("id"), session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to approve refund")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToRefundResponse(refund))
}

// rejectRefund godoc
// @Summary Reject a refund
// @Description Transitions a Pending Approval refund to Rejected with a reason
// @Tags refunds
// @Accept json
// @Produce json
// @Param id path string true "Refund ID"
// @Param rejection body dto.RejectRefundRequest true "Rejection reason"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any "Missing rejection reason"
// @Failure 404 {object} map[string]any "Refund not found"
// @Failure 409 {object} map[string]any "Refund not pending approval"
// @Security BearerAuth
// @Router /refunds/{id}/reject [post]
func (h *refundHandler) rejectRefund(c *gin.Context) {
	var req dto.RejectRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	refund, err := h.refundService.RejectRefund(c.Request.Context(), c.Param("id"), session.CreatedByLabel(), req.RejectionReason)
	if err != nil {
		respondServiceError(c, err, "Failed to reject refund")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToRefundResponse(refund))
}
