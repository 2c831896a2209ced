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

// creditNoteHandler handles HTTP requests related to credit notes.
type creditNoteHandler struct {
	creditNoteService portssvc.CreditNoteSvcFacade
}

func newCreditNoteHandler(cs portssvc.CreditNoteSvcFacade) *creditNoteHandler {
	return &creditNoteHandler{creditNoteService: cs}
}

// registerCreditNoteRoutes registers routes related to credit notes. Approval
// and rejection sit behind the stricter approverGuard.
func registerCreditNoteRoutes(rg *gin.RouterGroup, creditNoteService portssvc.CreditNoteSvcFacade, approverGuard gin.HandlerFunc) {
	h := newCreditNoteHandler(creditNoteService)

	creditNotes := rg.Group("/credit-notes")
	{
		creditNotes.GET("", h.listCreditNotes)
		creditNotes.POST("", h.createCreditNote)
		creditNotes.POST("/:id/approve", approverGuard, h.approveCreditNote)
		creditNotes.POST("/:id/reject", approverGuard, h.rejectCreditNote)
	}
}

// listCreditNotes godoc
// @Summary List credit notes
// @Description Lists all credit notes, newest first, with optional filters
// @Tags credit-notes
// @Produce json
// @Param status query string false "Exact status match"
// @Param sourceId query string false "Exact source invoice match"
// @Param customerName query string false "Customer name substring match"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /credit-notes [get]
func (h *creditNoteHandler) listCreditNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCreditNotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	filter := portsrepo.CreditNoteFilter{}
	if params.Status != "" {
		filter.Status = &params.Status
	}
	if params.SourceID != "" {
		filter.SourceID = &params.SourceID
	}
	if params.CustomerName != "" {
		filter.CustomerName = &params.CustomerName
	}

	notes, err := h.creditNoteService.ListCreditNotes(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list credit notes", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list credit notes")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToListCreditNoteResponse(notes))
}

// createCreditNote godoc
// @Summary Create a credit note
// @Description Creates a credit note against a source invoice
// @Tags credit-notes
// @Accept json
// @Produce json
// @Param creditNote body dto.CreateCreditNoteRequest true "Credit note details"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any "Validation failure"
// @Security BearerAuth
// @Router /credit-notes [post]
func (h *creditNoteHandler) createCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCreditNote", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	note, err := h.creditNoteService.CreateCreditNote(c.Request.Context(), req, session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to create credit note")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToCreditNoteResponse(note))
}

// approveCreditNote godoc
// @Summary Approve a credit note
// @Description Transitions a Pending Approval credit note to Approved, raising the refund ceiling for its source invoice
// @Tags credit-notes
// @Produce json
// @Param id path string true "Credit note ID"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /credit-notes/{id}/approve [post]
func (h *creditNoteHandler) approveCreditNote(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	note, err := h.creditNoteService.ApproveCreditNote(c.Request.Context(), c.Param("id"), session.CreatedByLabel())
	if err != nil {
		respondServiceError(c, err, "Failed to approve credit note")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToCreditNoteResponse(note))
}

// rejectCreditNote godoc
// @Summary Reject a credit note
// @Description Transitions a Pending Approval credit note to Rejected with a reason
// @Tags credit-notes
// @Accept json
// @Produce json
// @Param id path string true "Credit note ID"
// @Param rejection body dto.RejectCreditNoteRequest true "Rejection reason"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /credit-notes/{id}/reject [post]
func (h *creditNoteHandler) rejectCreditNote(c *gin.Context) {
	var req dto.RejectCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	note, err := h.creditNoteService.RejectCreditNote(c.Request.Context(), c.Param("id"), session.CreatedByLabel(), req.RejectionReason)
	if err != nil {
		respondServiceError(c, err, "Failed to reject credit note")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToCreditNoteResponse(note))
}
