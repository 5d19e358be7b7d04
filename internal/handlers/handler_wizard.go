package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/core/services"
	"github.com/ptairone/logistica-flash-sub000/internal/dto"
	"github.com/ptairone/logistica-flash-sub000/internal/middleware"
)

// wizardHandler handles HTTP requests for the settlement wizard.
type wizardHandler struct {
	wizardService portssvc.WizardSvcFacade
}

func newWizardHandler(wizardService portssvc.WizardSvcFacade) *wizardHandler {
	return &wizardHandler{wizardService: wizardService}
}

// RegisterWizardRoutes sets up the settlement wizard routes.
func RegisterWizardRoutes(rg *gin.RouterGroup, wizardService portssvc.WizardSvcFacade) {
	h := newWizardHandler(wizardService)

	wizard := rg.Group("/settlement-wizard")
	{
		wizard.POST("", h.startSession)
		wizard.GET("/:sessionID", h.getSession)
		wizard.DELETE("/:sessionID", h.abandonSession)
		wizard.PUT("/:sessionID/driver", h.changeDriver)
		wizard.POST("/:sessionID/advance", h.advance)
		wizard.POST("/:sessionID/back", h.back)
		wizard.POST("/:sessionID/trips", h.toggleTrip)
		wizard.POST("/:sessionID/expenses", h.reviewExpense)
		wizard.POST("/:sessionID/adjustments", h.addAdjustment)
		wizard.DELETE("/:sessionID/adjustments/:adjustmentID", h.removeAdjustment)
		wizard.POST("/:sessionID/debts", h.toggleDebt)
		wizard.PUT("/:sessionID/debts/amount", h.setDebtAmount)
		wizard.PUT("/:sessionID/calculation", h.setCalculationInputs)
		wizard.POST("/:sessionID/submit", h.submit)
	}
}

// respondWizardError maps wizard service errors to HTTP responses.
func respondWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Wizard session not found"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, services.ErrUnknownTrip),
		errors.Is(err, services.ErrUnknownExpense),
		errors.Is(err, services.ErrUnknownDebt),
		errors.Is(err, services.ErrUnknownAdjustment):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrStageGuard),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrAdjustmentAmountNotPositive),
		errors.Is(err, services.ErrNotAtPreview):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Wizard operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func respondWizardState(c *gin.Context, draft *domain.SettlementDraft, err error) {
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWizardStateResponse(draft))
}

// startSession godoc
// @Summary Start a settlement wizard session
// @Description Opens a wizard session for a driver, fetching the driver's eligible trips and open debts.
// @Tags wizard
// @Accept json
// @Produce json
// @Param session body dto.StartSessionRequest true "Driver to settle"
// @Success 201 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settlement-wizard [post]
func (h *wizardHandler) startSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	draft, err := h.wizardService.StartSession(c.Request.Context(), req.DriverID, userID)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWizardStateResponse(draft))
}

// getSession godoc
// @Summary Get wizard session state
// @Tags wizard
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID} [get]
func (h *wizardHandler) getSession(c *gin.Context) {
	draft, err := h.wizardService.GetSession(c.Request.Context(), c.Param("sessionID"))
	respondWizardState(c, draft, err)
}

// abandonSession godoc
// @Summary Abandon a wizard session
// @Description Discards the session and its draft; nothing is persisted.
// @Tags wizard
// @Param sessionID path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID} [delete]
func (h *wizardHandler) abandonSession(c *gin.Context) {
	if err := h.wizardService.AbandonSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondWizardError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// changeDriver godoc
// @Summary Change the session's driver
// @Description Rebinds the session to another driver, discarding all stage-local state.
// @Tags wizard
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param driver body dto.ChangeDriverRequest true "New driver"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/driver [put]
func (h *wizardHandler) changeDriver(c *gin.Context) {
	var req dto.ChangeDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	draft, err := h.wizardService.ChangeDriver(c.Request.Context(), c.Param("sessionID"), req.DriverID)
	respondWizardState(c, draft, err)
}

// advance godoc
// @Summary Advance to the next wizard stage
// @Tags wizard
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Stage requirements not met"
// @Router /settlement-wizard/{sessionID}/advance [post]
func (h *wizardHandler) advance(c *gin.Context) {
	draft, err := h.wizardService.Advance(c.Request.Context(), c.Param("sessionID"))
	respondWizardState(c, draft, err)
}

// back godoc
// @Summary Go back to the previous wizard stage
// @Tags wizard
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/back [post]
func (h *wizardHandler) back(c *gin.Context) {
	draft, err := h.wizardService.Back(c.Request.Context(), c.Param("sessionID"))
	respondWizardState(c, draft, err)
}

// toggleTrip godoc
// @Summary Select or deselect an eligible trip
// @Tags wizard
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param trip body dto.ToggleTripRequest true "Trip toggle"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/trips [post]
func (h *wizardHandler) toggleTrip(c *gin.Context) {
	var req dto.ToggleTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	draft, err := h.wizardService.ToggleTrip(c.Request.Context(), c.Param("sessionID"), req.TripID, *req.Selected)
	respondWizardState(c, draft, err)
}

// reviewExpense godoc
// @Summary Review an expense
// @Description Applies an APPROVE, REJECT or ADJUST action to an expense on a selected trip.
// @Tags wizard
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param review body dto.ReviewExpenseRequest true "Review action"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/expenses [post]
func (h *wizardHandler) reviewExpense(c *gin.Context) {
	var req dto.ReviewExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	ctx := c.Request.Context()
	sessionID := c.Param("sessionID")

	var draft *domain.SettlementDraft
	var err error
	switch req.Action {
	case "APPROVE":
		draft, err = h.wizardService.ApproveExpense(ctx, sessionID, req.ExpenseID)
	case "REJECT":
		draft, err = h.wizardService.RejectExpense(ctx, sessionID, req.ExpenseID)
	case "ADJUST":
		if req.Amount == nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Amount is required for ADJUST"})
			return
		}
		draft, err = h.wizardService.AdjustExpense(ctx, sessionID, req.ExpenseID, *req.Amount)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown review action"})
		return
	}
	respondWizardState(c, draft, err)
}

// addAdjustment godoc
// @Summary Add a manual adjustment
// @Tags wizard
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param adjustment body dto.AddAdjustmentRequest true "Adjustment entry"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/adjustments [post]
func (h *wizardHandler) addAdjustment(c *gin.Context) {
	var req dto.AddAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	draft, err := h.wizardService.AddAdjustment(c.Request.Context(), c.Param("sessionID"), req)
	respondWizardState(c, draft, err)
}

// removeAdjustment godoc
// @Summary Remove an adjustment entry
// @Tags wizard
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param adjustmentID path string true "Adjustment ID"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/adjustments/{adjustmentID} [delete]
func (h *wizardHandler) removeAdjustment(c *gin.Context) {
	draft, err := h.wizardService.RemoveAdjustment(c.Request.Context(), c.Param("sessionID"), c.Param("adjustmentID"))
	respondWizardState(c, draft, err)
}

// toggleDebt godoc
// @Summary Select or deselect a debt for deduction
// @Description Selecting a debt defaults the deduction to its full outstanding balance.
// @Tags wizard
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param debt body dto.ToggleDebtRequest true "Debt toggle"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/debts [post]
func (h *wizardHandler) toggleDebt(c *gin.Context) {
	var req dto.ToggleDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	draft, err := h.wizardService.ToggleDebt(c.Request.Context(), c.Param("sessionID"), req.DebtID, *req.Selected)
	respondWizardState(c, draft, err)
}

// setDebtAmount godoc
// @Summary Set the deduction amount for a debt
// @Description Stores the requested amount clamped to [0, debt balance].
// @Tags wizard
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param amount body dto.SetDebtAmountRequest true "Deduction amount"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/debts/amount [put]
func (h *wizardHandler) setDebtAmount(c *gin.Context) {
	var req dto.SetDebtAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	draft, err := h.wizardService.SetDebtAmount(c.Request.Context(), c.Param("sessionID"), req.DebtID, req.Amount)
	respondWizardState(c, draft, err)
}

// setCalculationInputs godoc
// @Summary Set calculation inputs
// @Description Updates commission percent, advances, discounts and observations. Omitted fields keep their value.
// @Tags wizard
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param inputs body dto.CalculationInputsRequest true "Calculation inputs"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /settlement-wizard/{sessionID}/calculation [put]
func (h *wizardHandler) setCalculationInputs(c *gin.Context) {
	var req dto.CalculationInputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}
	draft, err := h.wizardService.SetCalculationInputs(c.Request.Context(), c.Param("sessionID"), req)
	respondWizardState(c, draft, err)
}

// submit godoc
// @Summary Submit the wizard session
// @Description Finalizes the draft as a settlement. Only permitted from the preview stage.
// @Tags wizard
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 201 {object} dto.SettlementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Submit already in flight or trips already settled"
// @Failure 422 {object} ErrorResponse "Not at the preview stage"
// @Router /settlement-wizard/{sessionID}/submit [post]
func (h *wizardHandler) submit(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settlement, err := h.wizardService.Submit(c.Request.Context(), c.Param("sessionID"), userID)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}
