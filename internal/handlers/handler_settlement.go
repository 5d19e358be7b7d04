package handlers

import (
	"context"
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

// settlementHandler handles HTTP requests for persisted settlements.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
	tripService       portssvc.TripSvcFacade
}

func newSettlementHandler(settlementService portssvc.SettlementSvcFacade, tripService portssvc.TripSvcFacade) *settlementHandler {
	return &settlementHandler{
		settlementService: settlementService,
		tripService:       tripService,
	}
}

// RegisterSettlementRoutes sets up the settlement read and lifecycle routes.
func RegisterSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade, tripService portssvc.TripSvcFacade) {
	h := newSettlementHandler(settlementService, tripService)

	settlements := rg.Group("/settlements")
	{
		settlements.GET("", h.listSettlements)
		settlements.GET("/:settlementID", h.getSettlement)
		settlements.GET("/:settlementID/trips", h.getSettlementTrips)
		settlements.POST("/:settlementID/close", h.closeSettlement)
		settlements.POST("/:settlementID/pay", h.markSettlementPaid)
	}
}

// listSettlements godoc
// @Summary List settlements
// @Description Lists settlements, newest first, optionally filtered by driver.
// @Tags settlements
// @Produce json
// @Param driverID query string false "Filter by driver"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListSettlementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	var params dto.ListSettlementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	settlements, err := h.settlementService.ListSettlements(c.Request.Context(), params.DriverID, params.Limit, params.Offset)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list settlements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list settlements"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListSettlementsResponse(settlements))
}

// getSettlement godoc
// @Summary Get settlement
// @Description Retrieves a settlement with its totals and linked trip IDs.
// @Tags settlements
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settlements/{settlementID} [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	settlementID := c.Param("settlementID")

	settlement, err := h.settlementService.GetSettlementByID(c.Request.Context(), settlementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Settlement not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get settlement", slog.String("settlement_id", settlementID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get settlement"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// getSettlementTrips godoc
// @Summary Get settlement trips
// @Description Retrieves the trips linked to a settlement with their expenses.
// @Tags settlements
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Success 200 {array} dto.TripResponse
// @Failure 500 {object} ErrorResponse
// @Router /settlements/{settlementID}/trips [get]
func (h *settlementHandler) getSettlementTrips(c *gin.Context) {
	settlementID := c.Param("settlementID")

	trips, err := h.tripService.GetSettlementTrips(c.Request.Context(), settlementID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get settlement trips", slog.String("settlement_id", settlementID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get settlement trips"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTripResponses(trips))
}

// closeSettlement godoc
// @Summary Close a settlement
// @Description Transitions an OPEN settlement to CLOSED.
// @Tags settlements
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Settlement not OPEN"
// @Router /settlements/{settlementID}/close [post]
func (h *settlementHandler) closeSettlement(c *gin.Context) {
	h.transition(c, h.settlementService.CloseSettlement)
}

// markSettlementPaid godoc
// @Summary Mark a settlement paid
// @Description Transitions a CLOSED settlement to PAID.
// @Tags settlements
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Settlement not CLOSED"
// @Router /settlements/{settlementID}/pay [post]
func (h *settlementHandler) markSettlementPaid(c *gin.Context) {
	h.transition(c, h.settlementService.MarkSettlementPaid)
}

func (h *settlementHandler) transition(c *gin.Context, fn func(ctx context.Context, settlementID string, userID string) (*domain.Settlement, error)) {
	settlementID := c.Param("settlementID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settlement, err := fn(c.Request.Context(), settlementID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Settlement not found"})
		case errors.Is(err, services.ErrInvalidStatusTransition):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to transition settlement", slog.String("settlement_id", settlementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update settlement"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}
