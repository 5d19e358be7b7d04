package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/dto"
	"github.com/ptairone/logistica-flash-sub000/internal/middleware"
)

// driverHandler handles HTTP requests for driver master data and debts.
type driverHandler struct {
	driverService portssvc.DriverSvcFacade
	debtService   portssvc.DebtSvcFacade
}

func newDriverHandler(driverService portssvc.DriverSvcFacade, debtService portssvc.DebtSvcFacade) *driverHandler {
	return &driverHandler{
		driverService: driverService,
		debtService:   debtService,
	}
}

// registerDriverRoutes sets up the driver read routes.
func registerDriverRoutes(rg *gin.RouterGroup, driverService portssvc.DriverSvcFacade, debtService portssvc.DebtSvcFacade) {
	h := newDriverHandler(driverService, debtService)

	drivers := rg.Group("/drivers")
	{
		drivers.GET("", h.listDrivers)
		drivers.GET("/:driverID", h.getDriver)
		drivers.GET("/:driverID/debts", h.listOpenDebts)
	}
}

// listDrivers godoc
// @Summary List active drivers
// @Description Lists the active drivers available for a settlement, each with its default commission percent.
// @Tags drivers
// @Produce json
// @Success 200 {object} dto.ListDriversResponse
// @Failure 500 {object} ErrorResponse
// @Router /drivers [get]
func (h *driverHandler) listDrivers(c *gin.Context) {
	drivers, err := h.driverService.ListActiveDrivers(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list drivers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list drivers"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListDriversResponse(drivers))
}

// getDriver godoc
// @Summary Get driver
// @Description Retrieves a driver by ID.
// @Tags drivers
// @Produce json
// @Param driverID path string true "Driver ID"
// @Success 200 {object} dto.DriverResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /drivers/{driverID} [get]
func (h *driverHandler) getDriver(c *gin.Context) {
	driverID := c.Param("driverID")

	driver, err := h.driverService.GetDriverByID(c.Request.Context(), driverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Driver not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get driver", slog.String("driver_id", driverID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get driver"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDriverResponse(driver))
}

// listOpenDebts godoc
// @Summary List a driver's open debts
// @Description Lists the driver's debts with a positive outstanding balance.
// @Tags drivers
// @Produce json
// @Param driverID path string true "Driver ID"
// @Success 200 {array} dto.DebtResponse
// @Failure 500 {object} ErrorResponse
// @Router /drivers/{driverID}/debts [get]
func (h *driverHandler) listOpenDebts(c *gin.Context) {
	driverID := c.Param("driverID")

	debts, err := h.debtService.ListOpenDebts(c.Request.Context(), driverID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list open debts", slog.String("driver_id", driverID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list open debts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponses(debts))
}
