package dto

import (
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DriverResponse defines the data returned for a driver.
type DriverResponse struct {
	DriverID          string          `json:"driverID"`
	Name              string          `json:"name"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"`
	IsActive          bool            `json:"isActive"`
}

// ToDriverResponse converts a domain.Driver to DriverResponse DTO.
func ToDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		DriverID:          d.DriverID,
		Name:              d.Name,
		CommissionPercent: d.CommissionPercent,
		IsActive:          d.IsActive,
	}
}

// ListDriversResponse wraps the list of drivers.
type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

// ToListDriversResponse converts a slice of domain.Driver to ListDriversResponse DTO.
func ToListDriversResponse(drivers []domain.Driver) ListDriversResponse {
	responses := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		responses[i] = ToDriverResponse(&d)
	}
	return ListDriversResponse{Drivers: responses}
}
