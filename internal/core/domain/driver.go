package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Driver represents a driver in the core domain.
// Driver master data is owned by external processes; settlement logic only reads it.
type Driver struct {
	DriverID          string          `json:"driverID"`          // Primary Key (e.g., UUID)
	Name              string          `json:"name"`              // Full name used for display and code generation
	CommissionPercent decimal.Decimal `json:"commissionPercent"` // Default commission percent for new settlements (e.g., 10 = 10%)
	IsActive          bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
