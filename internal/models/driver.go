package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Driver represents a row of the drivers table. Driver records are maintained
// by external processes; this application only reads them.
type Driver struct {
	DriverID          string          `db:"driver_id"`
	Name              string          `db:"name"`
	CommissionPercent decimal.Decimal `db:"commission_percent"` // Default percent offered when a wizard session starts
	IsActive          bool            `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
