package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertCurrency is the currency all alert targets are tracked in; display
// preferences do not change alert math.
const AlertCurrency = "USD"

// AlertType selects the trigger rule for a price alert.
type AlertType string

const (
	AlertAbsolute           AlertType = "absolute"
	AlertPercentageDrop     AlertType = "percentage_drop"
	AlertPercentageIncrease AlertType = "percentage_increase"
)

type PriceAlert struct {
	ID       uint
	UserID   uint
	ItemName string

	Type        AlertType
	TargetPrice decimal.Decimal

	// PercentageThreshold and BasePrice are set only for percentage alerts.
	// BasePrice is frozen at creation and never recomputed.
	PercentageThreshold decimal.Decimal
	BasePrice           decimal.Decimal

	// CurrentPrice is the last observed price, refreshed on every
	// non-triggering sweep pass for display.
	CurrentPrice decimal.Decimal

	// IsActive transitions true -> false exactly once, on trigger.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// AlertSpec is a parsed alert request, produced from user input and the
// price observed at that instant.
type AlertSpec struct {
	Type                AlertType
	TargetPrice         decimal.Decimal
	PercentageThreshold decimal.Decimal
	BasePrice           decimal.Decimal
}

// Evaluation is the outcome of checking one alert against a price.
type Evaluation struct {
	Triggered bool
	Reason    string
}
