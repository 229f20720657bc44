package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is a bounded interval assigned to one user on one calendar date.
// Shifts are created and deleted, never updated in place.
type Shift struct {
	ID        string
	UserID    string
	Date      string // YYYY-MM-DD, no timezone
	StartTime time.Time
	EndTime   time.Time
	Hours     decimal.Decimal // EndTime-StartTime in hours, one decimal place
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftWithOwner is a shift joined with its owner's public fields.
type ShiftWithOwner struct {
	Shift
	Owner Owner
}
