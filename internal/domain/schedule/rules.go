// Package schedule holds the shift validity rules (domain service, no I/O).
//
// A proposed shift is valid when the owner id is well formed, the date is YYYY-MM-DD, both
// instants parse, end is after start and the duration lies in [MinShiftDuration, MaxShiftDuration].
// Conflicts between shifts use half-open intervals: [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1,
// so back-to-back shifts do not conflict.
package schedule

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Shifts-api/internal/domain"
)

// Duration bounds, both inclusive.
const (
	MinShiftDuration = 4 * time.Hour
	MaxShiftDuration = 12 * time.Hour
)

// DateLayout is the calendar date format of Shift.Date.
const DateLayout = "2006-01-02"

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Accepted instant layouts. Layouts without a zone are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Proposal is the raw input of a shift creation.
type Proposal struct {
	UserID   string
	Date     string
	StartRaw string
	EndRaw   string
}

// Window is a validated proposal.
type Window struct {
	UserID   string
	Date     string
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// IsDate reports whether s has the YYYY-MM-DD shape and names a real calendar day.
func IsDate(s string) bool {
	if !dateShape.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsID reports whether s is a well formed identity/shift id.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && s != ""
}

// ParseInstant parses a start/end time. ok is false when no layout matches.
func ParseInstant(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Validate runs every check that needs no storage, in order, and returns the first failure.
func (p Proposal) Validate() (Window, error) {
	userID := strings.TrimSpace(p.UserID)
	if !IsID(userID) {
		return Window{}, domain.NewError(domain.ErrInvalidInput, "Valid employee selection required")
	}
	date := strings.TrimSpace(p.Date)
	if !IsDate(date) {
		return Window{}, domain.NewError(domain.ErrInvalidInput, "Valid date required (YYYY-MM-DD)")
	}
	start, okStart := ParseInstant(p.StartRaw)
	end, okEnd := ParseInstant(p.EndRaw)
	if !okStart || !okEnd {
		return Window{}, domain.NewError(domain.ErrInvalidInput, "Valid start and end times required")
	}
	d, err := ValidateDuration(start, end)
	if err != nil {
		return Window{}, err
	}
	return Window{UserID: userID, Date: date, Start: start, End: end, Duration: d}, nil
}

// ValidateDuration checks end > start and the duration bounds.
func ValidateDuration(start, end time.Time) (time.Duration, error) {
	d := end.Sub(start)
	switch {
	case d <= 0:
		return 0, domain.NewError(domain.ErrInvalidDuration, "End time must be after start time")
	case d < MinShiftDuration:
		return 0, domain.Errorf(domain.ErrInvalidDuration, "Shift must be at least 4 hours (currently %sh)", FormatHours(d))
	case d > MaxShiftDuration:
		return 0, domain.NewError(domain.ErrInvalidDuration, "Shift cannot exceed 12 hours")
	}
	return d, nil
}

// Overlaps is the half-open conflict predicate.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Hours converts d to hours rounded to one decimal place.
func Hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(decimal.NewFromInt(int64(time.Hour))).Round(1)
}

// FormatHours renders d as hours with exactly one decimal ("3.0", "11.5").
func FormatHours(d time.Duration) string {
	return Hours(d).StringFixed(1)
}
