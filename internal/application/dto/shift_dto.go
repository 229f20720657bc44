package dto

import "time"

// CreateShiftRequest input of POST /api/shifts. Times are RFC 3339 or YYYY-MM-DDTHH:MM (UTC).
type CreateShiftRequest struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ShiftOwnerResponse the owner's public fields embedded in a shift.
type ShiftOwnerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	EmployeeCode string `json:"employee_code"`
}

// ShiftResponse a shift joined with its owner.
type ShiftResponse struct {
	ID        string             `json:"id"`
	User      ShiftOwnerResponse `json:"user"`
	Date      string             `json:"date"`
	StartTime time.Time          `json:"startTime"`
	EndTime   time.Time          `json:"endTime"`
	Hours     string             `json:"hours" example:"8.0"` // one decimal place
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CreateShiftResponse body of a successful POST /api/shifts.
type CreateShiftResponse struct {
	Message string        `json:"message"`
	Shift   ShiftResponse `json:"shift"`
}

// ShiftListResponse body of GET /api/shifts.
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}
