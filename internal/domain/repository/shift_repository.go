package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Shifts-api/internal/domain/entity"
)

// ShiftFilter narrows List. Empty fields do not filter.
type ShiftFilter struct {
	UserID string
	Date   string
}

// ShiftRepository is the persistence port for shifts.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	// GetWithOwner returns the shift joined with its owner, or nil.
	GetWithOwner(ctx context.Context, id string) (*entity.ShiftWithOwner, error)
	// FindOverlapping returns one shift of userID on date whose [start,end) intersects
	// [start,end), or nil.
	FindOverlapping(ctx context.Context, userID, date string, start, end time.Time) (*entity.Shift, error)
	// List returns shifts joined with owners, ordered by date then start time.
	List(ctx context.Context, filter ShiftFilter) ([]*entity.ShiftWithOwner, error)
	// Delete removes one shift; it reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
