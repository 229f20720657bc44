package repository

import (
	"context"

	"github.com/jhoicas/Shifts-api/internal/domain/entity"
)

// UserRepository is the persistence port for identities.
// Lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListByRole returns id+name of users with the role, sorted by name.
	ListByRole(ctx context.Context, role entity.Role) ([]entity.EmployeeSummary, error)
	// NextEmployeeSeq atomically reserves the next employee code number (1, 2, ...).
	NextEmployeeSeq(ctx context.Context) (int64, error)
}
