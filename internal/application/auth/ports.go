package auth

import (
	"context"

	"github.com/jhoicas/Shifts-api/internal/domain/entity"
)

// EmployeeCache caches the employee directory. A miss is (nil, false, nil).
type EmployeeCache interface {
	Get(ctx context.Context) ([]entity.EmployeeSummary, bool, error)
	Set(ctx context.Context, employees []entity.EmployeeSummary) error
	Invalidate(ctx context.Context) error
}

// NopEmployeeCache never hits.
type NopEmployeeCache struct{}

func (NopEmployeeCache) Get(context.Context) ([]entity.EmployeeSummary, bool, error) {
	return nil, false, nil
}
func (NopEmployeeCache) Set(context.Context, []entity.EmployeeSummary) error { return nil }
func (NopEmployeeCache) Invalidate(context.Context) error                    { return nil }
