package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, role, employee_code, department, created_at, updated_at`

// UserRepo implements repository.UserRepository on PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter. Pass the pool or a tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create inserts a user. A taken email (or employee code) yields domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.EmployeeCode,
		user.Department, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns the user or nil.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail returns the user or nil. email must already be normalized.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListByRole returns id+name of users with role, sorted by name.
func (r *UserRepo) ListByRole(ctx context.Context, role entity.Role) ([]entity.EmployeeSummary, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM users WHERE role = $1 ORDER BY name, id`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()
	list := make([]entity.EmployeeSummary, 0)
	for rows.Next() {
		var e entity.EmployeeSummary
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// NextEmployeeSeq draws from employee_code_seq.
func (r *UserRepo) NextEmployeeSeq(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('employee_code_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next employee code: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.EmployeeCode,
		&u.Department, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
