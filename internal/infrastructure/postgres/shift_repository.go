package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

const shiftColumns = `s.id, s.user_id, s.date::text, s.start_time, s.end_time, s.hours, s.created_at, s.updated_at`

const shiftWithOwnerSelect = `
	SELECT ` + shiftColumns + `, u.name, u.email, u.employee_code
	FROM shifts s
	JOIN users u ON u.id = s.user_id`

// ShiftRepo implements repository.ShiftRepository on PostgreSQL (pool or tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository builds the adapter. Pass the pool or a tx.
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create inserts a shift. The shifts_no_overlap exclusion constraint surfaces as domain.ErrConflict.
func (r *ShiftRepo) Create(ctx context.Context, s *entity.Shift) error {
	query := `
		INSERT INTO shifts (id, user_id, date, start_time, end_time, hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.Date, s.StartTime, s.EndTime, s.Hours, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetByID returns the shift or nil.
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	var s entity.Shift
	err := r.q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.id = $1`, id).Scan(
		&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.Hours, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	normalizeTimes(&s)
	return &s, nil
}

// GetWithOwner returns the shift joined with its owner, or nil.
func (r *ShiftRepo) GetWithOwner(ctx context.Context, id string) (*entity.ShiftWithOwner, error) {
	sw, err := scanShiftWithOwner(r.q.QueryRow(ctx, shiftWithOwnerSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift with owner: %w", err)
	}
	return sw, nil
}

// FindOverlapping returns one shift of userID on date with start_time < end AND end_time > start.
func (r *ShiftRepo) FindOverlapping(ctx context.Context, userID, date string, start, end time.Time) (*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		WHERE s.user_id = $1 AND s.date = $2 AND s.start_time < $4 AND s.end_time > $3
		ORDER BY s.start_time
		LIMIT 1`
	var s entity.Shift
	err := r.q.QueryRow(ctx, query, userID, date, start, end).Scan(
		&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.Hours, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlapping shift: %w", err)
	}
	normalizeTimes(&s)
	return &s, nil
}

// List returns joined shifts matching filter, ordered by date then start time.
func (r *ShiftRepo) List(ctx context.Context, filter repository.ShiftFilter) ([]*entity.ShiftWithOwner, error) {
	var (
		where []string
		args  []any
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("s.user_id = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		where = append(where, fmt.Sprintf("s.date = $%d", len(args)))
	}
	query := shiftWithOwnerSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.date, s.start_time, s.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ShiftWithOwner, 0)
	for rows.Next() {
		sw, err := scanShiftWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, sw)
	}
	return list, rows.Err()
}

// Delete removes the shift; false when no row matched.
func (r *ShiftRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete shift: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanShiftWithOwner(row pgx.Row) (*entity.ShiftWithOwner, error) {
	var sw entity.ShiftWithOwner
	err := row.Scan(
		&sw.ID, &sw.UserID, &sw.Date, &sw.StartTime, &sw.EndTime, &sw.Hours, &sw.CreatedAt, &sw.UpdatedAt,
		&sw.Owner.Name, &sw.Owner.Email, &sw.Owner.EmployeeCode,
	)
	if err != nil {
		return nil, err
	}
	sw.Owner.ID = sw.UserID
	normalizeTimes(&sw.Shift)
	return &sw, nil
}

// timestamptz scans in the session zone; responses are always UTC.
func normalizeTimes(s *entity.Shift) {
	s.StartTime = s.StartTime.UTC()
	s.EndTime = s.EndTime.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
}
