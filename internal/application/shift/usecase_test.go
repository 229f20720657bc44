package shift_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/application/dto"
	"github.com/jhoicas/Shifts-api/internal/application/shift"
	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
	"github.com/jhoicas/Shifts-api/internal/infrastructure/memory"
)

const day = "2025-06-10"

type fakePDF struct {
	got shift.Roster
	err error
}

func (f *fakePDF) GenerateRosterPDF(_ context.Context, r shift.Roster) ([]byte, error) {
	f.got = r
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	uc    *shift.UseCase
	store *memory.Store
	pdf   *fakePDF
	admin *auth.Claims
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pdf := &fakePDF{}
	return &fixture{
		uc:    shift.NewUseCase(store.TxRunner(), store.Shifts(), store.Users(), pdf, zerolog.Nop()),
		store: store,
		pdf:   pdf,
		admin: &auth.Claims{UserID: uuid.NewString(), Email: "boss@example.com", Role: entity.RoleAdmin},
	}
}

func (f *fixture) employee(t *testing.T, name string) (*entity.User, *auth.Claims) {
	t.Helper()
	u := &entity.User{ID: uuid.NewString(), Name: name, Email: name + "@example.com", Role: entity.RoleEmployee, EmployeeCode: "EMP-" + name}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u, &auth.Claims{UserID: u.ID, Email: u.Email, Role: entity.RoleEmployee}
}

func req(userID, date, start, end string) dto.CreateShiftRequest {
	return dto.CreateShiftRequest{UserID: userID, Date: date, StartTime: date + "T" + start + ":00Z", EndTime: date + "T" + end + ":00Z"}
}

func countShifts(t *testing.T, f *fixture) int {
	t.Helper()
	list, err := f.store.Shifts().List(context.Background(), repository.ShiftFilter{})
	require.NoError(t, err)
	return len(list)
}

func TestCreateShift_Valid(t *testing.T) {
	f := newFixture(t)
	e1, _ := f.employee(t, "Erin")

	out, err := f.uc.CreateShift(context.Background(), req(e1.ID, day, "09:00", "17:00"))
	require.NoError(t, err)
	assert.Equal(t, "8.0", out.Hours)
	assert.Equal(t, e1.ID, out.User.ID)
	assert.Equal(t, "Erin", out.User.Name)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), out.StartTime)
	assert.Equal(t, 1, countShifts(t, f))
}

// readBackRunner wraps a TxRunner and intercepts GetWithOwner on the tx-bound repo.
type readBackRunner struct {
	shift.TxRunner
	reads int
	drop  bool
}

type readBackRepo struct {
	repository.ShiftRepository
	r *readBackRunner
}

func (r *readBackRunner) RunForOwnerDate(ctx context.Context, userID, date string, fn func(repo repository.ShiftRepository) error) error {
	return r.TxRunner.RunForOwnerDate(ctx, userID, date, func(repo repository.ShiftRepository) error {
		return fn(&readBackRepo{ShiftRepository: repo, r: r})
	})
}

func (p *readBackRepo) GetWithOwner(ctx context.Context, id string) (*entity.ShiftWithOwner, error) {
	p.r.reads++
	if p.r.drop {
		return nil, nil
	}
	return p.ShiftRepository.GetWithOwner(ctx, id)
}

func TestCreateShift_ReturnsStoredRecord(t *testing.T) {
	store := memory.NewStore()
	runner := &readBackRunner{TxRunner: store.TxRunner()}
	uc := shift.NewUseCase(runner, store.Shifts(), store.Users(), nil, zerolog.Nop())
	u := &entity.User{ID: uuid.NewString(), Name: "Rita", Email: "rita@example.com", Role: entity.RoleEmployee, EmployeeCode: "EMP0007"}
	require.NoError(t, store.Users().Create(context.Background(), u))

	out, err := uc.CreateShift(context.Background(), req(u.ID, day, "09:00", "17:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, runner.reads)

	stored, err := store.Shifts().GetWithOwner(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, stored.Owner.EmployeeCode, out.User.EmployeeCode)
	assert.Equal(t, stored.Hours.StringFixed(1), out.Hours)

	runner.drop = true
	_, err = uc.CreateShift(context.Background(), req(u.ID, "2025-06-11", "09:00", "17:00"))
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestCreateShift_RejectionsWriteNothing(t *testing.T) {
	f := newFixture(t)
	e1, _ := f.employee(t, "Erin")
	ctx := context.Background()

	cases := []struct {
		in   dto.CreateShiftRequest
		kind error
		msg  string
	}{
		{req("", day, "09:00", "17:00"), domain.ErrInvalidInput, "Valid employee selection required"},
		{req(e1.ID, "2025/06/10", "09:00", "17:00"), domain.ErrInvalidInput, "Valid date required (YYYY-MM-DD)"},
		{dto.CreateShiftRequest{UserID: e1.ID, Date: day, StartTime: "soon", EndTime: "later"}, domain.ErrInvalidInput, "Valid start and end times required"},
		{req(e1.ID, day, "17:00", "09:00"), domain.ErrInvalidDuration, "End time must be after start time"},
		{req(e1.ID, day, "08:00", "11:00"), domain.ErrInvalidDuration, "Shift must be at least 4 hours (currently 3.0h)"},
		{req(e1.ID, day, "06:00", "19:00"), domain.ErrInvalidDuration, "Shift cannot exceed 12 hours"},
		{req(uuid.NewString(), day, "09:00", "17:00"), domain.ErrNotFound, "Employee not found"},
	}
	for _, tc := range cases {
		_, err := f.uc.CreateShift(ctx, tc.in)
		require.Error(t, err, tc.msg)
		assert.ErrorIs(t, err, tc.kind, tc.msg)
		assert.Equal(t, tc.msg, err.Error())
	}
	assert.Equal(t, 0, countShifts(t, f))
}

func TestCreateShift_Overlap(t *testing.T) {
	f := newFixture(t)
	e1, _ := f.employee(t, "Erin")
	e2, _ := f.employee(t, "Femi")
	ctx := context.Background()

	_, err := f.uc.CreateShift(ctx, req(e1.ID, day, "09:00", "17:00"))
	require.NoError(t, err)

	_, err = f.uc.CreateShift(ctx, req(e1.ID, day, "12:00", "20:00"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "This overlaps with an existing shift", err.Error())

	_, err = f.uc.CreateShift(ctx, req(e1.ID, day, "17:00", "21:00"))
	assert.NoError(t, err, "touching at 17:00 is not an overlap")

	_, err = f.uc.CreateShift(ctx, req(e2.ID, day, "12:00", "20:00"))
	assert.NoError(t, err, "other employees are independent")

	_, err = f.uc.CreateShift(ctx, req(e1.ID, "2025-06-11", "12:00", "20:00"))
	assert.NoError(t, err, "other dates are independent")

	assert.Equal(t, 4, countShifts(t, f))
}

func TestCreateShift_ConcurrentOverlapsOneWins(t *testing.T) {
	f := newFixture(t)
	e1, _ := f.employee(t, "Erin")

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := fmt.Sprintf("09:%02d", i)
			end := fmt.Sprintf("15:%02d", i)
			_, err := f.uc.CreateShift(context.Background(), req(e1.ID, day, start, end))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, countShifts(t, f))
}

func TestListShifts(t *testing.T) {
	f := newFixture(t)
	e1, c1 := f.employee(t, "Erin")
	e2, _ := f.employee(t, "Femi")
	ctx := context.Background()
	for _, in := range []dto.CreateShiftRequest{
		req(e1.ID, "2025-06-11", "09:00", "17:00"),
		req(e1.ID, day, "13:00", "17:00"),
		req(e1.ID, day, "08:00", "12:00"),
		req(e2.ID, day, "09:00", "17:00"),
	} {
		_, err := f.uc.CreateShift(ctx, in)
		require.NoError(t, err)
	}

	all, err := f.uc.ListShifts(ctx, f.admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	mine, err := f.uc.ListShifts(ctx, c1, "")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, day, mine[0].Date)
	assert.Equal(t, 8, mine[0].StartTime.Hour())
	assert.Equal(t, 13, mine[1].StartTime.Hour())
	assert.Equal(t, "2025-06-11", mine[2].Date)

	onDay, err := f.uc.ListShifts(ctx, f.admin, " "+day+" ")
	require.NoError(t, err)
	assert.Len(t, onDay, 3)

	_, err = f.uc.ListShifts(ctx, f.admin, "June 10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid date format", err.Error())

	_, err = f.uc.ListShifts(ctx, nil, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestDeleteShift(t *testing.T) {
	f := newFixture(t)
	e1, c1 := f.employee(t, "Erin")
	_, c2 := f.employee(t, "Femi")
	ctx := context.Background()

	s1, err := f.uc.CreateShift(ctx, req(e1.ID, day, "09:00", "13:00"))
	require.NoError(t, err)
	s2, err := f.uc.CreateShift(ctx, req(e1.ID, day, "13:00", "17:00"))
	require.NoError(t, err)

	err = f.uc.DeleteShift(ctx, c2, s1.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Not authorized to delete this shift", err.Error())
	assert.Equal(t, 2, countShifts(t, f))

	require.NoError(t, f.uc.DeleteShift(ctx, c1, s1.ID))
	require.NoError(t, f.uc.DeleteShift(ctx, f.admin, s2.ID))
	assert.Equal(t, 0, countShifts(t, f))

	err = f.uc.DeleteShift(ctx, f.admin, s1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Shift not found", err.Error())

	err = f.uc.DeleteShift(ctx, f.admin, "42")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid shift ID", err.Error())
}

func TestExportRoster(t *testing.T) {
	f := newFixture(t)
	e1, c1 := f.employee(t, "Erin")
	e2, _ := f.employee(t, "Femi")
	ctx := context.Background()
	_, err := f.uc.CreateShift(ctx, req(e1.ID, day, "09:00", "17:00"))
	require.NoError(t, err)
	_, err = f.uc.CreateShift(ctx, req(e2.ID, day, "09:00", "17:00"))
	require.NoError(t, err)

	doc, name, err := f.uc.ExportRoster(ctx, f.admin, day)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Equal(t, "roster-"+day+".pdf", name)
	assert.Equal(t, "Team schedule", f.pdf.got.Title)
	assert.Equal(t, f.admin.Email, f.pdf.got.GeneratedBy)
	assert.Len(t, f.pdf.got.Shifts, 2)

	_, name, err = f.uc.ExportRoster(ctx, c1, "")
	require.NoError(t, err)
	assert.Equal(t, "roster-all.pdf", name)
	assert.Equal(t, "My schedule", f.pdf.got.Title)
	require.Len(t, f.pdf.got.Shifts, 1)
	assert.Equal(t, e1.ID, f.pdf.got.Shifts[0].UserID)

	f.pdf.err = errors.New("font missing")
	_, _, err = f.uc.ExportRoster(ctx, f.admin, "")
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestExportRoster_NotWired(t *testing.T) {
	store := memory.NewStore()
	uc := shift.NewUseCase(store.TxRunner(), store.Shifts(), store.Users(), nil, zerolog.Nop())
	_, _, err := uc.ExportRoster(context.Background(), &auth.Claims{UserID: "a", Role: entity.RoleAdmin}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
