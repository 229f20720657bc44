// Package memory provides an in-memory implementation of the persistence ports, used by tests
// and by STORE_DRIVER=memory for local runs without PostgreSQL. Data lives for the life of the
// process.
package memory

import (
	"context"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Shifts-api/internal/application/shift"
	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
	"github.com/jhoicas/Shifts-api/internal/domain/schedule"
)

var (
	_ repository.UserRepository  = (*UserRepo)(nil)
	_ repository.ShiftRepository = (*ShiftRepo)(nil)
	_ shift.TxRunner             = (*TxRunner)(nil)
)

// Store holds users and shifts behind one RWMutex.
type Store struct {
	mu      sync.RWMutex
	users   map[string]entity.User
	byEmail map[string]string
	shifts  map[string]entity.Shift
	seq     int64

	// Owner/date keys hash onto a fixed set of mutexes.
	stripes [lockStripes]sync.Mutex
}

const lockStripes = 64

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:   make(map[string]entity.User),
		byEmail: make(map[string]string),
		shifts:  make(map[string]entity.Shift),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Shifts returns the shift repository view of the store.
func (s *Store) Shifts() *ShiftRepo { return &ShiftRepo{s: s} }

// TxRunner returns the per owner/date serializing runner.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// ── users ────────────────────────────────────────────────────────────────────

// UserRepo implements repository.UserRepository in memory.
type UserRepo struct{ s *Store }

// Create stores a user; a taken email yields domain.ErrConflict.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.byEmail[user.Email]; taken {
		return domain.ErrConflict
	}
	r.s.users[user.ID] = *user
	r.s.byEmail[user.Email] = user.ID
	return nil
}

// GetByID returns the user or nil.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail returns the user or nil.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.s.users[id]
	return &u, nil
}

// ListByRole returns id+name of users with role, sorted by name.
func (r *UserRepo) ListByRole(_ context.Context, role entity.Role) ([]entity.EmployeeSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.EmployeeSummary, 0)
	for _, u := range r.s.users {
		if u.Role == role {
			out = append(out, entity.EmployeeSummary{ID: u.ID, Name: u.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// NextEmployeeSeq reserves the next employee code number.
func (r *UserRepo) NextEmployeeSeq(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	return r.s.seq, nil
}

// ── shifts ───────────────────────────────────────────────────────────────────

// ShiftRepo implements repository.ShiftRepository in memory.
type ShiftRepo struct{ s *Store }

// Create stores a shift. Like the exclusion constraint of the SQL schema, an overlapping
// shift of the same owner/date yields domain.ErrConflict.
func (r *ShiftRepo) Create(_ context.Context, sh *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.overlappingLocked(sh.UserID, sh.Date, sh.StartTime, sh.EndTime) != nil {
		return domain.ErrConflict
	}
	r.s.shifts[sh.ID] = *sh
	return nil
}

// GetByID returns the shift or nil.
func (r *ShiftRepo) GetByID(_ context.Context, id string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shifts[id]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

// GetWithOwner returns the shift joined with its owner, or nil.
func (r *ShiftRepo) GetWithOwner(_ context.Context, id string) (*entity.ShiftWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shifts[id]
	if !ok {
		return nil, nil
	}
	return r.s.joinLocked(sh), nil
}

// FindOverlapping returns one shift of userID on date intersecting [start,end), or nil.
func (r *ShiftRepo) FindOverlapping(_ context.Context, userID, date string, start, end time.Time) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.overlappingLocked(userID, date, start, end), nil
}

// List returns joined shifts matching filter, ordered by date then start time.
func (r *ShiftRepo) List(_ context.Context, filter repository.ShiftFilter) ([]*entity.ShiftWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.ShiftWithOwner, 0)
	for _, sh := range r.s.shifts {
		if filter.UserID != "" && sh.UserID != filter.UserID {
			continue
		}
		if filter.Date != "" && sh.Date != filter.Date {
			continue
		}
		out = append(out, r.s.joinLocked(sh))
	}
	sort.Slice(out, func(i, j int) bool {
		if c := strings.Compare(out[i].Date, out[j].Date); c != 0 {
			return c < 0
		}
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a shift and reports whether it existed.
func (r *ShiftRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[id]; !ok {
		return false, nil
	}
	delete(r.s.shifts, id)
	return true, nil
}

func (s *Store) overlappingLocked(userID, date string, start, end time.Time) *entity.Shift {
	for _, sh := range s.shifts {
		if sh.UserID == userID && sh.Date == date && schedule.Overlaps(sh.StartTime, sh.EndTime, start, end) {
			found := sh
			return &found
		}
	}
	return nil
}

func (s *Store) joinLocked(sh entity.Shift) *entity.ShiftWithOwner {
	out := &entity.ShiftWithOwner{Shift: sh}
	if u, ok := s.users[sh.UserID]; ok {
		out.Owner = u.AsOwner()
	} else {
		out.Owner = entity.Owner{ID: sh.UserID}
	}
	return out
}

// ── transactions ─────────────────────────────────────────────────────────────

// TxRunner serializes callers per owner/date. Unrelated keys may share a stripe and wait on
// each other, which is harmless. There is no rollback: callers perform their single write last.
type TxRunner struct{ s *Store }

// RunForOwnerDate holds the owner/date lock while fn runs.
func (t *TxRunner) RunForOwnerDate(ctx context.Context, userID, date string, fn func(repo repository.ShiftRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := t.s.keyLock(userID + "|" + date)
	m.Lock()
	defer m.Unlock()
	return fn(t.s.Shifts())
}

func (s *Store) keyLock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.stripes[h.Sum32()%lockStripes]
}
