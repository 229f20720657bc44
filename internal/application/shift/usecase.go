package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/application/dto"
	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
	"github.com/jhoicas/Shifts-api/internal/domain/schedule"
)

const overlapMessage = "This overlaps with an existing shift"

// UseCase creates, lists, deletes and exports shifts.
// Creation validates the proposal (schedule.Proposal) and then checks for overlaps and inserts
// inside TxRunner.RunForOwnerDate.
type UseCase struct {
	txRunner  TxRunner
	shiftRepo repository.ShiftRepository
	userRepo  repository.UserRepository
	pdf       RosterPDFGenerator
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase builds the shift use case. pdf may be nil when roster export is not wired.
func NewUseCase(
	txRunner TxRunner,
	shiftRepo repository.ShiftRepository,
	userRepo repository.UserRepository,
	pdf RosterPDFGenerator,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		shiftRepo: shiftRepo,
		userRepo:  userRepo,
		pdf:       pdf,
		log:       log,
		now:       time.Now,
	}
}

// CreateShift validates the proposal, rejects overlaps with the owner's other shifts on that
// date and persists it. Exactly one write happens on success and none on failure.
//
// Errors:
//   - InvalidInput     malformed owner id, date or times.
//   - InvalidDuration  end <= start, or duration outside [4h, 12h].
//   - NotFound         the owner does not exist.
//   - Conflict         an existing shift of the owner on that date overlaps ([start,end) semantics).
func (uc *UseCase) CreateShift(ctx context.Context, in dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	w, err := schedule.Proposal{
		UserID:   in.UserID,
		Date:     in.Date,
		StartRaw: in.StartTime,
		EndRaw:   in.EndTime,
	}.Validate()
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.GetByID(ctx, w.UserID)
	if err != nil {
		return nil, uc.internal(err, "lookup shift owner", w.UserID)
	}
	if owner == nil {
		return nil, domain.NewError(domain.ErrNotFound, "Employee not found")
	}

	now := uc.now().UTC()
	s := &entity.Shift{
		ID:        uuid.New().String(),
		UserID:    w.UserID,
		Date:      w.Date,
		StartTime: w.Start,
		EndTime:   w.End,
		Hours:     schedule.Hours(w.Duration),
		CreatedAt: now,
		UpdatedAt: now,
	}

	var stored *entity.ShiftWithOwner
	err = uc.txRunner.RunForOwnerDate(ctx, w.UserID, w.Date, func(repo repository.ShiftRepository) error {
		overlap, err := repo.FindOverlapping(ctx, s.UserID, s.Date, s.StartTime, s.EndTime)
		if err != nil {
			return err
		}
		if overlap != nil {
			return domain.NewError(domain.ErrConflict, overlapMessage)
		}
		if err := repo.Create(ctx, s); err != nil {
			return err
		}
		stored, err = repo.GetWithOwner(ctx, s.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("shift %s missing after insert", s.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewError(domain.ErrConflict, overlapMessage)
		}
		return nil, uc.internal(err, "create shift", w.UserID)
	}

	uc.log.Info().
		Str("shift_id", stored.ID).
		Str("user_id", stored.UserID).
		Str("date", stored.Date).
		Str("hours", stored.Hours.StringFixed(1)).
		Msg("shift created")

	return ToShiftResponse(stored), nil
}

// ListShifts returns the shifts visible to caller, optionally restricted to one date.
// Admins see everyone's shifts; anyone else only their own.
func (uc *UseCase) ListShifts(ctx context.Context, caller *auth.Claims, date string) ([]dto.ShiftResponse, error) {
	list, err := uc.visibleShifts(ctx, caller, date)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToShiftResponse(s))
	}
	return out, nil
}

// DeleteShift removes a shift. Only its owner or an admin may delete it.
func (uc *UseCase) DeleteShift(ctx context.Context, caller *auth.Claims, shiftID string) error {
	if caller == nil {
		return domain.NewError(domain.ErrUnauthenticated, "Authentication required")
	}
	shiftID = strings.TrimSpace(shiftID)
	if !schedule.IsID(shiftID) {
		return domain.NewError(domain.ErrInvalidInput, "Invalid shift ID")
	}

	s, err := uc.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return uc.internal(err, "lookup shift", caller.UserID)
	}
	if s == nil {
		return domain.NewError(domain.ErrNotFound, "Shift not found")
	}
	if err := auth.AuthorizeOwnerOrAdmin(caller, s.UserID); err != nil {
		return domain.NewError(domain.ErrForbidden, "Not authorized to delete this shift")
	}

	deleted, err := uc.shiftRepo.Delete(ctx, shiftID)
	if err != nil {
		return uc.internal(err, "delete shift", caller.UserID)
	}
	if !deleted {
		return domain.NewError(domain.ErrNotFound, "Shift not found")
	}

	uc.log.Info().Str("shift_id", shiftID).Str("by", caller.UserID).Msg("shift deleted")
	return nil
}

// ExportRoster renders the shifts visible to caller as a PDF.
// It returns the document and a suggested file name.
func (uc *UseCase) ExportRoster(ctx context.Context, caller *auth.Claims, date string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", domain.NewError(domain.ErrNotFound, "Roster export is not available")
	}
	list, err := uc.visibleShifts(ctx, caller, date)
	if err != nil {
		return nil, "", err
	}

	date = strings.TrimSpace(date)
	title := "Team schedule"
	if !caller.IsAdmin() {
		title = "My schedule"
	}
	doc, err := uc.pdf.GenerateRosterPDF(ctx, Roster{
		Title:       title,
		Date:        date,
		GeneratedAt: uc.now().UTC(),
		GeneratedBy: caller.Email,
		Shifts:      list,
	})
	if err != nil {
		return nil, "", uc.internal(err, "render roster", caller.UserID)
	}

	name := "roster-all.pdf"
	if date != "" {
		name = "roster-" + date + ".pdf"
	}
	return doc, name, nil
}

func (uc *UseCase) visibleShifts(ctx context.Context, caller *auth.Claims, date string) ([]*entity.ShiftWithOwner, error) {
	if caller == nil {
		return nil, domain.NewError(domain.ErrUnauthenticated, "Authentication required")
	}
	date = strings.TrimSpace(date)
	if date != "" && !schedule.IsDate(date) {
		return nil, domain.NewError(domain.ErrInvalidInput, "Invalid date format")
	}

	filter := repository.ShiftFilter{Date: date}
	if !caller.IsAdmin() {
		filter.UserID = caller.UserID
	}
	list, err := uc.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, uc.internal(err, "list shifts", caller.UserID)
	}
	return list, nil
}

// ToShiftResponse maps a joined shift to its public shape.
func ToShiftResponse(s *entity.ShiftWithOwner) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID: s.ID,
		User: dto.ShiftOwnerResponse{
			ID:           s.Owner.ID,
			Name:         s.Owner.Name,
			Email:        s.Owner.Email,
			EmployeeCode: s.Owner.EmployeeCode,
		},
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Hours:     s.Hours.StringFixed(1),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// internal logs err with context and returns a generic Internal error.
func (uc *UseCase) internal(err error, op, userID string) error {
	uc.log.Error().Err(err).Str("op", op).Str("user_id", userID).Msg("shift failure")
	return domain.NewError(domain.ErrInternal, "Could not complete the shift operation")
}
