package shift

import (
	"context"
	"time"

	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
)

// TxRunner runs fn inside a transaction that is serialized against every other call for the
// same userID and date, handing it a shift repository bound to that transaction.
// The overlap check and the insert of a shift happen inside one such call, so two concurrent
// requests for overlapping intervals of one owner/date cannot both succeed.
type TxRunner interface {
	RunForOwnerDate(ctx context.Context, userID, date string, fn func(repo repository.ShiftRepository) error) error
}

// RosterPDFGenerator renders a list of shifts as a printable roster.
type RosterPDFGenerator interface {
	GenerateRosterPDF(ctx context.Context, roster Roster) ([]byte, error)
}

// Roster input of RosterPDFGenerator.
type Roster struct {
	Title       string
	Date        string // empty = all dates
	GeneratedAt time.Time
	GeneratedBy string
	Shifts      []*entity.ShiftWithOwner
}
