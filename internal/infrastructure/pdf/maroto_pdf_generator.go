// Package pdf renders the printable roster of shifts.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: title + date filter   │  generated at / by         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Date | Employee | Code | Start | End | Hours         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: shift count / total hours                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Shifts-api/internal/application/shift"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
)

var _ shift.RosterPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const timeLayout = "15:04"

// ── generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements shift.RosterPDFGenerator with Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator builds the generator; appName is stamped as the document author.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateRosterPDF renders roster and returns the PDF bytes.
func (g *MarotoPDFGenerator) GenerateRosterPDF(_ context.Context, roster shift.Roster) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(roster.Title, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(roster))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(roster.Shifts) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No shifts scheduled", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(tableDetailRows(roster.Shifts)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(roster.Shifts))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate roster: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── sections ──────────────────────────────────────────────────────────────────

func headerRow(roster shift.Roster) core.Row {
	scope := "All dates"
	if roster.Date != "" {
		scope = "Date: " + roster.Date
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(roster.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(scope, props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generated "+roster.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(nonEmpty(roster.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Employee", 4, align.Left),
		h("Code", 2, align.Left),
		h("Start", 1, align.Center),
		h("End", 1, align.Center),
		h("Hours", 2, align.Right),
	)
}

func tableDetailRows(shifts []*entity.ShiftWithOwner) []core.Row {
	result := make([]core.Row, 0, len(shifts))
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, s := range shifts {
		result = append(result, row.New(7).Add(
			cell(s.Date, 2, align.Left),
			cell(nonEmpty(s.Owner.Name, s.UserID), 4, align.Left),
			cell(nonEmpty(s.Owner.EmployeeCode, "-"), 2, align.Left),
			cell(s.StartTime.UTC().Format(timeLayout), 1, align.Center),
			cell(s.EndTime.UTC().Format(timeLayout), 1, align.Center),
			cell(s.Hours.StringFixed(1), 2, align.Right),
		))
	}
	return result
}

func totalsRow(shifts []*entity.ShiftWithOwner) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Color: colorPrimary})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(4).Add(label("Shifts:"), label("Total hours:")),
		col.New(2).Add(value(fmt.Sprintf("%d", len(shifts))), value(TotalHours(shifts).StringFixed(1))),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// TotalHours sums the stored hours of shifts.
func TotalHours(shifts []*entity.ShiftWithOwner) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shifts {
		total = total.Add(s.Hours)
	}
	return total
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
