package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nurpe/siteworks/internal/model"
)

// buildLedger posts an estimate and a daily report against it so the register
// holds both INCOME and EXPENSE rows.
func buildLedger(t *testing.T, s services, f fixtures) *model.Estimate {
	t.Helper()
	ctx := context.Background()
	principal := managerPrincipal()

	est := postedEstimate(t, s, f, "EST-REG")
	report, err := s.documents.CreateDailyReport(ctx, principal, DailyReportInput{
		Number:     "DR-REG",
		Date:       time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		ObjectID:   f.object.ID,
		EstimateID: est.ID,
		Lines: []DailyReportLineInput{
			{EstimateLineID: est.Lines[0].ID, ActualLabor: 8},
		},
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if _, err := s.posting.Post(ctx, principal, model.DocumentTypeDailyReport, report.ID); err != nil {
		t.Fatalf("post report: %v", err)
	}
	return est
}

func TestMovementsListingAndFilters(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()

	est := buildLedger(t, s, f)

	all, err := s.register.Movements(ctx, model.MovementFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 movements (2 income + 1 expense), got %d", len(all))
	}

	byEstimate, err := s.register.Movements(ctx, model.MovementFilter{EstimateID: &est.ID})
	if err != nil {
		t.Fatalf("filter by estimate: %v", err)
	}
	if len(byEstimate) != 3 {
		t.Fatalf("estimate filter: expected 3, got %d", len(byEstimate))
	}

	byWork, err := s.register.Movements(ctx, model.MovementFilter{WorkID: &f.workB.ID})
	if err != nil {
		t.Fatalf("filter by work: %v", err)
	}
	if len(byWork) != 1 || byWork[0].RecordType != model.RecordTypeIncome {
		t.Fatalf("work filter: expected 1 income row, got %d", len(byWork))
	}

	// period filter: everything landed in the March bucket
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	inMarch, err := s.register.Movements(ctx, model.MovementFilter{PeriodFrom: march, PeriodTo: march})
	if err != nil {
		t.Fatalf("period filter: %v", err)
	}
	if len(inMarch) != 3 {
		t.Fatalf("period filter snapped to month should match all 3, got %d", len(inMarch))
	}
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	inApril, err := s.register.Movements(ctx, model.MovementFilter{PeriodFrom: april})
	if err != nil {
		t.Fatalf("period filter: %v", err)
	}
	if len(inApril) != 0 {
		t.Fatalf("expected no april movements, got %d", len(inApril))
	}
}

func TestMovementsFilterValidation(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	s := newServices(t, db)

	_, err := s.register.Movements(context.Background(), model.MovementFilter{
		PeriodFrom: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBalancesAggregation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()

	est := buildLedger(t, s, f)

	rows, err := s.register.Balances(ctx, model.MovementFilter{EstimateID: &est.ID})
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 balance rows (one per work), got %d", len(rows))
	}

	byWork := make(map[string]model.BalanceRow, len(rows))
	for _, row := range rows {
		if row.WorkID == nil {
			t.Fatalf("balance row without work dimension: %+v", row)
		}
		byWork[row.WorkID.String()] = row
	}

	// work A: income 50, expense 25 absorbed by 8h of its 16h plan
	a := byWork[f.workA.ID.String()]
	if a.IncomeSum != 50 || a.ExpenseSum != 25 || a.BalanceSum != 25 {
		t.Fatalf("work A sums wrong: %+v", a)
	}
	if a.IncomeQuantity != 10 || a.ExpenseQuantity != 8 || a.BalanceQuantity != 2 {
		t.Fatalf("work A quantities wrong: %+v", a)
	}

	// work B: untouched by the report
	b := byWork[f.workB.ID.String()]
	if b.IncomeSum != 100 || b.ExpenseSum != 0 || b.BalanceSum != 100 {
		t.Fatalf("work B sums wrong: %+v", b)
	}

	// balances must agree with the movement list
	movements, err := s.register.Movements(ctx, model.MovementFilter{EstimateID: &est.ID})
	if err != nil {
		t.Fatalf("movements: %v", err)
	}
	var net float64
	for _, m := range movements {
		net += m.SignedSum()
	}
	var total float64
	for _, row := range rows {
		total += row.BalanceSum
	}
	if net != total {
		t.Fatalf("balances disagree with movements: %v vs %v", total, net)
	}
}

func TestExportBalances(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()

	buildLedger(t, s, f)

	result, err := s.register.ExportBalances(ctx, model.MovementFilter{
		PeriodFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if result.FileName != "register-202603-202603.xlsx" {
		t.Fatalf("unexpected file name %q", result.FileName)
	}
	if len(result.Content) == 0 {
		t.Fatalf("empty workbook")
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(result.Content, []byte("PK")) {
		t.Fatalf("content is not a zip archive")
	}
}

func TestEstimatePrintForm(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()

	est, err := s.documents.CreateEstimate(ctx, managerPrincipal(), twoLineEstimate(f, "EST-PRINT/1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := s.register.EstimatePrintForm(ctx, est.ID)
	if err != nil {
		t.Fatalf("print form: %v", err)
	}
	if result.FileName != "estimate-EST-PRINT-1.pdf" {
		t.Fatalf("unexpected file name %q", result.FileName)
	}
	if !bytes.HasPrefix(result.Content, []byte("%PDF")) {
		t.Fatalf("content is not a pdf")
	}
}
