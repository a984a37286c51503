package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/siteworks/internal/model"
)

func TestCreateEstimateComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()

	est, err := s.documents.CreateEstimate(ctx, managerPrincipal(), twoLineEstimate(f, "EST-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if est.TotalSum != 150 {
		t.Fatalf("expected total_sum 150, got %v", est.TotalSum)
	}
	if est.TotalLabor != 24 {
		t.Fatalf("expected total_labor 24, got %v", est.TotalLabor)
	}
	if len(est.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(est.Lines))
	}
	if est.Lines[0].Sum != 50 || est.Lines[1].Sum != 100 {
		t.Fatalf("unexpected line sums: %v, %v", est.Lines[0].Sum, est.Lines[1].Sum)
	}
	if est.Lines[0].OrderNum != 1 || est.Lines[1].OrderNum != 2 {
		t.Fatalf("line order not preserved")
	}
	if est.Version != 1 {
		t.Fatalf("expected version 1, got %d", est.Version)
	}
}

func TestCreateEstimateValidation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	t.Run("negative quantity", func(t *testing.T) {
		input := twoLineEstimate(f, "EST-NEG")
		input.Lines[0].Quantity = -1
		if _, err := s.documents.CreateEstimate(ctx, principal, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("missing work reference", func(t *testing.T) {
		input := twoLineEstimate(f, "EST-NOWORK")
		input.Lines[0].WorkID = nil
		if _, err := s.documents.CreateEstimate(ctx, principal, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("duplicate number and date", func(t *testing.T) {
		if _, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-DUP")); err != nil {
			t.Fatalf("first create: %v", err)
		}
		if _, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-DUP")); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("group line with quantity", func(t *testing.T) {
		input := twoLineEstimate(f, "EST-GRPQ")
		input.Lines = append(input.Lines, EstimateLineInput{IsGroup: true, Name: "Section", Quantity: 5})
		if _, err := s.documents.CreateEstimate(ctx, principal, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("parent row is not a group", func(t *testing.T) {
		parentRow := 1
		input := twoLineEstimate(f, "EST-BADPARENT")
		input.Lines[1].ParentRow = &parentRow
		if _, err := s.documents.CreateEstimate(ctx, principal, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("viewer denied", func(t *testing.T) {
		if _, err := s.documents.CreateEstimate(ctx, viewerPrincipal(), twoLineEstimate(f, "EST-VIEW")); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestEstimateOrganizationOptional(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	input := twoLineEstimate(f, "EST-NOORG")
	input.OrganizationID = nil
	est, err := s.documents.CreateEstimate(ctx, principal, input)
	if err != nil {
		t.Fatalf("create without organization: %v", err)
	}
	if est.OrganizationID != nil {
		t.Fatalf("expected nil organization, got %v", est.OrganizationID)
	}

	// the column must round-trip through update in both directions
	input.OrganizationID = &f.org.ID
	updated, err := s.documents.UpdateEstimate(ctx, principal, est.ID, est.Version, input)
	if err != nil {
		t.Fatalf("update to set organization: %v", err)
	}
	if updated.OrganizationID == nil || *updated.OrganizationID != f.org.ID {
		t.Fatalf("organization not persisted on update: %v", updated.OrganizationID)
	}

	input.OrganizationID = nil
	updated, err = s.documents.UpdateEstimate(ctx, principal, est.ID, updated.Version, input)
	if err != nil {
		t.Fatalf("update to clear organization: %v", err)
	}
	if updated.OrganizationID != nil {
		t.Fatalf("organization not cleared on update: %v", updated.OrganizationID)
	}

	unknown := uuid.New()
	input.OrganizationID = &unknown
	if _, err := s.documents.UpdateEstimate(ctx, principal, est.ID, updated.Version, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown organization, got %v", err)
	}
}

func TestUpdateEstimateBlockedByReferencingReports(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	est, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-REF"))
	if err != nil {
		t.Fatalf("create estimate: %v", err)
	}
	reportInput := DailyReportInput{
		Number:     "DR-REF",
		Date:       time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		ObjectID:   f.object.ID,
		EstimateID: est.ID,
		Lines: []DailyReportLineInput{
			{EstimateLineID: est.Lines[0].ID, ActualLabor: 4},
		},
	}
	report, err := s.documents.CreateDailyReport(ctx, principal, reportInput)
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	// swapping the line set would orphan the report's line references
	if _, err := s.documents.UpdateEstimate(ctx, principal, est.ID, est.Version, twoLineEstimate(f, "EST-REF")); !errors.Is(err, ErrDependency) {
		t.Fatalf("expected ErrDependency, got %v", err)
	}

	// the refused update must not have touched the document
	reloaded, err := s.documents.GetEstimate(ctx, est.ID)
	if err != nil {
		t.Fatalf("reload estimate: %v", err)
	}
	if reloaded.Version != est.Version {
		t.Fatalf("version changed by refused update: %d -> %d", est.Version, reloaded.Version)
	}
	if reloaded.Lines[0].ID != est.Lines[0].ID {
		t.Fatalf("line ids changed by refused update")
	}

	// the report still posts once the estimate is posted
	if _, err := s.posting.Post(ctx, principal, model.DocumentTypeEstimate, est.ID); err != nil {
		t.Fatalf("post estimate: %v", err)
	}
	if _, err := s.posting.Post(ctx, principal, model.DocumentTypeDailyReport, report.ID); err != nil {
		t.Fatalf("post report: %v", err)
	}
	if _, err := s.posting.Unpost(ctx, principal, model.DocumentTypeDailyReport, report.ID); err != nil {
		t.Fatalf("unpost report: %v", err)
	}
	if _, err := s.posting.Unpost(ctx, principal, model.DocumentTypeEstimate, est.ID); err != nil {
		t.Fatalf("unpost estimate: %v", err)
	}

	// dropping the report's lines releases the estimate for editing
	currentReport, err := s.documents.GetDailyReport(ctx, report.ID)
	if err != nil {
		t.Fatalf("reload report: %v", err)
	}
	reportInput.Lines = nil
	if _, err := s.documents.UpdateDailyReport(ctx, principal, report.ID, currentReport.Version, reportInput); err != nil {
		t.Fatalf("clear report lines: %v", err)
	}
	currentEst, err := s.documents.GetEstimate(ctx, est.ID)
	if err != nil {
		t.Fatalf("reload estimate: %v", err)
	}
	if _, err := s.documents.UpdateEstimate(ctx, principal, est.ID, currentEst.Version, twoLineEstimate(f, "EST-REF")); err != nil {
		t.Fatalf("update after reference removed: %v", err)
	}
}

func TestCreateEstimateGroupRollup(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()

	groupRow := 1
	input := EstimateInput{
		Number:   "EST-GRP",
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ObjectID: f.object.ID,
		Lines: []EstimateLineInput{
			{IsGroup: true, Name: "Masonry"},
			{ParentRow: &groupRow, WorkID: &f.workA.ID, Quantity: 10, Price: 5, Labor: 16},
			{ParentRow: &groupRow, WorkID: &f.workB.ID, Quantity: 2, Price: 50, Labor: 8},
		},
	}
	est, err := s.documents.CreateEstimate(ctx, managerPrincipal(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if est.Lines[0].Sum != 150 || est.Lines[0].Labor != 24 {
		t.Fatalf("group rollup wrong: sum %v labor %v", est.Lines[0].Sum, est.Lines[0].Labor)
	}
	// totals count leaf lines only, so the group must not double them
	if est.TotalSum != 150 || est.TotalLabor != 24 {
		t.Fatalf("totals wrong: %v / %v", est.TotalSum, est.TotalLabor)
	}
	if est.Lines[1].ParentID == nil || *est.Lines[1].ParentID != est.Lines[0].ID {
		t.Fatalf("child not linked to group")
	}
}

func TestUpdateEstimateRecomputesTotalsAndBumpsVersion(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	est, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-UPD"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := twoLineEstimate(f, "EST-UPD")
	input.Lines = input.Lines[:1]
	updated, err := s.documents.UpdateEstimate(ctx, principal, est.ID, est.Version, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalSum != 50 {
		t.Fatalf("expected total_sum 50 after update, got %v", updated.TotalSum)
	}
	if len(updated.Lines) != 1 {
		t.Fatalf("expected 1 line after update, got %d", len(updated.Lines))
	}
	if updated.Version != est.Version+1 {
		t.Fatalf("expected version bump to %d, got %d", est.Version+1, updated.Version)
	}

	// stale version must be rejected
	if _, err := s.documents.UpdateEstimate(ctx, principal, est.ID, est.Version, input); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on stale version, got %v", err)
	}
}

func TestPostedEstimateIsFrozen(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	est, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-FRZ"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.posting.Post(ctx, principal, model.DocumentTypeEstimate, est.ID); err != nil {
		t.Fatalf("post: %v", err)
	}

	if _, err := s.documents.UpdateEstimate(ctx, principal, est.ID, est.Version+1, twoLineEstimate(f, "EST-FRZ")); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on update, got %v", err)
	}
	if err := s.documents.SoftDeleteEstimate(ctx, principal, est.ID, est.Version+1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on delete, got %v", err)
	}
}

func TestSoftDeleteDraftEstimate(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	est, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-DEL"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.documents.SoftDeleteEstimate(ctx, principal, est.ID, est.Version); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.documents.GetEstimate(ctx, est.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDailyReportDeviation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	input := twoLineEstimate(f, "EST-DEV")
	input.Lines[0].Labor = 8
	est, err := s.documents.CreateEstimate(ctx, principal, input)
	if err != nil {
		t.Fatalf("create estimate: %v", err)
	}

	report, err := s.documents.CreateDailyReport(ctx, principal, DailyReportInput{
		Number:     "DR-1",
		Date:       time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		ObjectID:   f.object.ID,
		EstimateID: est.ID,
		Lines: []DailyReportLineInput{
			{EstimateLineID: est.Lines[0].ID, ActualLabor: 6},
		},
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if report.Lines[0].PlannedLabor != 8 {
		t.Fatalf("expected planned_labor 8, got %v", report.Lines[0].PlannedLabor)
	}
	if report.Lines[0].Deviation != -2 {
		t.Fatalf("expected deviation -2, got %v", report.Lines[0].Deviation)
	}
	if report.TotalLabor != 6 {
		t.Fatalf("expected total_labor 6, got %v", report.TotalLabor)
	}
}

func TestDailyReportLineMustBelongToEstimate(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	est1, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-A"))
	if err != nil {
		t.Fatalf("create est1: %v", err)
	}
	input := twoLineEstimate(f, "EST-B")
	input.Date = input.Date.AddDate(0, 0, 1)
	est2, err := s.documents.CreateEstimate(ctx, principal, input)
	if err != nil {
		t.Fatalf("create est2: %v", err)
	}

	_, err = s.documents.CreateDailyReport(ctx, principal, DailyReportInput{
		Number:     "DR-X",
		Date:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		ObjectID:   f.object.ID,
		EstimateID: est1.ID,
		Lines: []DailyReportLineInput{
			{EstimateLineID: est2.Lines[0].ID, ActualLabor: 4},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDailyReportExecutors(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	est, err := s.documents.CreateEstimate(ctx, principal, twoLineEstimate(f, "EST-EXEC"))
	if err != nil {
		t.Fatalf("create estimate: %v", err)
	}

	report, err := s.documents.CreateDailyReport(ctx, principal, DailyReportInput{
		Number:     "DR-EXEC",
		Date:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		ObjectID:   f.object.ID,
		EstimateID: est.ID,
		Lines: []DailyReportLineInput{
			{
				EstimateLineID: est.Lines[0].ID,
				ActualLabor:    5,
				ExecutorIDs:    []uuid.UUID{f.person1.ID, f.person2.ID},
			},
		},
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if len(report.Lines[0].Executors) != 2 {
		t.Fatalf("expected 2 executors, got %d", len(report.Lines[0].Executors))
	}

	_, err = s.documents.CreateDailyReport(ctx, principal, DailyReportInput{
		Number:     "DR-EXEC-2",
		Date:       time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		ObjectID:   f.object.ID,
		EstimateID: est.ID,
		Lines: []DailyReportLineInput{
			{
				EstimateLineID: est.Lines[0].ID,
				ActualLabor:    5,
				ExecutorIDs:    []uuid.UUID{uuid.New()},
			},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown executor, got %v", err)
	}
}

func TestTimesheetTotals(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	sheet, err := s.documents.CreateTimesheet(ctx, principal, TimesheetInput{
		Number:   "TS-1",
		Date:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		ObjectID: f.object.ID,
		Lines: []TimesheetLineInput{
			{PersonID: f.person1.ID, WorkDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Hours: 8, Rate: 1500},
			{PersonID: f.person2.ID, WorkDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Hours: 6, Rate: 2000},
		},
	})
	if err != nil {
		t.Fatalf("create timesheet: %v", err)
	}
	if sheet.TotalSum != 8*1500+6*2000 {
		t.Fatalf("expected total_sum %v, got %v", float64(8*1500+6*2000), sheet.TotalSum)
	}
	if sheet.TotalLabor != 14 {
		t.Fatalf("expected total_labor 14, got %v", sheet.TotalLabor)
	}
}

func TestTimesheetValidation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	s := newServices(t, db)
	ctx := context.Background()
	principal := managerPrincipal()

	_, err := s.documents.CreateTimesheet(ctx, principal, TimesheetInput{
		Number:   "TS-NEG",
		Date:     time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		ObjectID: f.object.ID,
		Lines: []TimesheetLineInput{
			{PersonID: f.person1.ID, WorkDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Hours: -1, Rate: 1500},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
