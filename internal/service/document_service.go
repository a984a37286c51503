package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/siteworks/internal/model"
	"github.com/nurpe/siteworks/internal/repository"
)

// DocumentService is the CRUD side of the ledger: it validates and persists
// document aggregates and keeps their denormalized totals in step with the
// lines while the document is DRAFT.
type DocumentService struct {
	docs *repository.DocumentRepository
	refs *repository.ReferenceRepository
	log  zerolog.Logger
}

func NewDocumentService(docs *repository.DocumentRepository, refs *repository.ReferenceRepository, log zerolog.Logger) *DocumentService {
	return &DocumentService{docs: docs, refs: refs, log: log}
}

type EstimateLineInput struct {
	IsGroup   bool
	ParentRow *int // 1-based row of the group line this row belongs to
	WorkID    *uuid.UUID
	Name      string
	Quantity  float64
	Price     float64
	Labor     float64
}

type EstimateInput struct {
	Number         string
	Date           time.Time
	ObjectID       uuid.UUID
	OrganizationID *uuid.UUID
	Comment        string
	Lines          []EstimateLineInput
}

type DailyReportLineInput struct {
	EstimateLineID uuid.UUID
	ActualLabor    float64
	ExecutorIDs    []uuid.UUID
}

type DailyReportInput struct {
	Number     string
	Date       time.Time
	ObjectID   uuid.UUID
	EstimateID uuid.UUID
	Comment    string
	Lines      []DailyReportLineInput
}

type TimesheetLineInput struct {
	PersonID uuid.UUID
	WorkID   *uuid.UUID
	WorkDate time.Time
	Hours    float64
	Rate     float64
}

type TimesheetInput struct {
	Number     string
	Date       time.Time
	ObjectID   uuid.UUID
	EstimateID *uuid.UUID
	Comment    string
	Lines      []TimesheetLineInput
}

// --- Estimates ---

func (s *DocumentService) CreateEstimate(ctx context.Context, principal model.Principal, input EstimateInput) (*model.Estimate, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}
	if err := s.validateEstimateHeader(ctx, input); err != nil {
		return nil, err
	}

	date := dateOnly(input.Date)
	taken, err := s.docs.EstimateNumberTaken(ctx, input.Number, date, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: estimate number %q already used on %s", ErrValidation, input.Number, date.Format("2006-01-02"))
	}

	est := &model.Estimate{
		ID:              uuid.New(),
		Number:          input.Number,
		Date:            date,
		ObjectID:        input.ObjectID,
		OrganizationID:  input.OrganizationID,
		Status:          model.DocumentStatusDraft,
		Comment:         input.Comment,
		Version:         1,
		CreatedByUserID: principal.UserID,
	}
	lines, totalSum, totalLabor, err := s.buildEstimateLines(ctx, est.ID, input.Lines)
	if err != nil {
		return nil, err
	}
	est.Lines = lines
	est.TotalSum = totalSum
	est.TotalLabor = totalLabor

	if err := s.docs.CreateEstimate(ctx, est); err != nil {
		return nil, err
	}
	s.logChanged(model.DocumentTypeEstimate, est.ID, "created", principal)
	return s.docs.GetEstimate(ctx, est.ID)
}

func (s *DocumentService) GetEstimate(ctx context.Context, id uuid.UUID) (*model.Estimate, error) {
	est, err := s.docs.GetEstimate(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return est, nil
}

func (s *DocumentService) ListEstimates(ctx context.Context, limit, offset int) ([]model.Estimate, error) {
	return s.docs.ListEstimates(ctx, normalizeLimit(limit), offset)
}

func (s *DocumentService) UpdateEstimate(ctx context.Context, principal model.Principal, id uuid.UUID, expectedVersion int, input EstimateInput) (*model.Estimate, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}
	current, err := s.docs.GetEstimate(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if current.Status == model.DocumentStatusPosted {
		return nil, fmt.Errorf("%w: estimate %s is posted, unpost before editing", ErrInvalidState, id)
	}
	if err := s.validateEstimateHeader(ctx, input); err != nil {
		return nil, err
	}

	date := dateOnly(input.Date)
	taken, err := s.docs.EstimateNumberTaken(ctx, input.Number, date, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: estimate number %q already used on %s", ErrValidation, input.Number, date.Format("2006-01-02"))
	}

	est := &model.Estimate{
		ID:             id,
		Number:         input.Number,
		Date:           date,
		ObjectID:       input.ObjectID,
		OrganizationID: input.OrganizationID,
		Comment:        input.Comment,
	}
	lines, totalSum, totalLabor, err := s.buildEstimateLines(ctx, id, input.Lines)
	if err != nil {
		return nil, err
	}
	est.Lines = lines
	est.TotalSum = totalSum
	est.TotalLabor = totalLabor

	if err := s.docs.ReplaceEstimate(ctx, est, expectedVersion); err != nil {
		if errors.Is(err, repository.ErrLinesReferenced) {
			return nil, fmt.Errorf("%w: estimate %s lines are referenced by daily reports", ErrDependency, id)
		}
		return nil, mapVersionMismatch(err, id)
	}
	s.logChanged(model.DocumentTypeEstimate, id, "updated", principal)
	return s.docs.GetEstimate(ctx, id)
}

func (s *DocumentService) SoftDeleteEstimate(ctx context.Context, principal model.Principal, id uuid.UUID, expectedVersion int) error {
	if principal.IsViewer() {
		return ErrPermissionDenied
	}
	current, err := s.docs.GetEstimate(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if current.Status == model.DocumentStatusPosted {
		return fmt.Errorf("%w: estimate %s is posted, unpost before deleting", ErrInvalidState, id)
	}
	if err := s.docs.SoftDeleteEstimate(ctx, id, expectedVersion); err != nil {
		return mapVersionMismatch(err, id)
	}
	s.logChanged(model.DocumentTypeEstimate, id, "deleted", principal)
	return nil
}

func (s *DocumentService) validateEstimateHeader(ctx context.Context, input EstimateInput) error {
	if input.Number == "" {
		return fmt.Errorf("%w: number is required", ErrValidation)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := s.refs.GetSiteObject(ctx, input.ObjectID); err != nil {
		return refError(err, "object", input.ObjectID)
	}
	if input.OrganizationID != nil {
		if _, err := s.refs.GetOrganization(ctx, *input.OrganizationID); err != nil {
			return refError(err, "organization", *input.OrganizationID)
		}
	}
	return nil
}

// buildEstimateLines validates the flat line set, resolves parent-row
// references, computes leaf sums and rolls them up into group rows, and
// returns the document totals over non-group lines.
func (s *DocumentService) buildEstimateLines(ctx context.Context, estimateID uuid.UUID, inputs []EstimateLineInput) ([]model.EstimateLine, float64, float64, error) {
	lines := make([]model.EstimateLine, len(inputs))
	for i, in := range inputs {
		row := i + 1
		line := model.EstimateLine{
			ID:         uuid.New(),
			EstimateID: estimateID,
			IsGroup:    in.IsGroup,
			Name:       in.Name,
			OrderNum:   row,
		}

		if in.ParentRow != nil {
			parentRow := *in.ParentRow
			if parentRow < 1 || parentRow >= row {
				return nil, 0, 0, fmt.Errorf("%w: line %d references invalid parent row %d", ErrValidation, row, parentRow)
			}
			if !lines[parentRow-1].IsGroup {
				return nil, 0, 0, fmt.Errorf("%w: line %d parent row %d is not a group", ErrValidation, row, parentRow)
			}
			parentID := lines[parentRow-1].ID
			line.ParentID = &parentID
		}

		if in.IsGroup {
			if in.Quantity != 0 || in.Price != 0 {
				return nil, 0, 0, fmt.Errorf("%w: group line %d must not carry quantity or price", ErrValidation, row)
			}
			if in.WorkID != nil {
				return nil, 0, 0, fmt.Errorf("%w: group line %d must not reference a work", ErrValidation, row)
			}
			lines[i] = line
			continue
		}

		if in.WorkID == nil {
			return nil, 0, 0, fmt.Errorf("%w: line %d requires a work reference", ErrValidation, row)
		}
		if _, err := s.refs.GetWork(ctx, *in.WorkID); err != nil {
			return nil, 0, 0, refError(err, fmt.Sprintf("line %d work", row), *in.WorkID)
		}
		if in.Quantity < 0 || in.Price < 0 || in.Labor < 0 {
			return nil, 0, 0, fmt.Errorf("%w: line %d has negative quantity, price or labor", ErrValidation, row)
		}

		line.WorkID = in.WorkID
		line.Quantity = in.Quantity
		line.Price = in.Price
		line.Sum = in.Quantity * in.Price
		line.Labor = in.Labor
		lines[i] = line
	}

	// Roll leaf sums up through the ancestor group chain.
	byID := make(map[uuid.UUID]int, len(lines))
	for i := range lines {
		byID[lines[i].ID] = i
	}
	totalSum, totalLabor := 0.0, 0.0
	for i := range lines {
		if lines[i].IsGroup {
			continue
		}
		totalSum += lines[i].Sum
		totalLabor += lines[i].Labor
		parent := lines[i].ParentID
		for parent != nil {
			idx := byID[*parent]
			lines[idx].Sum += lines[i].Sum
			lines[idx].Labor += lines[i].Labor
			parent = lines[idx].ParentID
		}
	}

	return lines, totalSum, totalLabor, nil
}

// --- Daily reports ---

func (s *DocumentService) CreateDailyReport(ctx context.Context, principal model.Principal, input DailyReportInput) (*model.DailyReport, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}
	est, err := s.validateDailyReportHeader(ctx, input)
	if err != nil {
		return nil, err
	}

	date := dateOnly(input.Date)
	taken, err := s.docs.DailyReportNumberTaken(ctx, input.Number, date, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: daily report number %q already used on %s", ErrValidation, input.Number, date.Format("2006-01-02"))
	}

	report := &model.DailyReport{
		ID:              uuid.New(),
		Number:          input.Number,
		Date:            date,
		ObjectID:        input.ObjectID,
		EstimateID:      input.EstimateID,
		Status:          model.DocumentStatusDraft,
		Comment:         input.Comment,
		Version:         1,
		CreatedByUserID: principal.UserID,
	}
	lines, totalSum, totalLabor, err := s.buildDailyReportLines(ctx, report.ID, est, input.Lines)
	if err != nil {
		return nil, err
	}
	report.Lines = lines
	report.TotalSum = totalSum
	report.TotalLabor = totalLabor

	if err := s.docs.CreateDailyReport(ctx, report); err != nil {
		return nil, err
	}
	s.logChanged(model.DocumentTypeDailyReport, report.ID, "created", principal)
	return s.docs.GetDailyReport(ctx, report.ID)
}

func (s *DocumentService) GetDailyReport(ctx context.Context, id uuid.UUID) (*model.DailyReport, error) {
	report, err := s.docs.GetDailyReport(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return report, nil
}

func (s *DocumentService) ListDailyReports(ctx context.Context, limit, offset int) ([]model.DailyReport, error) {
	return s.docs.ListDailyReports(ctx, normalizeLimit(limit), offset)
}

func (s *DocumentService) UpdateDailyReport(ctx context.Context, principal model.Principal, id uuid.UUID, expectedVersion int, input DailyReportInput) (*model.DailyReport, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}
	current, err := s.docs.GetDailyReport(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if current.Status == model.DocumentStatusPosted {
		return nil, fmt.Errorf("%w: daily report %s is posted, unpost before editing", ErrInvalidState, id)
	}
	est, err := s.validateDailyReportHeader(ctx, input)
	if err != nil {
		return nil, err
	}

	date := dateOnly(input.Date)
	taken, err := s.docs.DailyReportNumberTaken(ctx, input.Number, date, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: daily report number %q already used on %s", ErrValidation, input.Number, date.Format("2006-01-02"))
	}

	report := &model.DailyReport{
		ID:         id,
		Number:     input.Number,
		Date:       date,
		ObjectID:   input.ObjectID,
		EstimateID: input.EstimateID,
		Comment:    input.Comment,
	}
	lines, totalSum, totalLabor, err := s.buildDailyReportLines(ctx, id, est, input.Lines)
	if err != nil {
		return nil, err
	}
	report.Lines = lines
	report.TotalSum = totalSum
	report.TotalLabor = totalLabor

	if err := s.docs.ReplaceDailyReport(ctx, report, expectedVersion); err != nil {
		return nil, mapVersionMismatch(err, id)
	}
	s.logChanged(model.DocumentTypeDailyReport, id, "updated", principal)
	return s.docs.GetDailyReport(ctx, id)
}

func (s *DocumentService) SoftDeleteDailyReport(ctx context.Context, principal model.Principal, id uuid.UUID, expectedVersion int) error {
	if principal.IsViewer() {
		return ErrPermissionDenied
	}
	current, err := s.docs.GetDailyReport(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if current.Status == model.DocumentStatusPosted {
		return fmt.Errorf("%w: daily report %s is posted, unpost before deleting", ErrInvalidState, id)
	}
	if err := s.docs.SoftDeleteDailyReport(ctx, id, expectedVersion); err != nil {
		return mapVersionMismatch(err, id)
	}
	s.logChanged(model.DocumentTypeDailyReport, id, "deleted", principal)
	return nil
}

func (s *DocumentService) validateDailyReportHeader(ctx context.Context, input DailyReportInput) (*model.Estimate, error) {
	if input.Number == "" {
		return nil, fmt.Errorf("%w: number is required", ErrValidation)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := s.refs.GetSiteObject(ctx, input.ObjectID); err != nil {
		return nil, refError(err, "object", input.ObjectID)
	}
	est, err := s.docs.GetEstimate(ctx, input.EstimateID)
	if err != nil {
		return nil, refError(err, "estimate", input.EstimateID)
	}
	return est, nil
}

// buildDailyReportLines copies planned labor from the referenced estimate
// lines and computes the deviation; the copy is a snapshot, later estimate
// edits do not flow back into existing reports.
func (s *DocumentService) buildDailyReportLines(ctx context.Context, reportID uuid.UUID, est *model.Estimate, inputs []DailyReportLineInput) ([]model.DailyReportLine, float64, float64, error) {
	estLines := make(map[uuid.UUID]*model.EstimateLine, len(est.Lines))
	for i := range est.Lines {
		estLines[est.Lines[i].ID] = &est.Lines[i]
	}

	lines := make([]model.DailyReportLine, len(inputs))
	totalSum, totalLabor := 0.0, 0.0
	for i, in := range inputs {
		row := i + 1
		estLine, ok := estLines[in.EstimateLineID]
		if !ok {
			return nil, 0, 0, fmt.Errorf("%w: line %d references line %s not in estimate %s", ErrValidation, row, in.EstimateLineID, est.ID)
		}
		if estLine.IsGroup {
			return nil, 0, 0, fmt.Errorf("%w: line %d references a group line", ErrValidation, row)
		}
		if in.ActualLabor < 0 {
			return nil, 0, 0, fmt.Errorf("%w: line %d has negative actual labor", ErrValidation, row)
		}

		executors := make([]model.Person, 0, len(in.ExecutorIDs))
		for _, personID := range in.ExecutorIDs {
			person, err := s.refs.GetPerson(ctx, personID)
			if err != nil {
				return nil, 0, 0, refError(err, fmt.Sprintf("line %d executor", row), personID)
			}
			executors = append(executors, *person)
		}

		lines[i] = model.DailyReportLine{
			ID:             uuid.New(),
			DailyReportID:  reportID,
			EstimateLineID: in.EstimateLineID,
			PlannedLabor:   estLine.Labor,
			ActualLabor:    in.ActualLabor,
			Deviation:      in.ActualLabor - estLine.Labor,
			OrderNum:       row,
			Executors:      executors,
		}
		totalLabor += in.ActualLabor
		totalSum += absorbedSum(estLine, in.ActualLabor)
	}
	return lines, totalSum, totalLabor, nil
}

// --- Timesheets ---

func (s *DocumentService) CreateTimesheet(ctx context.Context, principal model.Principal, input TimesheetInput) (*model.Timesheet, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}
	if err := s.validateTimesheetHeader(ctx, input); err != nil {
		return nil, err
	}

	date := dateOnly(input.Date)
	taken, err := s.docs.TimesheetNumberTaken(ctx, input.Number, date, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: timesheet number %q already used on %s", ErrValidation, input.Number, date.Format("2006-01-02"))
	}

	sheet := &model.Timesheet{
		ID:              uuid.New(),
		Number:          input.Number,
		Date:            date,
		ObjectID:        input.ObjectID,
		EstimateID:      input.EstimateID,
		Status:          model.DocumentStatusDraft,
		Comment:         input.Comment,
		Version:         1,
		CreatedByUserID: principal.UserID,
	}
	lines, totalSum, totalLabor, err := s.buildTimesheetLines(ctx, sheet.ID, input.Lines)
	if err != nil {
		return nil, err
	}
	sheet.Lines = lines
	sheet.TotalSum = totalSum
	sheet.TotalLabor = totalLabor

	if err := s.docs.CreateTimesheet(ctx, sheet); err != nil {
		return nil, err
	}
	s.logChanged(model.DocumentTypeTimesheet, sheet.ID, "created", principal)
	return s.docs.GetTimesheet(ctx, sheet.ID)
}

func (s *DocumentService) GetTimesheet(ctx context.Context, id uuid.UUID) (*model.Timesheet, error) {
	sheet, err := s.docs.GetTimesheet(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return sheet, nil
}

func (s *DocumentService) ListTimesheets(ctx context.Context, limit, offset int) ([]model.Timesheet, error) {
	return s.docs.ListTimesheets(ctx, normalizeLimit(limit), offset)
}

func (s *DocumentService) UpdateTimesheet(ctx context.Context, principal model.Principal, id uuid.UUID, expectedVersion int, input TimesheetInput) (*model.Timesheet, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}
	current, err := s.docs.GetTimesheet(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if current.Status == model.DocumentStatusPosted {
		return nil, fmt.Errorf("%w: timesheet %s is posted, unpost before editing", ErrInvalidState, id)
	}
	if err := s.validateTimesheetHeader(ctx, input); err != nil {
		return nil, err
	}

	date := dateOnly(input.Date)
	taken, err := s.docs.TimesheetNumberTaken(ctx, input.Number, date, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: timesheet number %q already used on %s", ErrValidation, input.Number, date.Format("2006-01-02"))
	}

	sheet := &model.Timesheet{
		ID:         id,
		Number:     input.Number,
		Date:       date,
		ObjectID:   input.ObjectID,
		EstimateID: input.EstimateID,
		Comment:    input.Comment,
	}
	lines, totalSum, totalLabor, err := s.buildTimesheetLines(ctx, id, input.Lines)
	if err != nil {
		return nil, err
	}
	sheet.Lines = lines
	sheet.TotalSum = totalSum
	sheet.TotalLabor = totalLabor

	if err := s.docs.ReplaceTimesheet(ctx, sheet, expectedVersion); err != nil {
		return nil, mapVersionMismatch(err, id)
	}
	s.logChanged(model.DocumentTypeTimesheet, id, "updated", principal)
	return s.docs.GetTimesheet(ctx, id)
}

func (s *DocumentService) SoftDeleteTimesheet(ctx context.Context, principal model.Principal, id uuid.UUID, expectedVersion int) error {
	if principal.IsViewer() {
		return ErrPermissionDenied
	}
	current, err := s.docs.GetTimesheet(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if current.Status == model.DocumentStatusPosted {
		return fmt.Errorf("%w: timesheet %s is posted, unpost before deleting", ErrInvalidState, id)
	}
	if err := s.docs.SoftDeleteTimesheet(ctx, id, expectedVersion); err != nil {
		return mapVersionMismatch(err, id)
	}
	s.logChanged(model.DocumentTypeTimesheet, id, "deleted", principal)
	return nil
}

func (s *DocumentService) validateTimesheetHeader(ctx context.Context, input TimesheetInput) error {
	if input.Number == "" {
		return fmt.Errorf("%w: number is required", ErrValidation)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := s.refs.GetSiteObject(ctx, input.ObjectID); err != nil {
		return refError(err, "object", input.ObjectID)
	}
	if input.EstimateID != nil {
		if _, err := s.docs.GetEstimate(ctx, *input.EstimateID); err != nil {
			return refError(err, "estimate", *input.EstimateID)
		}
	}
	return nil
}

func (s *DocumentService) buildTimesheetLines(ctx context.Context, sheetID uuid.UUID, inputs []TimesheetLineInput) ([]model.TimesheetLine, float64, float64, error) {
	lines := make([]model.TimesheetLine, len(inputs))
	totalSum, totalLabor := 0.0, 0.0
	for i, in := range inputs {
		row := i + 1
		if _, err := s.refs.GetPerson(ctx, in.PersonID); err != nil {
			return nil, 0, 0, refError(err, fmt.Sprintf("line %d person", row), in.PersonID)
		}
		if in.WorkID != nil {
			if _, err := s.refs.GetWork(ctx, *in.WorkID); err != nil {
				return nil, 0, 0, refError(err, fmt.Sprintf("line %d work", row), *in.WorkID)
			}
		}
		if in.WorkDate.IsZero() {
			return nil, 0, 0, fmt.Errorf("%w: line %d requires a work date", ErrValidation, row)
		}
		if in.Hours < 0 || in.Rate < 0 {
			return nil, 0, 0, fmt.Errorf("%w: line %d has negative hours or rate", ErrValidation, row)
		}

		sum := in.Hours * in.Rate
		lines[i] = model.TimesheetLine{
			ID:          uuid.New(),
			TimesheetID: sheetID,
			PersonID:    in.PersonID,
			WorkID:      in.WorkID,
			WorkDate:    dateOnly(in.WorkDate),
			Hours:       in.Hours,
			Rate:        in.Rate,
			Sum:         sum,
			OrderNum:    row,
		}
		totalSum += sum
		totalLabor += in.Hours
	}
	return lines, totalSum, totalLabor, nil
}

// --- helpers ---

// absorbedSum charges a share of the planned line cost proportional to the
// labor actually spent on it. A planned line without labor absorbs nothing.
func absorbedSum(estLine *model.EstimateLine, actualLabor float64) float64 {
	if estLine.Labor <= 0 {
		return 0
	}
	return actualLabor / estLine.Labor * estLine.Sum
}

func (s *DocumentService) logChanged(docType model.DocumentType, id uuid.UUID, action string, principal model.Principal) {
	s.log.Info().
		Str("document_type", string(docType)).
		Str("document_id", id.String()).
		Str("action", action).
		Str("user_id", principal.UserID.String()).
		Msg("document changed")
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func mapVersionMismatch(err error, id uuid.UUID) error {
	if errors.Is(err, repository.ErrVersionMismatch) {
		return fmt.Errorf("%w: document %s was modified concurrently", ErrConflict, id)
	}
	return err
}

func refError(err error, kind string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s not found", ErrValidation, kind, id)
	}
	return err
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}
