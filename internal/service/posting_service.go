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

// PostingService owns the DRAFT <-> POSTED transition. Posting validates the
// document, freezes its totals and materializes register movements; unposting
// retracts them. Each transition runs in a single transaction so a reader can
// never observe a posted document with a partial movement set.
type PostingService struct {
	db       *gorm.DB
	docs     *repository.DocumentRepository
	register *repository.RegisterRepository
	log      zerolog.Logger
}

func NewPostingService(db *gorm.DB, docs *repository.DocumentRepository, register *repository.RegisterRepository, log zerolog.Logger) *PostingService {
	return &PostingService{db: db, docs: docs, register: register, log: log}
}

type PostResult struct {
	ID       uuid.UUID
	Status   model.DocumentStatus
	PostedAt *time.Time
}

func (s *PostingService) Post(ctx context.Context, principal model.Principal, docType model.DocumentType, id uuid.UUID) (*PostResult, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}

	now := time.Now().UTC()
	var result *PostResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		docs := s.docs.WithTx(tx)
		register := s.register.WithTx(tx)

		movements, version, err := s.prepareMovements(ctx, docs, docType, id)
		if err != nil {
			return err
		}

		existing, err := register.CountByDocument(ctx, docType, id)
		if err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: document %s already has %d movements while draft", ErrInternal, id, existing)
		}

		if err := register.CreateMovements(ctx, movements); err != nil {
			return fmt.Errorf("%w: %v", ErrPosting, err)
		}
		if err := s.setPosted(ctx, docs, docType, id, &now, &principal.UserID, model.DocumentStatusPosted, version); err != nil {
			return err
		}
		result = &PostResult{ID: id, Status: model.DocumentStatusPosted, PostedAt: &now}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("document_type", string(docType)).
		Str("document_id", id.String()).
		Str("user_id", principal.UserID.String()).
		Msg("document posted")
	return result, nil
}

func (s *PostingService) Unpost(ctx context.Context, principal model.Principal, docType model.DocumentType, id uuid.UUID) (*PostResult, error) {
	if principal.IsViewer() {
		return nil, ErrPermissionDenied
	}

	var result *PostResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		docs := s.docs.WithTx(tx)
		register := s.register.WithTx(tx)

		version, err := s.checkUnpostable(ctx, docs, docType, id)
		if err != nil {
			return err
		}

		if _, err := register.DeleteByDocument(ctx, docType, id); err != nil {
			return err
		}
		if err := s.setPosted(ctx, docs, docType, id, nil, nil, model.DocumentStatusDraft, version); err != nil {
			return err
		}
		result = &PostResult{ID: id, Status: model.DocumentStatusDraft}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("document_type", string(docType)).
		Str("document_id", id.String()).
		Str("user_id", principal.UserID.String()).
		Msg("document unposted")
	return result, nil
}

// prepareMovements loads the document under lock, checks the state machine
// and dependency preconditions, and derives the movement set for its lines.
func (s *PostingService) prepareMovements(ctx context.Context, docs *repository.DocumentRepository, docType model.DocumentType, id uuid.UUID) ([]model.Movement, int, error) {
	switch docType {
	case model.DocumentTypeEstimate:
		est, err := docs.GetEstimateForUpdate(ctx, id)
		if err != nil {
			return nil, 0, mapNotFound(err)
		}
		if est.Status == model.DocumentStatusPosted {
			return nil, 0, fmt.Errorf("%w: estimate %s is already posted", ErrInvalidState, id)
		}
		movements, err := materializeEstimate(est)
		if err != nil {
			return nil, 0, err
		}
		return movements, est.Version, nil

	case model.DocumentTypeDailyReport:
		report, err := docs.GetDailyReportForUpdate(ctx, id)
		if err != nil {
			return nil, 0, mapNotFound(err)
		}
		if report.Status == model.DocumentStatusPosted {
			return nil, 0, fmt.Errorf("%w: daily report %s is already posted", ErrInvalidState, id)
		}
		// Lock the estimate row so this post serializes with a concurrent
		// estimate unpost; otherwise both could commit and leave a posted
		// report referencing a draft estimate.
		est, err := docs.GetEstimateForUpdate(ctx, report.EstimateID)
		if err != nil {
			return nil, 0, mapNotFound(err)
		}
		if est.Status != model.DocumentStatusPosted {
			return nil, 0, fmt.Errorf("%w: estimate %s must be posted before daily report %s", ErrDependency, est.ID, id)
		}
		movements, err := materializeDailyReport(report, est)
		if err != nil {
			return nil, 0, err
		}
		return movements, report.Version, nil

	case model.DocumentTypeTimesheet:
		sheet, err := docs.GetTimesheetForUpdate(ctx, id)
		if err != nil {
			return nil, 0, mapNotFound(err)
		}
		if sheet.Status == model.DocumentStatusPosted {
			return nil, 0, fmt.Errorf("%w: timesheet %s is already posted", ErrInvalidState, id)
		}
		var est *model.Estimate
		if sheet.EstimateID != nil {
			est, err = docs.GetEstimateForUpdate(ctx, *sheet.EstimateID)
			if err != nil {
				return nil, 0, mapNotFound(err)
			}
			if est.Status != model.DocumentStatusPosted {
				return nil, 0, fmt.Errorf("%w: estimate %s must be posted before timesheet %s", ErrDependency, est.ID, id)
			}
		}
		return materializeTimesheet(sheet), sheet.Version, nil

	default:
		return nil, 0, fmt.Errorf("%w: unknown document type %q", ErrValidation, docType)
	}
}

func (s *PostingService) checkUnpostable(ctx context.Context, docs *repository.DocumentRepository, docType model.DocumentType, id uuid.UUID) (int, error) {
	switch docType {
	case model.DocumentTypeEstimate:
		est, err := docs.GetEstimateForUpdate(ctx, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		if est.Status != model.DocumentStatusPosted {
			return 0, fmt.Errorf("%w: estimate %s is not posted", ErrInvalidState, id)
		}
		dependents, err := docs.CountPostedEstimateDependents(ctx, id)
		if err != nil {
			return 0, err
		}
		if dependents > 0 {
			return 0, fmt.Errorf("%w: estimate %s has %d posted dependent documents", ErrDependency, id, dependents)
		}
		return est.Version, nil

	case model.DocumentTypeDailyReport:
		report, err := docs.GetDailyReportForUpdate(ctx, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		if report.Status != model.DocumentStatusPosted {
			return 0, fmt.Errorf("%w: daily report %s is not posted", ErrInvalidState, id)
		}
		return report.Version, nil

	case model.DocumentTypeTimesheet:
		sheet, err := docs.GetTimesheetForUpdate(ctx, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		if sheet.Status != model.DocumentStatusPosted {
			return 0, fmt.Errorf("%w: timesheet %s is not posted", ErrInvalidState, id)
		}
		return sheet.Version, nil

	default:
		return 0, fmt.Errorf("%w: unknown document type %q", ErrValidation, docType)
	}
}

func (s *PostingService) setPosted(ctx context.Context, docs *repository.DocumentRepository, docType model.DocumentType, id uuid.UUID, postedAt *time.Time, postedBy *uuid.UUID, status model.DocumentStatus, version int) error {
	var err error
	switch docType {
	case model.DocumentTypeEstimate:
		err = docs.SetEstimatePosted(ctx, id, postedAt, postedBy, status, version)
	case model.DocumentTypeDailyReport:
		err = docs.SetDailyReportPosted(ctx, id, postedAt, postedBy, status, version)
	case model.DocumentTypeTimesheet:
		err = docs.SetTimesheetPosted(ctx, id, postedAt, postedBy, status, version)
	}
	if errors.Is(err, repository.ErrVersionMismatch) {
		return fmt.Errorf("%w: document %s was modified concurrently", ErrConflict, id)
	}
	return err
}

// --- materializers ---

// materializeEstimate turns every non-group line into an INCOME movement:
// the planned scope enters the work-execution register.
func materializeEstimate(est *model.Estimate) ([]model.Movement, error) {
	period := monthStart(est.Date)
	movements := make([]model.Movement, 0, len(est.Lines))
	for i := range est.Lines {
		line := &est.Lines[i]
		if line.IsGroup {
			continue
		}
		if line.WorkID == nil {
			return nil, fmt.Errorf("%w: estimate %s line %d has no work reference", ErrValidation, est.ID, line.OrderNum)
		}
		movements = append(movements, model.Movement{
			ID:           uuid.New(),
			Period:       period,
			RecordType:   model.RecordTypeIncome,
			ObjectID:     est.ObjectID,
			EstimateID:   est.ID,
			WorkID:       line.WorkID,
			DocumentType: model.DocumentTypeEstimate,
			DocumentID:   est.ID,
			LineID:       line.ID,
			LineOrder:    line.OrderNum,
			Quantity:     line.Quantity,
			Sum:          line.Sum,
		})
	}
	if len(movements) == 0 {
		return nil, fmt.Errorf("%w: estimate %s has no postable lines", ErrValidation, est.ID)
	}
	return movements, nil
}

// materializeDailyReport turns every report line into an EXPENSE movement
// charged against the planned estimate line: quantity is the labor actually
// spent, sum is the planned cost absorbed in proportion to that labor.
func materializeDailyReport(report *model.DailyReport, est *model.Estimate) ([]model.Movement, error) {
	estLines := make(map[uuid.UUID]*model.EstimateLine, len(est.Lines))
	for i := range est.Lines {
		estLines[est.Lines[i].ID] = &est.Lines[i]
	}

	period := monthStart(report.Date)
	movements := make([]model.Movement, 0, len(report.Lines))
	for i := range report.Lines {
		line := &report.Lines[i]
		estLine, ok := estLines[line.EstimateLineID]
		if !ok || estLine.IsGroup {
			return nil, fmt.Errorf("%w: daily report %s line %d does not reference a work line of estimate %s", ErrValidation, report.ID, line.OrderNum, est.ID)
		}
		movements = append(movements, model.Movement{
			ID:           uuid.New(),
			Period:       period,
			RecordType:   model.RecordTypeExpense,
			ObjectID:     report.ObjectID,
			EstimateID:   report.EstimateID,
			WorkID:       estLine.WorkID,
			DocumentType: model.DocumentTypeDailyReport,
			DocumentID:   report.ID,
			LineID:       line.ID,
			LineOrder:    line.OrderNum,
			Quantity:     line.ActualLabor,
			Sum:          absorbedSum(estLine, line.ActualLabor),
		})
	}
	return movements, nil
}

// materializeTimesheet charges worked hours as EXPENSE against the bound
// estimate. An unbound timesheet posts without register effect (pure payroll).
func materializeTimesheet(sheet *model.Timesheet) []model.Movement {
	if sheet.EstimateID == nil {
		return nil
	}
	period := monthStart(sheet.Date)
	movements := make([]model.Movement, 0, len(sheet.Lines))
	for i := range sheet.Lines {
		line := &sheet.Lines[i]
		movements = append(movements, model.Movement{
			ID:           uuid.New(),
			Period:       period,
			RecordType:   model.RecordTypeExpense,
			ObjectID:     sheet.ObjectID,
			EstimateID:   *sheet.EstimateID,
			WorkID:       line.WorkID,
			DocumentType: model.DocumentTypeTimesheet,
			DocumentID:   sheet.ID,
			LineID:       line.ID,
			LineOrder:    line.OrderNum,
			Quantity:     line.Hours,
			Sum:          line.Sum,
		})
	}
	return movements
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
