package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/siteworks/internal/model"
)

// ErrVersionMismatch is returned when an optimistic version check fails.
var ErrVersionMismatch = errors.New("version mismatch")

// ErrLinesReferenced is returned when a line swap would delete lines that
// other documents still reference.
var ErrLinesReferenced = errors.New("lines referenced by dependent documents")

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// WithTx binds the repository to an open transaction.
func (r *DocumentRepository) WithTx(tx *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: tx}
}

func (r *DocumentRepository) lockingScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		// sqlite (test harness) has no FOR UPDATE; the version check still
		// guards against lost updates there.
		if r.db.Dialector.Name() == "postgres" {
			return db.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		return db
	}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("order_num ASC")
}

// --- Estimates ---

func (r *DocumentRepository) CreateEstimate(ctx context.Context, est *model.Estimate) error {
	return r.db.WithContext(ctx).Create(est).Error
}

func (r *DocumentRepository) GetEstimate(ctx context.Context, id uuid.UUID) (*model.Estimate, error) {
	var est model.Estimate
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("id = ? AND NOT is_deleted", id).
		First(&est).Error
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *DocumentRepository) GetEstimateForUpdate(ctx context.Context, id uuid.UUID) (*model.Estimate, error) {
	var est model.Estimate
	err := r.db.WithContext(ctx).
		Scopes(r.lockingScope()).
		Where("id = ? AND NOT is_deleted", id).
		First(&est).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("estimate_id = ?", id).
		Order("order_num ASC").
		Find(&est.Lines).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *DocumentRepository) ListEstimates(ctx context.Context, limit, offset int) ([]model.Estimate, error) {
	var estimates []model.Estimate
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("NOT is_deleted").
		Order("date DESC, number DESC").
		Limit(limit).Offset(offset).
		Find(&estimates).Error
	if err != nil {
		return nil, err
	}
	return estimates, nil
}

func (r *DocumentRepository) EstimateNumberTaken(ctx context.Context, number string, date time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Estimate{}).
		Where("number = ? AND date = ? AND NOT is_deleted AND id <> ?", number, date, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ReplaceEstimate updates the header and swaps the full line set in one
// transaction. expectedVersion guards against concurrent writers. The swap is
// refused while any daily report line still points at the old lines; deleting
// them would orphan the report.
func (r *DocumentRepository) ReplaceEstimate(ctx context.Context, est *model.Estimate, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Estimate{}).
			Where("id = ? AND version = ? AND NOT is_deleted", est.ID, expectedVersion).
			Updates(map[string]interface{}{
				"number":          est.Number,
				"date":            est.Date,
				"object_id":       est.ObjectID,
				"organization_id": est.OrganizationID,
				"comment":         est.Comment,
				"total_sum":       est.TotalSum,
				"total_labor":     est.TotalLabor,
				"version":         expectedVersion + 1,
				"updated_at":      time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionMismatch
		}
		var referenced int64
		err := tx.Model(&model.DailyReportLine{}).
			Joins("JOIN estimate_lines ON estimate_lines.id = daily_report_lines.estimate_line_id").
			Where("estimate_lines.estimate_id = ?", est.ID).
			Count(&referenced).Error
		if err != nil {
			return err
		}
		if referenced > 0 {
			return ErrLinesReferenced
		}
		if err := tx.Where("estimate_id = ?", est.ID).Delete(&model.EstimateLine{}).Error; err != nil {
			return err
		}
		if len(est.Lines) == 0 {
			return nil
		}
		return tx.Create(&est.Lines).Error
	})
}

func (r *DocumentRepository) SoftDeleteEstimate(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	return r.softDelete(ctx, &model.Estimate{}, id, expectedVersion)
}

// SetEstimatePosted flips the posting state of the header.
func (r *DocumentRepository) SetEstimatePosted(ctx context.Context, id uuid.UUID, postedAt *time.Time, postedBy *uuid.UUID, status model.DocumentStatus, expectedVersion int) error {
	return r.setPosted(ctx, &model.Estimate{}, id, postedAt, postedBy, status, expectedVersion)
}

// CountPostedEstimateDependents reports how many posted documents still
// reference the estimate; an estimate cannot be unposted while any remain.
func (r *DocumentRepository) CountPostedEstimateDependents(ctx context.Context, estimateID uuid.UUID) (int64, error) {
	var reports int64
	err := r.db.WithContext(ctx).Model(&model.DailyReport{}).
		Where("estimate_id = ? AND status = ? AND NOT is_deleted", estimateID, model.DocumentStatusPosted).
		Count(&reports).Error
	if err != nil {
		return 0, err
	}
	var timesheets int64
	err = r.db.WithContext(ctx).Model(&model.Timesheet{}).
		Where("estimate_id = ? AND status = ? AND NOT is_deleted", estimateID, model.DocumentStatusPosted).
		Count(&timesheets).Error
	if err != nil {
		return 0, err
	}
	return reports + timesheets, nil
}

// --- Daily reports ---

func (r *DocumentRepository) CreateDailyReport(ctx context.Context, report *model.DailyReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *DocumentRepository) GetDailyReport(ctx context.Context, id uuid.UUID) (*model.DailyReport, error) {
	var report model.DailyReport
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Preload("Lines.Executors").
		Where("id = ? AND NOT is_deleted", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *DocumentRepository) GetDailyReportForUpdate(ctx context.Context, id uuid.UUID) (*model.DailyReport, error) {
	var report model.DailyReport
	err := r.db.WithContext(ctx).
		Scopes(r.lockingScope()).
		Where("id = ? AND NOT is_deleted", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("daily_report_id = ?", id).
		Order("order_num ASC").
		Find(&report.Lines).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *DocumentRepository) ListDailyReports(ctx context.Context, limit, offset int) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("NOT is_deleted").
		Order("date DESC, number DESC").
		Limit(limit).Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *DocumentRepository) DailyReportNumberTaken(ctx context.Context, number string, date time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DailyReport{}).
		Where("number = ? AND date = ? AND NOT is_deleted AND id <> ?", number, date, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *DocumentRepository) ReplaceDailyReport(ctx context.Context, report *model.DailyReport, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.DailyReport{}).
			Where("id = ? AND version = ? AND NOT is_deleted", report.ID, expectedVersion).
			Updates(map[string]interface{}{
				"number":      report.Number,
				"date":        report.Date,
				"object_id":   report.ObjectID,
				"estimate_id": report.EstimateID,
				"comment":     report.Comment,
				"total_sum":   report.TotalSum,
				"total_labor": report.TotalLabor,
				"version":     expectedVersion + 1,
				"updated_at":  time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionMismatch
		}
		var oldLines []model.DailyReportLine
		if err := tx.Where("daily_report_id = ?", report.ID).Find(&oldLines).Error; err != nil {
			return err
		}
		for i := range oldLines {
			if err := tx.Model(&oldLines[i]).Association("Executors").Clear(); err != nil {
				return err
			}
		}
		if err := tx.Where("daily_report_id = ?", report.ID).Delete(&model.DailyReportLine{}).Error; err != nil {
			return err
		}
		if len(report.Lines) == 0 {
			return nil
		}
		return tx.Create(&report.Lines).Error
	})
}

func (r *DocumentRepository) SoftDeleteDailyReport(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	return r.softDelete(ctx, &model.DailyReport{}, id, expectedVersion)
}

func (r *DocumentRepository) SetDailyReportPosted(ctx context.Context, id uuid.UUID, postedAt *time.Time, postedBy *uuid.UUID, status model.DocumentStatus, expectedVersion int) error {
	return r.setPosted(ctx, &model.DailyReport{}, id, postedAt, postedBy, status, expectedVersion)
}

// --- Timesheets ---

func (r *DocumentRepository) CreateTimesheet(ctx context.Context, sheet *model.Timesheet) error {
	return r.db.WithContext(ctx).Create(sheet).Error
}

func (r *DocumentRepository) GetTimesheet(ctx context.Context, id uuid.UUID) (*model.Timesheet, error) {
	var sheet model.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("id = ? AND NOT is_deleted", id).
		First(&sheet).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *DocumentRepository) GetTimesheetForUpdate(ctx context.Context, id uuid.UUID) (*model.Timesheet, error) {
	var sheet model.Timesheet
	err := r.db.WithContext(ctx).
		Scopes(r.lockingScope()).
		Where("id = ? AND NOT is_deleted", id).
		First(&sheet).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("timesheet_id = ?", id).
		Order("order_num ASC").
		Find(&sheet.Lines).Error; err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *DocumentRepository) ListTimesheets(ctx context.Context, limit, offset int) ([]model.Timesheet, error) {
	var sheets []model.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("NOT is_deleted").
		Order("date DESC, number DESC").
		Limit(limit).Offset(offset).
		Find(&sheets).Error
	if err != nil {
		return nil, err
	}
	return sheets, nil
}

func (r *DocumentRepository) TimesheetNumberTaken(ctx context.Context, number string, date time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Timesheet{}).
		Where("number = ? AND date = ? AND NOT is_deleted AND id <> ?", number, date, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *DocumentRepository) ReplaceTimesheet(ctx context.Context, sheet *model.Timesheet, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Timesheet{}).
			Where("id = ? AND version = ? AND NOT is_deleted", sheet.ID, expectedVersion).
			Updates(map[string]interface{}{
				"number":      sheet.Number,
				"date":        sheet.Date,
				"object_id":   sheet.ObjectID,
				"estimate_id": sheet.EstimateID,
				"comment":     sheet.Comment,
				"total_sum":   sheet.TotalSum,
				"total_labor": sheet.TotalLabor,
				"version":     expectedVersion + 1,
				"updated_at":  time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionMismatch
		}
		if err := tx.Where("timesheet_id = ?", sheet.ID).Delete(&model.TimesheetLine{}).Error; err != nil {
			return err
		}
		if len(sheet.Lines) == 0 {
			return nil
		}
		return tx.Create(&sheet.Lines).Error
	})
}

func (r *DocumentRepository) SoftDeleteTimesheet(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	return r.softDelete(ctx, &model.Timesheet{}, id, expectedVersion)
}

func (r *DocumentRepository) SetTimesheetPosted(ctx context.Context, id uuid.UUID, postedAt *time.Time, postedBy *uuid.UUID, status model.DocumentStatus, expectedVersion int) error {
	return r.setPosted(ctx, &model.Timesheet{}, id, postedAt, postedBy, status, expectedVersion)
}

// --- shared ---

func (r *DocumentRepository) softDelete(ctx context.Context, m interface{}, id uuid.UUID, expectedVersion int) error {
	result := r.db.WithContext(ctx).Model(m).
		Where("id = ? AND version = ? AND NOT is_deleted", id, expectedVersion).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"version":    expectedVersion + 1,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func (r *DocumentRepository) setPosted(ctx context.Context, m interface{}, id uuid.UUID, postedAt *time.Time, postedBy *uuid.UUID, status model.DocumentStatus, expectedVersion int) error {
	result := r.db.WithContext(ctx).Model(m).
		Where("id = ? AND version = ? AND NOT is_deleted", id, expectedVersion).
		Updates(map[string]interface{}{
			"status":            status,
			"posted_at":         postedAt,
			"posted_by_user_id": postedBy,
			"version":           expectedVersion + 1,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	return nil
}
