package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/siteworks/internal/model"
)

type RegisterRepository struct {
	db *gorm.DB
}

func NewRegisterRepository(db *gorm.DB) *RegisterRepository {
	return &RegisterRepository{db: db}
}

func (r *RegisterRepository) WithTx(tx *gorm.DB) *RegisterRepository {
	return &RegisterRepository{db: tx}
}

func (r *RegisterRepository) CreateMovements(ctx context.Context, movements []model.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&movements).Error
}

func (r *RegisterRepository) CountByDocument(ctx context.Context, docType model.DocumentType, docID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movement{}).
		Where("document_type = ? AND document_id = ?", docType, docID).
		Count(&count).Error
	return count, err
}

// DeleteByDocument retracts all movements produced by a document.
// A document without movements is a no-op, not an error.
func (r *RegisterRepository) DeleteByDocument(ctx context.Context, docType model.DocumentType, docID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("document_type = ? AND document_id = ?", docType, docID).
		Delete(&model.Movement{})
	return result.RowsAffected, result.Error
}

func (r *RegisterRepository) ListByDocument(ctx context.Context, docType model.DocumentType, docID uuid.UUID) ([]model.Movement, error) {
	var movements []model.Movement
	err := r.db.WithContext(ctx).
		Where("document_type = ? AND document_id = ?", docType, docID).
		Order("line_order ASC").
		Find(&movements).Error
	return movements, err
}

func (r *RegisterRepository) List(ctx context.Context, filter model.MovementFilter) ([]model.Movement, error) {
	query := r.db.WithContext(ctx).Model(&model.Movement{})
	query = applyFilter(query, filter)
	query = query.Order("period ASC, document_id ASC, line_order ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var movements []model.Movement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Balances aggregates movements into income/expense/balance per
// (object, estimate, work). Balances are never stored; this query is the
// single source of truth for them.
func (r *RegisterRepository) Balances(ctx context.Context, filter model.MovementFilter) ([]model.BalanceRow, error) {
	query := r.db.WithContext(ctx).Model(&model.Movement{}).
		Select(`object_id,
			estimate_id,
			work_id,
			COALESCE(SUM(CASE WHEN record_type = 'INCOME' THEN quantity ELSE 0 END), 0) AS income_quantity,
			COALESCE(SUM(CASE WHEN record_type = 'INCOME' THEN sum ELSE 0 END), 0) AS income_sum,
			COALESCE(SUM(CASE WHEN record_type = 'EXPENSE' THEN quantity ELSE 0 END), 0) AS expense_quantity,
			COALESCE(SUM(CASE WHEN record_type = 'EXPENSE' THEN sum ELSE 0 END), 0) AS expense_sum,
			COALESCE(SUM(CASE WHEN record_type = 'INCOME' THEN quantity ELSE -quantity END), 0) AS balance_quantity,
			COALESCE(SUM(CASE WHEN record_type = 'INCOME' THEN sum ELSE -sum END), 0) AS balance_sum`)
	query = applyFilter(query, filter)
	query = query.
		Group("object_id, estimate_id, work_id").
		Order("object_id ASC, estimate_id ASC, work_id ASC")

	var rows []model.BalanceRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func applyFilter(query *gorm.DB, filter model.MovementFilter) *gorm.DB {
	if !filter.PeriodFrom.IsZero() {
		query = query.Where("period >= ?", filter.PeriodFrom)
	}
	if !filter.PeriodTo.IsZero() {
		query = query.Where("period <= ?", filter.PeriodTo)
	}
	if filter.ObjectID != nil {
		query = query.Where("object_id = ?", *filter.ObjectID)
	}
	if filter.EstimateID != nil {
		query = query.Where("estimate_id = ?", *filter.EstimateID)
	}
	if filter.WorkID != nil {
		query = query.Where("work_id = ?", *filter.WorkID)
	}
	return query
}
