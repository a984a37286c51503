package model

import (
	"time"

	"github.com/google/uuid"
)

type RecordType string

const (
	// RecordTypeIncome: planned work put onto the register by a posted estimate.
	RecordTypeIncome RecordType = "INCOME"
	// RecordTypeExpense: execution charged against the plan by a posted
	// daily report or timesheet.
	RecordTypeExpense RecordType = "EXPENSE"
)

// Movement is one register row produced by posting a document line.
// Movements are never edited; they are created on post and deleted on unpost.
type Movement struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Period       time.Time    `gorm:"not null;index"`
	RecordType   RecordType   `gorm:"size:16;not null"`
	ObjectID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	EstimateID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	WorkID       *uuid.UUID   `gorm:"type:uuid;index"`
	DocumentType DocumentType `gorm:"size:32;not null;index:idx_movements_document"`
	DocumentID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_document"`
	LineID       uuid.UUID    `gorm:"type:uuid;not null"`
	LineOrder    int          `gorm:"not null"`
	Quantity     float64      `gorm:"not null"`
	Sum          float64      `gorm:"not null"`
	CreatedAt    time.Time
}

// SignedQuantity applies the record-type sign: income positive, expense negative.
func (m *Movement) SignedQuantity() float64 {
	if m.RecordType == RecordTypeExpense {
		return -m.Quantity
	}
	return m.Quantity
}

func (m *Movement) SignedSum() float64 {
	if m.RecordType == RecordTypeExpense {
		return -m.Sum
	}
	return m.Sum
}

type MovementFilter struct {
	PeriodFrom time.Time
	PeriodTo   time.Time
	ObjectID   *uuid.UUID
	EstimateID *uuid.UUID
	WorkID     *uuid.UUID
	Limit      int
	Offset     int
}

// BalanceRow is a derived aggregate over movements, one row per
// (object, estimate, work) group. Balance = income − expense.
type BalanceRow struct {
	ObjectID        uuid.UUID
	EstimateID      uuid.UUID
	WorkID          *uuid.UUID
	IncomeQuantity  float64
	IncomeSum       float64
	ExpenseQuantity float64
	ExpenseSum      float64
	BalanceQuantity float64
	BalanceSum      float64
}
