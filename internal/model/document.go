package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeEstimate    DocumentType = "ESTIMATE"
	DocumentTypeDailyReport DocumentType = "DAILY_REPORT"
	DocumentTypeTimesheet   DocumentType = "TIMESHEET"
)

type DocumentStatus string

const (
	DocumentStatusDraft  DocumentStatus = "DRAFT"
	DocumentStatusPosted DocumentStatus = "POSTED"
)

// Estimate is the planned scope of work for a site object.
// Totals are recomputed from lines while the document is DRAFT and frozen on post.
type Estimate struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number          string    `gorm:"size:64;not null"`
	Date            time.Time `gorm:"not null"`
	ObjectID        uuid.UUID  `gorm:"type:uuid;not null"`
	OrganizationID  *uuid.UUID `gorm:"type:uuid"`
	Status          DocumentStatus `gorm:"size:16;not null;default:DRAFT"`
	PostedAt        *time.Time
	PostedByUserID  *uuid.UUID `gorm:"type:uuid"`
	TotalSum        float64    `gorm:"not null"`
	TotalLabor      float64    `gorm:"not null"`
	Comment         string
	Version         int  `gorm:"not null;default:1"`
	IsDeleted       bool `gorm:"not null;default:false"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lines []EstimateLine `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}

// EstimateLine is an itemized row of an estimate. Group rows (IsGroup)
// carry no quantity/price of their own; their Sum aggregates child rows.
type EstimateLine struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EstimateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID   *uuid.UUID `gorm:"type:uuid"`
	IsGroup    bool       `gorm:"not null;default:false"`
	WorkID     *uuid.UUID `gorm:"type:uuid"`
	Name       string     `gorm:"size:512"`
	Quantity   float64    `gorm:"not null"`
	Price      float64    `gorm:"not null"`
	Sum        float64    `gorm:"not null"`
	Labor      float64    `gorm:"not null"`
	OrderNum   int        `gorm:"not null"`
}

// DailyReport records actual execution against a posted estimate.
type DailyReport struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number          string    `gorm:"size:64;not null"`
	Date            time.Time `gorm:"not null"`
	ObjectID        uuid.UUID `gorm:"type:uuid;not null"`
	EstimateID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          DocumentStatus `gorm:"size:16;not null;default:DRAFT"`
	PostedAt        *time.Time
	PostedByUserID  *uuid.UUID `gorm:"type:uuid"`
	TotalSum        float64    `gorm:"not null"`
	TotalLabor      float64    `gorm:"not null"`
	Comment         string
	Version         int  `gorm:"not null;default:1"`
	IsDeleted       bool `gorm:"not null;default:false"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lines []DailyReportLine `gorm:"foreignKey:DailyReportID;constraint:OnDelete:CASCADE"`
}

// DailyReportLine references the planned estimate line being executed.
// PlannedLabor is copied from the estimate line at creation, not live-linked.
type DailyReportLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DailyReportID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EstimateLineID uuid.UUID `gorm:"type:uuid;not null"`
	PlannedLabor   float64   `gorm:"not null"`
	ActualLabor    float64   `gorm:"not null"`
	Deviation      float64   `gorm:"not null"`
	OrderNum       int       `gorm:"not null"`

	Executors []Person `gorm:"many2many:daily_report_executors;"`
}

// Timesheet records worked hours per person. When bound to an estimate the
// hours are charged against it on the register.
type Timesheet struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number          string    `gorm:"size:64;not null"`
	Date            time.Time `gorm:"not null"`
	ObjectID        uuid.UUID `gorm:"type:uuid;not null"`
	EstimateID      *uuid.UUID `gorm:"type:uuid;index"`
	Status          DocumentStatus `gorm:"size:16;not null;default:DRAFT"`
	PostedAt        *time.Time
	PostedByUserID  *uuid.UUID `gorm:"type:uuid"`
	TotalSum        float64    `gorm:"not null"`
	TotalLabor      float64    `gorm:"not null"`
	Comment         string
	Version         int  `gorm:"not null;default:1"`
	IsDeleted       bool `gorm:"not null;default:false"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lines []TimesheetLine `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE"`
}

type TimesheetLine struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TimesheetID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PersonID    uuid.UUID  `gorm:"type:uuid;not null"`
	WorkID      *uuid.UUID `gorm:"type:uuid"`
	WorkDate    time.Time  `gorm:"not null"`
	Hours       float64    `gorm:"not null"`
	Rate        float64    `gorm:"not null"`
	Sum         float64    `gorm:"not null"`
	OrderNum    int        `gorm:"not null"`
}
