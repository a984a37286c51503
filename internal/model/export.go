package model

import (
	"time"

	"github.com/google/uuid"
)

// RegisterReport is the balance report handed to the excel generator.
type RegisterReport struct {
	PeriodFrom time.Time
	PeriodTo   time.Time
	Rows       []RegisterReportRow
}

type RegisterReportRow struct {
	BalanceRow

	ObjectName     string
	EstimateNumber string
	WorkName       string
}

// EstimatePrintForm is the estimate with resolved references for the PDF
// print form.
type EstimatePrintForm struct {
	Estimate     Estimate
	Object       SiteObject
	Organization Organization
	WorkNames    map[uuid.UUID]string
}
