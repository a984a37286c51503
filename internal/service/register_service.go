package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/siteworks/internal/config"
	"github.com/nurpe/siteworks/internal/model"
	"github.com/nurpe/siteworks/internal/repository"
)

type ExcelGenerator interface {
	Generate(report model.RegisterReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(form model.EstimatePrintForm) ([]byte, error)
}

// RegisterService is the read-only side of the register: movement listing,
// balance aggregation and the export print forms. No method here mutates state.
type RegisterService struct {
	register    *repository.RegisterRepository
	docs        *repository.DocumentRepository
	refs        *repository.ReferenceRepository
	excel       ExcelGenerator
	pdf         PDFGenerator
	maxPageSize int
}

func NewRegisterService(
	register *repository.RegisterRepository,
	docs *repository.DocumentRepository,
	refs *repository.ReferenceRepository,
	excel ExcelGenerator,
	pdf PDFGenerator,
	cfg *config.Config,
) *RegisterService {
	return &RegisterService{
		register:    register,
		docs:        docs,
		refs:        refs,
		excel:       excel,
		pdf:         pdf,
		maxPageSize: cfg.Register.MaxPageSize,
	}
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *RegisterService) Movements(ctx context.Context, filter model.MovementFilter) ([]model.Movement, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 || filter.Limit > s.maxPageSize {
		filter.Limit = s.maxPageSize
	}
	return s.register.List(ctx, normalizeFilter(filter))
}

func (s *RegisterService) Balances(ctx context.Context, filter model.MovementFilter) ([]model.BalanceRow, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.register.Balances(ctx, normalizeFilter(filter))
}

// ExportBalances renders the balance report for the period as a workbook.
func (s *RegisterService) ExportBalances(ctx context.Context, filter model.MovementFilter) (*ExportResult, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	filter = normalizeFilter(filter)

	rows, err := s.register.Balances(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := model.RegisterReport{
		PeriodFrom: filter.PeriodFrom,
		PeriodTo:   filter.PeriodTo,
		Rows:       make([]model.RegisterReportRow, 0, len(rows)),
	}
	for _, row := range rows {
		reportRow := model.RegisterReportRow{BalanceRow: row}
		if object, err := s.refs.GetSiteObject(ctx, row.ObjectID); err == nil {
			reportRow.ObjectName = object.Name
		}
		if est, err := s.docs.GetEstimate(ctx, row.EstimateID); err == nil {
			reportRow.EstimateNumber = est.Number
		}
		if row.WorkID != nil {
			if work, err := s.refs.GetWork(ctx, *row.WorkID); err == nil {
				reportRow.WorkName = work.Name
			}
		}
		report.Rows = append(report.Rows, reportRow)
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildExportFileName("register", filter.PeriodFrom, filter.PeriodTo, "xlsx"),
		Content:  content,
	}, nil
}

// EstimatePrintForm renders the estimate with its lines as a PDF document.
func (s *RegisterService) EstimatePrintForm(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	est, err := s.docs.GetEstimate(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	form := model.EstimatePrintForm{Estimate: *est}
	if object, err := s.refs.GetSiteObject(ctx, est.ObjectID); err == nil {
		form.Object = *object
	}
	if est.OrganizationID != nil {
		if org, err := s.refs.GetOrganization(ctx, *est.OrganizationID); err == nil {
			form.Organization = *org
		}
	}
	form.WorkNames = make(map[uuid.UUID]string, len(est.Lines))
	for _, line := range est.Lines {
		if line.WorkID == nil {
			continue
		}
		if work, err := s.refs.GetWork(ctx, *line.WorkID); err == nil {
			form.WorkNames[*line.WorkID] = work.Name
		}
	}

	content, err := s.pdf.Generate(form)
	if err != nil {
		return nil, err
	}
	name := sanitizeFileName(est.Number)
	if name == "" {
		name = est.ID.String()
	}
	return &ExportResult{
		FileName: fmt.Sprintf("estimate-%s.pdf", name),
		Content:  content,
	}, nil
}

func validateFilter(filter model.MovementFilter) error {
	if !filter.PeriodFrom.IsZero() && !filter.PeriodTo.IsZero() && filter.PeriodFrom.After(filter.PeriodTo) {
		return fmt.Errorf("%w: period_from must be before or equal to period_to", ErrValidation)
	}
	return nil
}

// normalizeFilter snaps period bounds to month buckets to match how
// movements are stored.
func normalizeFilter(filter model.MovementFilter) model.MovementFilter {
	if !filter.PeriodFrom.IsZero() {
		filter.PeriodFrom = monthStart(filter.PeriodFrom)
	}
	if !filter.PeriodTo.IsZero() {
		filter.PeriodTo = monthStart(filter.PeriodTo)
	}
	return filter
}

func buildExportFileName(prefix string, from, to time.Time, ext string) string {
	period := "all"
	if !from.IsZero() || !to.IsZero() {
		period = fmt.Sprintf("%s-%s", formatPeriod(from), formatPeriod(to))
	}
	return fmt.Sprintf("%s-%s.%s", prefix, period, ext)
}

func formatPeriod(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format("200601")
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
