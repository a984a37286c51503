package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/siteworks/internal/http/middleware"
	"github.com/nurpe/siteworks/internal/model"
	"github.com/nurpe/siteworks/internal/service"
)

type Handler struct {
	documents *service.DocumentService
	posting   *service.PostingService
	register  *service.RegisterService
	log       zerolog.Logger
}

func NewHandler(documents *service.DocumentService, posting *service.PostingService, register *service.RegisterService, log zerolog.Logger) *Handler {
	return &Handler{documents: documents, posting: posting, register: register, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/estimates", h.createEstimate)
	protected.GET("/estimates", h.listEstimates)
	protected.GET("/estimates/:id", h.getEstimate)
	protected.PUT("/estimates/:id", h.updateEstimate)
	protected.DELETE("/estimates/:id", h.deleteEstimate)
	protected.POST("/estimates/:id/post", h.lifecycle(model.DocumentTypeEstimate, true))
	protected.POST("/estimates/:id/unpost", h.lifecycle(model.DocumentTypeEstimate, false))
	protected.GET("/estimates/:id/print", h.printEstimate)

	protected.POST("/daily-reports", h.createDailyReport)
	protected.GET("/daily-reports", h.listDailyReports)
	protected.GET("/daily-reports/:id", h.getDailyReport)
	protected.PUT("/daily-reports/:id", h.updateDailyReport)
	protected.DELETE("/daily-reports/:id", h.deleteDailyReport)
	protected.POST("/daily-reports/:id/post", h.lifecycle(model.DocumentTypeDailyReport, true))
	protected.POST("/daily-reports/:id/unpost", h.lifecycle(model.DocumentTypeDailyReport, false))

	protected.POST("/timesheets", h.createTimesheet)
	protected.GET("/timesheets", h.listTimesheets)
	protected.GET("/timesheets/:id", h.getTimesheet)
	protected.PUT("/timesheets/:id", h.updateTimesheet)
	protected.DELETE("/timesheets/:id", h.deleteTimesheet)
	protected.POST("/timesheets/:id/post", h.lifecycle(model.DocumentTypeTimesheet, true))
	protected.POST("/timesheets/:id/unpost", h.lifecycle(model.DocumentTypeTimesheet, false))

	protected.GET("/register/movements", h.listMovements)
	protected.GET("/register/balances", h.listBalances)
	protected.POST("/register/export", h.exportBalances)
}

// --- request/response shapes ---

type estimateLineRequest struct {
	IsGroup   bool     `json:"is_group"`
	ParentRow *int     `json:"parent_row"`
	WorkID    *string  `json:"work_id"`
	Name      string   `json:"name"`
	Quantity  float64  `json:"quantity"`
	Price     float64  `json:"price"`
	Labor     float64  `json:"labor"`
}

type estimateRequest struct {
	Number         string                `json:"number" binding:"required"`
	Date           string                `json:"date" binding:"required"`
	ObjectID       string                `json:"object_id" binding:"required"`
	OrganizationID string                `json:"organization_id"`
	Comment        string                `json:"comment"`
	Version        int                   `json:"version"`
	Lines          []estimateLineRequest `json:"lines"`
}

type dailyReportLineRequest struct {
	EstimateLineID string   `json:"estimate_line_id" binding:"required"`
	ActualLabor    float64  `json:"actual_labor"`
	ExecutorIDs    []string `json:"executor_ids"`
}

type dailyReportRequest struct {
	Number     string                   `json:"number" binding:"required"`
	Date       string                   `json:"date" binding:"required"`
	ObjectID   string                   `json:"object_id" binding:"required"`
	EstimateID string                   `json:"estimate_id" binding:"required"`
	Comment    string                   `json:"comment"`
	Version    int                      `json:"version"`
	Lines      []dailyReportLineRequest `json:"lines"`
}

type timesheetLineRequest struct {
	PersonID string  `json:"person_id" binding:"required"`
	WorkID   *string `json:"work_id"`
	WorkDate string  `json:"work_date" binding:"required"`
	Hours    float64 `json:"hours"`
	Rate     float64 `json:"rate"`
}

type timesheetRequest struct {
	Number     string                 `json:"number" binding:"required"`
	Date       string                 `json:"date" binding:"required"`
	ObjectID   string                 `json:"object_id" binding:"required"`
	EstimateID *string                `json:"estimate_id"`
	Comment    string                 `json:"comment"`
	Version    int                    `json:"version"`
	Lines      []timesheetLineRequest `json:"lines"`
}

// --- estimates ---

func (h *Handler) createEstimate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	input, ok := h.bindEstimate(c)
	if !ok {
		return
	}

	est, err := h.documents.CreateEstimate(c.Request.Context(), principal, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, est)
}

func (h *Handler) getEstimate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	est, err := h.documents.GetEstimate(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (h *Handler) listEstimates(c *gin.Context) {
	limit, offset := parsePaging(c)
	estimates, err := h.documents.ListEstimates(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": estimates})
}

func (h *Handler) updateEstimate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, ok := h.estimateInput(c, req)
	if !ok {
		return
	}

	est, err := h.documents.UpdateEstimate(c.Request.Context(), principal, id, req.Version, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (h *Handler) deleteEstimate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	version, err := strconv.Atoi(c.DefaultQuery("version", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version"})
		return
	}

	if err := h.documents.SoftDeleteEstimate(c.Request.Context(), principal, id, version); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindEstimate(c *gin.Context) (*service.EstimateInput, bool) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return h.estimateInput(c, req)
}

func (h *Handler) estimateInput(c *gin.Context, req estimateRequest) (*service.EstimateInput, bool) {
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return nil, false
	}
	objectID, err := uuid.Parse(strings.TrimSpace(req.ObjectID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid object_id"})
		return nil, false
	}
	var orgID *uuid.UUID
	if req.OrganizationID != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(req.OrganizationID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization_id"})
			return nil, false
		}
		orgID = &parsed
	}

	lines := make([]service.EstimateLineInput, len(req.Lines))
	for i, line := range req.Lines {
		var workID *uuid.UUID
		if line.WorkID != nil {
			parsed, err := uuid.Parse(strings.TrimSpace(*line.WorkID))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work_id in line"})
				return nil, false
			}
			workID = &parsed
		}
		lines[i] = service.EstimateLineInput{
			IsGroup:   line.IsGroup,
			ParentRow: line.ParentRow,
			WorkID:    workID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Labor:     line.Labor,
		}
	}

	return &service.EstimateInput{
		Number:         strings.TrimSpace(req.Number),
		Date:           date,
		ObjectID:       objectID,
		OrganizationID: orgID,
		Comment:        req.Comment,
		Lines:          lines,
	}, true
}

// --- daily reports ---

func (h *Handler) createDailyReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req dailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, ok := h.dailyReportInput(c, req)
	if !ok {
		return
	}

	report, err := h.documents.CreateDailyReport(c.Request.Context(), principal, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *Handler) getDailyReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	report, err := h.documents.GetDailyReport(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) listDailyReports(c *gin.Context) {
	limit, offset := parsePaging(c)
	reports, err := h.documents.ListDailyReports(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": reports})
}

func (h *Handler) updateDailyReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, ok := h.dailyReportInput(c, req)
	if !ok {
		return
	}

	report, err := h.documents.UpdateDailyReport(c.Request.Context(), principal, id, req.Version, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) deleteDailyReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	version, err := strconv.Atoi(c.DefaultQuery("version", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version"})
		return
	}

	if err := h.documents.SoftDeleteDailyReport(c.Request.Context(), principal, id, version); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) dailyReportInput(c *gin.Context, req dailyReportRequest) (*service.DailyReportInput, bool) {
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return nil, false
	}
	objectID, err := uuid.Parse(strings.TrimSpace(req.ObjectID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid object_id"})
		return nil, false
	}
	estimateID, err := uuid.Parse(strings.TrimSpace(req.EstimateID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid estimate_id"})
		return nil, false
	}

	lines := make([]service.DailyReportLineInput, len(req.Lines))
	for i, line := range req.Lines {
		lineID, err := uuid.Parse(strings.TrimSpace(line.EstimateLineID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid estimate_line_id in line"})
			return nil, false
		}
		executors := make([]uuid.UUID, len(line.ExecutorIDs))
		for j, raw := range line.ExecutorIDs {
			executors[j], err = uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid executor id in line"})
				return nil, false
			}
		}
		lines[i] = service.DailyReportLineInput{
			EstimateLineID: lineID,
			ActualLabor:    line.ActualLabor,
			ExecutorIDs:    executors,
		}
	}

	return &service.DailyReportInput{
		Number:     strings.TrimSpace(req.Number),
		Date:       date,
		ObjectID:   objectID,
		EstimateID: estimateID,
		Comment:    req.Comment,
		Lines:      lines,
	}, true
}

// --- timesheets ---

func (h *Handler) createTimesheet(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req timesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, ok := h.timesheetInput(c, req)
	if !ok {
		return
	}

	sheet, err := h.documents.CreateTimesheet(c.Request.Context(), principal, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sheet)
}

func (h *Handler) getTimesheet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sheet, err := h.documents.GetTimesheet(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func (h *Handler) listTimesheets(c *gin.Context) {
	limit, offset := parsePaging(c)
	sheets, err := h.documents.ListTimesheets(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sheets})
}

func (h *Handler) updateTimesheet(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req timesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, ok := h.timesheetInput(c, req)
	if !ok {
		return
	}

	sheet, err := h.documents.UpdateTimesheet(c.Request.Context(), principal, id, req.Version, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func (h *Handler) deleteTimesheet(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	version, err := strconv.Atoi(c.DefaultQuery("version", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version"})
		return
	}

	if err := h.documents.SoftDeleteTimesheet(c.Request.Context(), principal, id, version); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) timesheetInput(c *gin.Context, req timesheetRequest) (*service.TimesheetInput, bool) {
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return nil, false
	}
	objectID, err := uuid.Parse(strings.TrimSpace(req.ObjectID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid object_id"})
		return nil, false
	}
	var estimateID *uuid.UUID
	if req.EstimateID != nil && *req.EstimateID != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*req.EstimateID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid estimate_id"})
			return nil, false
		}
		estimateID = &parsed
	}

	lines := make([]service.TimesheetLineInput, len(req.Lines))
	for i, line := range req.Lines {
		personID, err := uuid.Parse(strings.TrimSpace(line.PersonID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person_id in line"})
			return nil, false
		}
		var workID *uuid.UUID
		if line.WorkID != nil && *line.WorkID != "" {
			parsed, err := uuid.Parse(strings.TrimSpace(*line.WorkID))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work_id in line"})
				return nil, false
			}
			workID = &parsed
		}
		workDate, err := parseDate(line.WorkDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work_date in line"})
			return nil, false
		}
		lines[i] = service.TimesheetLineInput{
			PersonID: personID,
			WorkID:   workID,
			WorkDate: workDate,
			Hours:    line.Hours,
			Rate:     line.Rate,
		}
	}

	return &service.TimesheetInput{
		Number:     strings.TrimSpace(req.Number),
		Date:       date,
		ObjectID:   objectID,
		EstimateID: estimateID,
		Comment:    req.Comment,
		Lines:      lines,
	}, true
}

// --- lifecycle ---

func (h *Handler) lifecycle(docType model.DocumentType, post bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.MustPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}

		var result *service.PostResult
		var err error
		if post {
			result, err = h.posting.Post(c.Request.Context(), principal, docType, id)
		} else {
			result, err = h.posting.Unpost(c.Request.Context(), principal, docType, id)
		}
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// --- register ---

func (h *Handler) listMovements(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	movements, err := h.register.Movements(c.Request.Context(), *filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": movements})
}

func (h *Handler) listBalances(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	balances, err := h.register.Balances(c.Request.Context(), *filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": balances})
}

func (h *Handler) exportBalances(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	result, err := h.register.ExportBalances(c.Request.Context(), *filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) printEstimate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.register.EstimatePrintForm(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) bindFilter(c *gin.Context) (*model.MovementFilter, bool) {
	filter := model.MovementFilter{}

	if raw := c.Query("period_from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_from"})
			return nil, false
		}
		filter.PeriodFrom = parsed
	}
	if raw := c.Query("period_to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_to"})
			return nil, false
		}
		filter.PeriodTo = parsed
	}
	for param, target := range map[string]**uuid.UUID{
		"object_id":   &filter.ObjectID,
		"estimate_id": &filter.EstimateID,
		"work_id":     &filter.WorkID,
	} {
		if raw := c.Query(param); raw != "" {
			parsed, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
				return nil, false
			}
			*target = &parsed
		}
	}
	filter.Limit, filter.Offset = parsePaging(c)
	return &filter, true
}

// --- shared ---

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDependency):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPosting):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInternal):
		h.log.Error().Err(err).Msg("invariant violation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parsePaging(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrValidation
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrValidation
}
