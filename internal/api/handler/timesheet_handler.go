package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/service"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/response"
)

// TimesheetHandler timesheet entry HTTP handler
type TimesheetHandler struct {
	timesheetSvc service.TimesheetService
}

func NewTimesheetHandler(timesheetSvc service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{timesheetSvc: timesheetSvc}
}

// ListEntries GET /api/v1/timesheets
func (h *TimesheetHandler) ListEntries(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.TimesheetListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	list, total, err := h.timesheetSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleTimesheetError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetLimit())
}

// CreateEntry POST /api/v1/timesheets
func (h *TimesheetHandler) CreateEntry(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	entry, err := h.timesheetSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleTimesheetError(c, err)
		return
	}

	response.Created(c, entry)
}

// UpdateEntry PUT /api/v1/timesheets/:id
func (h *TimesheetHandler) UpdateEntry(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, timesheet.CodeInvalidRequest, "Entry id is required")
		return
	}

	var req dto.UpdateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	entry, err := h.timesheetSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleTimesheetError(c, err)
		return
	}

	response.OKMessage(c, "Timesheet entry updated", entry)
}

// DeleteEntry DELETE /api/v1/timesheets/:id
func (h *TimesheetHandler) DeleteEntry(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, timesheet.CodeInvalidRequest, "Entry id is required")
		return
	}

	if err := h.timesheetSvc.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleTimesheetError(c, err)
		return
	}

	response.OKMessage(c, "Timesheet entry deleted", nil)
}

// SubmitEntries POST /api/v1/timesheets/submit?start_date=&end_date=
// The range may also arrive as a JSON body.
func (h *TimesheetHandler) SubmitEntries(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.DateRangeRequest
	bind := c.ShouldBindQuery
	if c.Query("start_date") == "" && c.Request.ContentLength > 0 {
		bind = c.ShouldBindJSON
	}
	if err := bind(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	result, err := h.timesheetSvc.Submit(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleTimesheetError(c, err)
		return
	}

	response.OKMessage(c, "Timesheet entries submitted", result)
}

// GetSummary GET /api/v1/timesheets/summary
func (h *TimesheetHandler) GetSummary(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	summary, err := h.timesheetSvc.Summary(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleTimesheetError(c, err)
		return
	}

	response.OK(c, summary)
}

// GetWeeklyReport GET /api/v1/timesheets/weekly
func (h *TimesheetHandler) GetWeeklyReport(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.WeeklyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	report, err := h.timesheetSvc.WeeklyReport(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleTimesheetError(c, err)
		return
	}

	response.OK(c, report)
}

func invalidRequest(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, timesheet.CodeInvalidRequest, "Invalid request parameters", err.Error())
}

func (h *TimesheetHandler) handleTimesheetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, timesheet.CodeEntryNotFound, err.Error())
	case errors.Is(err, service.ErrUpdateSubmitted), errors.Is(err, service.ErrDeleteSubmitted):
		response.Forbidden(c, timesheet.CodeEntryNotDraft, err.Error())
	case errors.Is(err, service.ErrForbiddenUser):
		response.Forbidden(c, timesheet.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, timesheet.CodeUserNotFound, err.Error())
	case errors.Is(err, service.ErrWeekendDate):
		response.BadRequest(c, timesheet.CodeWeekendDate, err.Error())
	case errors.Is(err, service.ErrFutureDate):
		response.BadRequest(c, timesheet.CodeFutureDate, err.Error())
	case errors.Is(err, service.ErrInvalidProject):
		response.BadRequest(c, timesheet.CodeInvalidProject, err.Error())
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrIncompleteTimeRange),
		errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, timesheet.CodeInvalidRange, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrDurationRequired),
		errors.Is(err, service.ErrDescriptionRequired):
		response.BadRequest(c, timesheet.CodeInvalidRequest, err.Error())
	case errors.Is(err, service.ErrNothingToSubmit):
		response.BadRequest(c, timesheet.CodeNothingToSubmit, err.Error())
	case errors.Is(err, service.ErrTimeOverlap):
		response.Conflict(c, timesheet.CodeTimeOverlap, err.Error(), service.ErrTimeOverlap.Error())
	case errors.Is(err, service.ErrDailyLimitExceeded):
		response.Conflict(c, timesheet.CodeDailyLimit, err.Error(), service.ErrDailyLimitExceeded.Error())
	case errors.Is(err, service.ErrEntryModified):
		response.Conflict(c, timesheet.CodeEntryModified, err.Error(), "")
	default:
		response.InternalError(c)
	}
}
