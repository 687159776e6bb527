package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/service"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler file download HTTP handler
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkbook weekly employee timesheets as xlsx
// GET /api/v1/timesheets/export?user_id=&status=&start_date=&end_date=
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "start_date and end_date (YYYY-MM-DD) are required")
		return
	}

	buf, filename, err := h.exportSvc.WeeklyWorkbook(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportCalendar the caller's entries as an iCalendar feed
// GET /api/v1/timesheets/export.ics?start_date=&end_date=
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "start_date and end_date (YYYY-MM-DD) are required")
		return
	}

	data, filename, err := h.exportSvc.Calendar(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoEntries):
		response.NotFound(c, timesheet.CodeEntryNotFound, err.Error())
	case errors.Is(err, service.ErrForbiddenUser):
		response.Forbidden(c, timesheet.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, timesheet.CodeInvalidRange, err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, timesheet.CodeInvalidRequest, err.Error())
	default:
		response.InternalError(c)
	}
}
