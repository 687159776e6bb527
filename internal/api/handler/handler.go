package handler

import "github.com/vinay0094k/myteamda-withroles-mobile/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Timesheet *TimesheetHandler
	Project   *ProjectHandler
	Export    *ExportHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Timesheet: NewTimesheetHandler(svc.Timesheet),
		Project:   NewProjectHandler(svc.Project),
		Export:    NewExportHandler(svc.Export),
	}
}
