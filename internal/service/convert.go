package service

import (
	"time"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timesheet.FormatDate(*t)
	return &s
}

func toTimesheetResponse(e *model.TimesheetEntry) dto.TimesheetResponse {
	resp := dto.TimesheetResponse{
		ID:               e.EntryID,
		UserID:           e.UserID,
		ProjectID:        e.ProjectID,
		TaskDescription:  e.TaskDescription,
		EntryDate:        timesheet.FormatDate(e.EntryDate),
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		DurationHours:    e.DurationHours,
		BreakTimeMinutes: e.BreakTimeMinutes,
		Status:           e.Status,
		SubmittedAt:      formatOptionalTimestamp(e.SubmittedAt),
		ApprovedBy:       e.ApprovedBy,
		ApprovedAt:       formatOptionalTimestamp(e.ApprovedAt),
		CreatedAt:        formatTimestamp(e.CreatedAt),
		UpdatedAt:        formatTimestamp(e.UpdatedAt),
	}
	if e.Project != nil {
		resp.Project = &dto.ProjectRef{ID: e.Project.ProjectID, Name: e.Project.Name}
	}
	return resp
}

// toCoreEntry lifts a row into the accounting model.
func toCoreEntry(e *model.TimesheetEntry) timesheet.Entry {
	ce := timesheet.Entry{
		ID:            e.EntryID,
		UserID:        e.UserID,
		ProjectID:     e.ProjectID,
		Description:   e.TaskDescription,
		Date:          timesheet.DateOf(e.EntryDate),
		DurationHours: e.DurationHours,
		BreakMinutes:  e.BreakTimeMinutes,
		Status:        timesheet.Status(e.Status),
		SubmittedAt:   e.SubmittedAt,
	}
	if e.Project != nil {
		ce.ProjectName = e.Project.Name
	}
	if e.StartTime != nil {
		ce.StartTime = *e.StartTime
	}
	if e.EndTime != nil {
		ce.EndTime = *e.EndTime
	}
	return ce
}

func toProjectResponse(p *model.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		ClientName:  p.ClientName,
		Status:      p.Status,
		StartDate:   formatOptionalDate(p.StartDate),
		EndDate:     formatOptionalDate(p.EndDate),
	}
}
