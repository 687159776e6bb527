package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

// listPageSize is the largest page the server hands out.
const listPageSize = 500

// ListEntries fetches every entry of userID dated within [from, to],
// following pagination until the reported total is reached.
func (c *Client) ListEntries(ctx context.Context, userID string, from, to time.Time) ([]timesheet.Entry, error) {
	query := dateRange(from, to)
	if userID != "" {
		query.Set("user_id", userID)
	}
	query.Set("limit", strconv.Itoa(listPageSize))

	var entries []timesheet.Entry
	for page := 1; ; page++ {
		query.Set("page", strconv.Itoa(page))

		var data pageData
		if err := c.get(ctx, "timesheets", query, &data); err != nil {
			return nil, err
		}
		var list []dto.TimesheetResponse
		if len(data.List) > 0 {
			if err := json.Unmarshal(data.List, &list); err != nil {
				return nil, timesheet.Transport(fmt.Errorf("decode entry list: %w", err))
			}
		}
		for i := range list {
			e, err := toEntry(&list[i])
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}

		if len(list) == 0 || int64(len(entries)) >= data.Pagination.Total || page >= data.Pagination.TotalPages {
			return entries, nil
		}
	}
}

// CreateEntry posts a new draft.
func (c *Client) CreateEntry(ctx context.Context, f timesheet.Fields) (*timesheet.Entry, error) {
	req := dto.CreateTimesheetRequest{
		ProjectID:        f.ProjectID,
		TaskDescription:  f.Description,
		EntryDate:        timesheet.FormatDate(f.Date),
		BreakTimeMinutes: f.BreakMinutes,
	}
	if f.StartTime != "" || f.EndTime != "" {
		req.StartTime, req.EndTime = optional(f.StartTime), optional(f.EndTime)
	}
	hours := f.DurationHours
	req.DurationHours = &hours

	var resp dto.TimesheetResponse
	if err := c.do(ctx, http.MethodPost, "timesheets", nil, req, &resp); err != nil {
		return nil, err
	}
	e, err := toEntry(&resp)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntry replaces the editable fields of a draft. Without a clock
// range the entry becomes duration-only.
func (c *Client) UpdateEntry(ctx context.Context, id string, f timesheet.EditFields) (*timesheet.Entry, error) {
	description := f.Description
	breakMinutes := f.BreakMinutes
	req := dto.UpdateTimesheetRequest{
		TaskDescription:  &description,
		BreakTimeMinutes: &breakMinutes,
	}
	if f.StartTime != "" || f.EndTime != "" {
		req.StartTime, req.EndTime = optional(f.StartTime), optional(f.EndTime)
	} else {
		hours := f.DurationHours
		req.DurationHours = &hours
		req.ClearTimes = true
	}

	var resp dto.TimesheetResponse
	if err := c.do(ctx, http.MethodPut, "timesheets/"+url.PathEscape(id), nil, req, &resp); err != nil {
		return nil, err
	}
	e, err := toEntry(&resp)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEntry removes a draft.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "timesheets/"+url.PathEscape(id), nil, nil, nil)
}

// SubmitEntries submits every draft of the caller within [from, to].
func (c *Client) SubmitEntries(ctx context.Context, from, to time.Time) (int, error) {
	var resp dto.SubmitResponse
	if err := c.do(ctx, http.MethodPost, "timesheets/submit", dateRange(from, to), nil, &resp); err != nil {
		return 0, err
	}
	return resp.SubmittedEntries, nil
}

// Summary fetches the server-side aggregate over [from, to].
func (c *Client) Summary(ctx context.Context, from, to time.Time, userID string) (*timesheet.Summary, error) {
	query := dateRange(from, to)
	if userID != "" {
		query.Set("user_id", userID)
	}

	var resp dto.SummaryResponse
	if err := c.get(ctx, "timesheets/summary", query, &resp); err != nil {
		return nil, err
	}

	sum := &timesheet.Summary{
		TotalHours:   resp.Summary.TotalHours,
		TotalEntries: int(resp.Summary.TotalEntries),
	}
	for _, p := range resp.ProjectSummary {
		sum.Projects = append(sum.Projects, timesheet.ProjectHours{
			ProjectID:   p.ProjectID,
			ProjectName: p.ProjectName,
			TotalHours:  p.TotalHours,
			Entries:     int(p.EntryCount),
		})
	}
	return sum, nil
}

// WeeklyReport fetches the trailing-week report of userID ending with the
// week of anchor. Only reviewer roles may call it.
func (c *Client) WeeklyReport(ctx context.Context, userID string, anchor time.Time, weeks int) (*dto.WeeklyReportResponse, error) {
	query := url.Values{"user_id": {userID}}
	if !anchor.IsZero() {
		query.Set("anchor", timesheet.FormatDate(anchor))
	}
	if weeks > 0 {
		query.Set("weeks", strconv.Itoa(weeks))
	}

	var resp dto.WeeklyReportResponse
	if err := c.get(ctx, "timesheets/weekly", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func dateRange(from, to time.Time) url.Values {
	return url.Values{
		"start_date": {timesheet.FormatDate(from)},
		"end_date":   {timesheet.FormatDate(to)},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// toEntry lifts a wire entry into the accounting model.
func toEntry(r *dto.TimesheetResponse) (timesheet.Entry, error) {
	date, err := timesheet.ParseDate(r.EntryDate)
	if err != nil {
		return timesheet.Entry{}, timesheet.Transport(fmt.Errorf("entry %s: bad entry_date %q", r.ID, r.EntryDate))
	}
	if !timesheet.Status(r.Status).Valid() {
		return timesheet.Entry{}, timesheet.Transport(fmt.Errorf("entry %s: unknown status %q", r.ID, r.Status))
	}
	e := timesheet.Entry{
		ID:            r.ID,
		UserID:        r.UserID,
		ProjectID:     r.ProjectID,
		Description:   r.TaskDescription,
		Date:          date,
		DurationHours: r.DurationHours,
		BreakMinutes:  r.BreakTimeMinutes,
		Status:        timesheet.Status(r.Status),
	}
	if r.Project != nil {
		e.ProjectName = r.Project.Name
	}
	if r.StartTime != nil && r.EndTime != nil {
		e.StartTime, e.EndTime = *r.StartTime, *r.EndTime
	}
	if r.SubmittedAt != nil {
		if at, err := time.Parse(time.RFC3339, *r.SubmittedAt); err == nil {
			e.SubmittedAt = &at
		}
	}
	return e, nil
}
