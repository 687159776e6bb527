package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
	pkgerrors "github.com/vinay0094k/myteamda-withroles-mobile/pkg/errors"
)

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) add(id, name, status string) *model.Project {
	p := &model.Project{ProjectID: id, Name: name, Status: status}
	m.projects[id] = p
	return p
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context, includeInactive bool) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if includeInactive || p.IsActive() {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TimesheetRepository ──

type mockTimesheetRepo struct {
	entries  map[string]*model.TimesheetEntry
	projects *mockProjectRepo
	users    *mockUserRepo
	seq      int
	locks    int
	failNext error
}

func newMockTimesheetRepo(projects *mockProjectRepo, users *mockUserRepo) *mockTimesheetRepo {
	return &mockTimesheetRepo{
		entries:  make(map[string]*model.TimesheetEntry),
		projects: projects,
		users:    users,
	}
}

func (m *mockTimesheetRepo) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *mockTimesheetRepo) hydrate(e model.TimesheetEntry) model.TimesheetEntry {
	e.Project = m.projects.projects[e.ProjectID]
	e.User = m.users.users[e.UserID]
	return e
}

func (m *mockTimesheetRepo) Create(_ context.Context, entry *model.TimesheetEntry) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.seq++
	entry.EntryID = fmt.Sprintf("entry-%d", m.seq)
	entry.Version = 1
	entry.CreatedAt = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	entry.UpdatedAt = entry.CreatedAt
	stored := *entry
	m.entries[entry.EntryID] = &stored
	return nil
}

func (m *mockTimesheetRepo) GetByID(_ context.Context, id string) (*model.TimesheetEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := m.hydrate(*e)
	return &out, nil
}

func (m *mockTimesheetRepo) matching(f repository.TimesheetFilter) []model.TimesheetEntry {
	var result []model.TimesheetEntry
	for _, e := range m.entries {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if !f.From.IsZero() && e.EntryDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && e.EntryDate.After(f.To) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		result = append(result, m.hydrate(*e))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EntryDate.Equal(result[j].EntryDate) {
			return result[i].EntryDate.After(result[j].EntryDate)
		}
		return result[i].EntryID < result[j].EntryID
	})
	return result
}

func (m *mockTimesheetRepo) List(_ context.Context, f repository.TimesheetFilter) ([]model.TimesheetEntry, int64, error) {
	if err := m.takeFailure(); err != nil {
		return nil, 0, err
	}
	all := m.matching(f)
	total := int64(len(all))
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (m *mockTimesheetRepo) ListForExport(_ context.Context, f repository.TimesheetFilter) ([]model.TimesheetEntry, error) {
	all := m.matching(f)
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].EntryDate.Equal(all[j].EntryDate) {
			return all[i].EntryDate.Before(all[j].EntryDate)
		}
		return all[i].UserID < all[j].UserID
	})
	return all, nil
}

func (m *mockTimesheetRepo) ListTimedOnDate(_ context.Context, userID string, date time.Time, excludeID string) ([]model.TimesheetEntry, error) {
	var result []model.TimesheetEntry
	for _, e := range m.matching(repository.TimesheetFilter{UserID: userID, From: date, To: date}) {
		if e.EntryID != excludeID && e.HasTimes() {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockTimesheetRepo) SumHours(_ context.Context, userID string, date time.Time, excludeID string) (float64, error) {
	var total float64
	for _, e := range m.matching(repository.TimesheetFilter{UserID: userID, From: date, To: date}) {
		if e.EntryID != excludeID {
			total += e.DurationHours
		}
	}
	return total, nil
}

func (m *mockTimesheetRepo) LockDay(context.Context, string, time.Time) error {
	m.locks++
	return nil
}

func (m *mockTimesheetRepo) Update(_ context.Context, entry *model.TimesheetEntry) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	stored, ok := m.entries[entry.EntryID]
	if !ok || stored.Version != entry.Version || !stored.IsDraft() {
		return pkgerrors.ErrOptimisticLock
	}
	entry.Version++
	updated := *entry
	updated.Project, updated.User = nil, nil
	m.entries[entry.EntryID] = &updated
	return nil
}

func (m *mockTimesheetRepo) Delete(_ context.Context, id string) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	stored, ok := m.entries[id]
	if !ok || !stored.IsDraft() {
		return pkgerrors.ErrOptimisticLock
	}
	delete(m.entries, id)
	return nil
}

func (m *mockTimesheetRepo) SubmitRange(_ context.Context, userID string, from, to, at time.Time) (int64, error) {
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	var n int64
	for _, e := range m.entries {
		if e.UserID == userID && e.IsDraft() && !timesheet.IsWeekend(e.EntryDate) &&
			!e.EntryDate.Before(from) && !e.EntryDate.After(to) {
			e.Status = model.EntrySubmitted
			submitted := at
			e.SubmittedAt = &submitted
			n++
		}
	}
	return n, nil
}

func (m *mockTimesheetRepo) Summary(_ context.Context, userID string, from, to time.Time) (*repository.SummaryTotals, []repository.ProjectHours, error) {
	if err := m.takeFailure(); err != nil {
		return nil, nil, err
	}
	totals := &repository.SummaryTotals{}
	byProject := make(map[string]*repository.ProjectHours)
	var order []string
	for _, e := range m.matching(repository.TimesheetFilter{UserID: userID, From: from, To: to}) {
		totals.TotalHours += e.DurationHours
		totals.TotalEntries++
		p, ok := byProject[e.ProjectID]
		if !ok {
			p = &repository.ProjectHours{ProjectID: e.ProjectID}
			if e.Project != nil {
				p.ProjectName = e.Project.Name
			}
			byProject[e.ProjectID] = p
			order = append(order, e.ProjectID)
		}
		p.TotalHours += e.DurationHours
		p.EntryCount++
	}
	var projects []repository.ProjectHours
	for _, id := range order {
		projects = append(projects, *byProject[id])
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].TotalHours > projects[j].TotalHours })
	return totals, projects, nil
}

// ── Mock SummaryCache ──

type mockCache struct {
	values      map[string][]byte
	gets        int
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{values: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	m.gets++
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *mockCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *mockCache) InvalidateSummaries(_ context.Context, userID string) error {
	m.invalidated = append(m.invalidated, userID)
	for k := range m.values {
		delete(m.values, k)
	}
	return nil
}
