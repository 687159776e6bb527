package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidators(v); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}
	return v
}

func TestCreateTimesheetRequest_Validation(t *testing.T) {
	v := newValidate(t)
	start, end, bad := "09:00", "10:30", "9:00"
	hours := 2.0

	valid := CreateTimesheetRequest{
		ProjectID:       "6f1c2a40-5a0e-4c1e-9d2a-1b2c3d4e5f60",
		TaskDescription: "review",
		EntryDate:       "2026-10-12",
		StartTime:       &start,
		EndTime:         &end,
		DurationHours:   &hours,
	}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *CreateTimesheetRequest)
	}{
		{"missing project", func(r *CreateTimesheetRequest) { r.ProjectID = "" }},
		{"project not uuid", func(r *CreateTimesheetRequest) { r.ProjectID = "p-1" }},
		{"missing description", func(r *CreateTimesheetRequest) { r.TaskDescription = "" }},
		{"bad date", func(r *CreateTimesheetRequest) { r.EntryDate = "12/10/2026" }},
		{"short clock", func(r *CreateTimesheetRequest) { r.StartTime = &bad }},
		{"negative break", func(r *CreateTimesheetRequest) { r.BreakTimeMinutes = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := v.Struct(r); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPaginationDefaults(t *testing.T) {
	p := PaginationRequest{}
	if p.GetPage() != 1 || p.GetLimit() != 10 || p.Offset() != 0 {
		t.Errorf("unexpected defaults %d %d %d", p.GetPage(), p.GetLimit(), p.Offset())
	}
	p = PaginationRequest{Page: 3, Limit: 50}
	if p.Offset() != 100 {
		t.Errorf("expected offset 100, got %d", p.Offset())
	}
}
