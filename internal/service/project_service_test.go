package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
)

func TestProjectService_List(t *testing.T) {
	projects := newMockProjectRepo()
	projects.add("proj-2", "Borealis", model.ProjectActive)
	projects.add("proj-1", "Apollo", model.ProjectActive)
	projects.add("proj-old", "Legacy", model.ProjectInactive)
	svc := NewProjectService(&repository.Repository{Project: projects}, zap.NewNop())

	active, err := svc.List(context.Background(), &dto.ProjectListRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 2 || active[0].Name != "Apollo" || active[1].Name != "Borealis" {
		t.Errorf("expected active projects by name, got %+v", active)
	}

	all, err := svc.List(context.Background(), &dto.ProjectListRequest{IncludeInactive: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 projects, got %d", len(all))
	}
	for _, p := range all {
		if p.Name == "Legacy" && p.Status != model.ProjectInactive {
			t.Errorf("expected Legacy inactive, got %s", p.Status)
		}
	}
}
