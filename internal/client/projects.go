package client

import (
	"context"
	"net/url"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

type projectList struct {
	List []dto.ProjectResponse `json:"list"`
}

// ListProjects returns the active projects entries may be logged against.
func (c *Client) ListProjects(ctx context.Context) ([]timesheet.Project, error) {
	var resp projectList
	if err := c.get(ctx, "projects", url.Values{}, &resp); err != nil {
		return nil, err
	}

	projects := make([]timesheet.Project, 0, len(resp.List))
	for _, p := range resp.List {
		project := timesheet.Project{
			ID:     p.ID,
			Name:   p.Name,
			Active: p.Status == model.ProjectActive,
		}
		if p.ClientName != nil {
			project.Client = *p.ClientName
		}
		projects = append(projects, project)
	}
	return projects, nil
}
