package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
)

// ProjectService project reads
type ProjectService interface {
	List(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error)
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

func (s *projectService) List(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.Project.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, err
	}

	list := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		list = append(list, toProjectResponse(&projects[i]))
	}
	return list, nil
}
