package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
)

// ProjectRepository project data access
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, includeInactive bool) ([]model.Project, error)
}

type projectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("project_id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) List(ctx context.Context, includeInactive bool) ([]model.Project, error) {
	var projects []model.Project
	query := r.db.WithContext(ctx).Model(&model.Project{})
	if !includeInactive {
		query = query.Where("status = ?", model.ProjectActive)
	}
	if err := query.Order("name ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
