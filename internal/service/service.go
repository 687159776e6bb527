package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
)

// Service aggregates every service.
type Service struct {
	Timesheet TimesheetService
	Project   ProjectService
	Export    ExportService
}

// NewService wires the services. cache may be nil when Redis is disabled.
func NewService(
	repo *repository.Repository,
	cache SummaryCache,
	rules Rules,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	return &Service{
		Timesheet: NewTimesheetService(repo, cache, rules, logger),
		Project:   NewProjectService(repo, logger),
		Export:    NewExportService(repo, loc, logger),
	}
}
