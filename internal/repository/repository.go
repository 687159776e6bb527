package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository.
type Repository struct {
	db *gorm.DB

	Timesheet TimesheetRepository
	Project   ProjectRepository
	User      UserRepository
}

// NewRepository wires the gorm-backed repositories.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:        db,
		Timesheet: NewTimesheetRepo(db),
		Project:   NewProjectRepo(db),
		User:      NewUserRepo(db),
	}
}

// WithTx returns a Repository whose members all run on tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction runs fn inside one database transaction; fn's error rolls it
// back. A Repository assembled without a database (mock repositories) runs
// fn directly on itself.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
