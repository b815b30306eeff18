package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/ufosc/minihack-registration/internal/model"
)

// ErrDuplicateEmail is returned when an insert loses to the unique index on
// email. The pre-insert existence check is only the friendly fast path; the
// index is what actually guarantees one row per email.
var ErrDuplicateEmail = errors.New("email already registered")

type RegistrationsRepository interface {
	Insert(ctx context.Context, reg model.Registration) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]model.Registration, error)
}

type RegistrationsRepositoryImpl struct {
	db *sqlx.DB
}

func NewRegistrationsRepository(db *sqlx.DB) *RegistrationsRepositoryImpl {
	return &RegistrationsRepositoryImpl{db: db}
}

var _ RegistrationsRepository = (*RegistrationsRepositoryImpl)(nil)

func (r *RegistrationsRepositoryImpl) Insert(ctx context.Context, reg model.Registration) error {
	const q = `
		INSERT INTO registrations
		    (id, name, email, year, major, experience, dietary_restrictions,
		     linkedin_url, github_url, resume_url, submitted_at)
		VALUES
		    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		reg.ID, reg.Name, reg.Email, reg.Year.String(), reg.Major,
		reg.Experience.String(), reg.DietaryRestrictions,
		reg.LinkedinURL, reg.GithubURL, reg.ResumeURL, reg.SubmittedAt,
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicateEmail
	}
	return err
}

func (r *RegistrationsRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(1) FROM registrations WHERE email = ?
	`, email)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAll returns every registration, newest submission first.
func (r *RegistrationsRepositoryImpl) ListAll(ctx context.Context) ([]model.Registration, error) {
	var rows []model.Registration
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, email, year, major, experience, dietary_restrictions,
		       linkedin_url, github_url, resume_url, submitted_at
		  FROM registrations
		 ORDER BY submitted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
