package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ufosc/minihack-registration/internal/config"
	"github.com/ufosc/minihack-registration/internal/db"
	"github.com/ufosc/minihack-registration/internal/model"
	"github.com/ufosc/minihack-registration/internal/util"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo registrations...")

		if err := seedRegistrations(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

// seedRegistrations inserts deterministic demo applicants (idempotent on email).
func seedRegistrations(dbx *sqlx.DB) error {
	demo := []model.Registration{
		{
			Name:       "Alberta Gator",
			Email:      "alberta@ufl.edu",
			Year:       model.YearSenior,
			Major:      "Computer Science",
			Experience: model.ExperienceAdvanced,
			GithubURL:  "https://github.com/albertagator",
		},
		{
			Name:                "Albert Gator",
			Email:               "albert@ufl.edu",
			Year:                model.YearFreshman,
			Major:               "Mechanical Engineering",
			Experience:          model.ExperienceBeginner,
			DietaryRestrictions: "vegetarian",
		},
		{
			Name:        "Gian Rivera",
			Email:       "grivera@ufl.edu",
			Year:        model.YearGraduate,
			Major:       "Data Science",
			Experience:  model.ExperienceIntermediate,
			LinkedinURL: "https://www.linkedin.com/in/grivera",
		},
	}

	// idempotent upsert based on email (UNIQUE)
	const q = `
INSERT INTO registrations
    (id, name, email, year, major, experience, dietary_restrictions,
     linkedin_url, github_url, resume_url, submitted_at)
VALUES
    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    name       = VALUES(name),
    year       = VALUES(year),
    major      = VALUES(major),
    experience = VALUES(experience)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	for _, r := range demo {
		if _, err := tx.Exec(q,
			util.NewID(), r.Name, r.Email, r.Year.String(), r.Major,
			r.Experience.String(), r.DietaryRestrictions,
			r.LinkedinURL, r.GithubURL, r.ResumeURL, now,
		); err != nil {
			return fmt.Errorf("insert registration %q: %w", r.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registrations: %w", err)
	}
	return nil
}
