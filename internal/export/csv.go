package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/ufosc/minihack-registration/internal/model"
)

// CSVHeader is the fixed column order for registration exports. The admin
// download and the organizer-side export command both emit this shape.
var CSVHeader = []string{
	"id", "name", "email", "year", "major", "experience",
	"dietary_restrictions", "linkedin_url", "github_url", "resume_url",
	"submitted_at",
}

// WriteCSV writes all registrations as CSV, header row first. Fields
// containing commas, quotes, or newlines are quoted with internal quotes
// doubled (RFC 4180).
func WriteCSV(w io.Writer, regs []model.Registration) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range regs {
		rec := []string{
			r.ID,
			r.Name,
			r.Email,
			r.Year.String(),
			r.Major,
			r.Experience.String(),
			r.DietaryRestrictions,
			r.LinkedinURL,
			r.GithubURL,
			r.ResumeURL,
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
