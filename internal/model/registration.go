package model

import (
	"strings"
	"time"
)

type AcademicYear string

const (
	YearFreshman  AcademicYear = "freshman"
	YearSophomore AcademicYear = "sophomore"
	YearJunior    AcademicYear = "junior"
	YearSenior    AcademicYear = "senior"
	YearGraduate  AcademicYear = "graduate"
)

func (y AcademicYear) String() string { return string(y) }

func (y AcademicYear) Valid() bool {
	switch y {
	case YearFreshman, YearSophomore, YearJunior, YearSenior, YearGraduate:
		return true
	}
	return false
}

// ParseAcademicYear normalizes input. Returns (value, true) if valid.
func ParseAcademicYear(s string) (AcademicYear, bool) {
	y := AcademicYear(strings.ToLower(strings.TrimSpace(s)))
	return y, y.Valid()
}

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

func (e ExperienceLevel) String() string { return string(e) }

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// ParseExperienceLevel normalizes input. Returns (value, true) if valid.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	e := ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
	return e, e.Valid()
}

// Submission is the raw registration payload as posted by the client.
type Submission struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Year                string `json:"year"`
	Major               string `json:"major"`
	Experience          string `json:"experience"`
	DietaryRestrictions string `json:"dietary_restrictions,omitempty"`
	LinkedinURL         string `json:"linkedin_url,omitempty"`
	GithubURL           string `json:"github_url,omitempty"`
	ResumeURL           string `json:"resume_url,omitempty"`
}

// Registration is the DB entity persisted in the registrations table.
// Rows are created exactly once and never updated by the service.
type Registration struct {
	ID                  string          `db:"id" json:"id"`
	Name                string          `db:"name" json:"name"`
	Email               string          `db:"email" json:"email"`
	Year                AcademicYear    `db:"year" json:"year"`
	Major               string          `db:"major" json:"major"`
	Experience          ExperienceLevel `db:"experience" json:"experience"`
	DietaryRestrictions string          `db:"dietary_restrictions" json:"dietary_restrictions"`
	LinkedinURL         string          `db:"linkedin_url" json:"linkedin_url"`
	GithubURL           string          `db:"github_url" json:"github_url"`
	ResumeURL           string          `db:"resume_url" json:"resume_url"`
	SubmittedAt         time.Time       `db:"submitted_at" json:"submitted_at"`
}
