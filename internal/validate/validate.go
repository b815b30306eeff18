package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ufosc/minihack-registration/internal/model"
)

const (
	MaxNameLen    = 100
	MaxMajorLen   = 100
	MaxDietaryLen = 500
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Validator checks and sanitizes a raw submission against the configured
// institutional email domain. It is pure: no I/O, no shared state.
type Validator struct {
	domain  string
	emailRe *regexp.Regexp
}

func New(emailDomain string) *Validator {
	domain := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(emailDomain)), "@")
	return &Validator{
		domain:  domain,
		emailRe: regexp.MustCompile(`^[A-Za-z0-9._%+-]+@` + regexp.QuoteMeta(domain) + `$`),
	}
}

func (v *Validator) Domain() string { return v.domain }

// ValidEmail reports whether the address belongs to the institutional domain.
// Comparison happens after trim and lowercase, matching how emails are stored.
func (v *Validator) ValidEmail(email string) bool {
	return v.emailRe.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// validURL accepts empty input (optional field) and otherwise requires an
// absolute http(s) URL whose host contains the given domain.
func validURL(raw, domain string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.Contains(strings.ToLower(u.Hostname()), domain)
}

// Sanitize strips anything resembling an HTML tag, trims whitespace, and
// truncates to max. The tag stripper is a narrow regex, not a real sanitizer;
// stored values must still be escaped wherever they are rendered.
// Stripping before trimming keeps the function idempotent.
func Sanitize(input string, max int) string {
	s := tagRe.ReplaceAllString(input, "")
	s = strings.TrimSpace(s)
	if len(s) > max {
		s = strings.TrimSpace(s[:max])
	}
	return s
}

// Submission validates a raw payload and returns the canonical registration
// (without id and submitted_at) or a single user-facing rejection reason.
// Checks short-circuit on the first failure.
func (v *Validator) Submission(raw model.Submission) (model.Registration, string) {
	var reg model.Registration

	if strings.TrimSpace(raw.Name) == "" ||
		strings.TrimSpace(raw.Email) == "" ||
		strings.TrimSpace(raw.Year) == "" ||
		strings.TrimSpace(raw.Major) == "" ||
		strings.TrimSpace(raw.Experience) == "" {
		return reg, "Missing required fields"
	}

	email := strings.ToLower(strings.TrimSpace(raw.Email))
	if !v.emailRe.MatchString(email) {
		return reg, fmt.Sprintf("Please use a valid @%s email address", v.domain)
	}

	year, ok := model.ParseAcademicYear(raw.Year)
	if !ok {
		return reg, "Invalid academic year"
	}

	experience, ok := model.ParseExperienceLevel(raw.Experience)
	if !ok {
		return reg, "Invalid experience level"
	}

	if !validURL(raw.LinkedinURL, "linkedin.com") {
		return reg, "Invalid LinkedIn URL"
	}
	if !validURL(raw.GithubURL, "github.com") {
		return reg, "Invalid GitHub URL"
	}

	reg = model.Registration{
		Name:                Sanitize(raw.Name, MaxNameLen),
		Email:               email,
		Year:                year,
		Major:               Sanitize(raw.Major, MaxMajorLen),
		Experience:          experience,
		DietaryRestrictions: Sanitize(raw.DietaryRestrictions, MaxDietaryLen),
		LinkedinURL:         raw.LinkedinURL,
		GithubURL:           raw.GithubURL,
		ResumeURL:           raw.ResumeURL,
	}
	return reg, ""
}
