package registration

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ufosc/minihack-registration/internal/audit"
	"github.com/ufosc/minihack-registration/internal/logger"
	"github.com/ufosc/minihack-registration/internal/metrics"
	"github.com/ufosc/minihack-registration/internal/model"
	"github.com/ufosc/minihack-registration/internal/repository"
	"github.com/ufosc/minihack-registration/internal/util"
	"github.com/ufosc/minihack-registration/internal/validate"
)

const rateLimitAction = "registration"

var (
	// ErrRateLimited maps to HTTP 429.
	ErrRateLimited = errors.New("too many registration attempts")
	// ErrDuplicateEmail maps to HTTP 409.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ValidationError carries the user-facing rejection reason. Maps to HTTP 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Allower is the rate-limit check the service consults before any other work.
type Allower interface {
	Allow(ctx context.Context, identifier, action string) (bool, error)
}

// SubmitInput is one inbound registration attempt plus its client metadata.
type SubmitInput struct {
	Payload   model.Submission
	IP        string
	UserAgent string
}

// Service sequences one submission: rate limit, validate, duplicate check,
// insert. Every terminal branch records exactly one audit event. There is no
// retry logic here; the browser owns retries on transient failures.
type Service struct {
	validator *validate.Validator
	limiter   Allower
	regs      repository.RegistrationsRepository
	auditor   *audit.Recorder
}

func New(validator *validate.Validator, limiter Allower, regs repository.RegistrationsRepository, auditor *audit.Recorder) *Service {
	return &Service{
		validator: validator,
		limiter:   limiter,
		regs:      regs,
		auditor:   auditor,
	}
}

// Submit runs the pipeline and returns the new registration's ID on success.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (string, error) {
	allowed, err := s.limiter.Allow(ctx, in.IP, rateLimitAction)
	if err != nil {
		// fail open: a limiter outage must not block legitimate applicants
		logger.Log.Error("rate limit check failed, allowing", zap.Error(err), zap.String("ip", in.IP))
		allowed = true
	}
	if !allowed {
		s.auditor.Record(ctx, model.AuditRateLimited, map[string]any{"ip": in.IP}, in.IP, in.UserAgent)
		metrics.RegistrationsTotal.WithLabelValues("rate_limited").Inc()
		return "", ErrRateLimited
	}

	reg, reason := s.validator.Submission(in.Payload)
	if reason != "" {
		s.auditor.Record(ctx, model.AuditValidationFailed, map[string]any{
			"error": reason,
			"email": in.Payload.Email,
		}, in.IP, in.UserAgent)
		metrics.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		return "", &ValidationError{Reason: reason}
	}

	exists, err := s.regs.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		s.auditor.Record(ctx, model.AuditInsertFailed, map[string]any{
			"error": err.Error(),
			"email": reg.Email,
		}, in.IP, in.UserAgent)
		metrics.RegistrationsTotal.WithLabelValues("insert_failed").Inc()
		return "", err
	}
	if exists {
		s.auditor.Record(ctx, model.AuditDuplicateEmail, map[string]any{"email": reg.Email}, in.IP, in.UserAgent)
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return "", ErrDuplicateEmail
	}

	reg.ID = util.NewID()
	reg.SubmittedAt = time.Now().UTC()

	if err := s.regs.Insert(ctx, reg); err != nil {
		// two in-flight submissions can both pass the existence check; the
		// unique index decides, and the loser is reported as a duplicate
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.auditor.Record(ctx, model.AuditDuplicateEmail, map[string]any{"email": reg.Email}, in.IP, in.UserAgent)
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return "", ErrDuplicateEmail
		}
		s.auditor.Record(ctx, model.AuditInsertFailed, map[string]any{
			"error": err.Error(),
			"email": reg.Email,
		}, in.IP, in.UserAgent)
		metrics.RegistrationsTotal.WithLabelValues("insert_failed").Inc()
		return "", err
	}

	s.auditor.Record(ctx, model.AuditRegistrationSuccess, map[string]any{
		"registration_id": reg.ID,
		"email":           reg.Email,
	}, in.IP, in.UserAgent)
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return reg.ID, nil
}
