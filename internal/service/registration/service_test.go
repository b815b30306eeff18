package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufosc/minihack-registration/internal/audit"
	"github.com/ufosc/minihack-registration/internal/model"
	"github.com/ufosc/minihack-registration/internal/repository"
	"github.com/ufosc/minihack-registration/internal/validate"
)

// countingLimiter emulates the fixed-window counter: every call consumes a
// slot, the limit-plus-first attempt is denied.
type countingLimiter struct {
	limit  int
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, identifier, action string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.counts == nil {
		l.counts = map[string]int{}
	}
	key := action + ":" + identifier
	l.counts[key]++
	return l.counts[key] <= l.limit, nil
}

type fakeRegsRepo struct {
	byEmail   map[string]model.Registration
	insertErr error
	existsErr error
}

func newFakeRegsRepo() *fakeRegsRepo {
	return &fakeRegsRepo{byEmail: map[string]model.Registration{}}
}

func (f *fakeRegsRepo) Insert(_ context.Context, reg model.Registration) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.byEmail[reg.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.byEmail[reg.Email] = reg
	return nil
}

func (f *fakeRegsRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeRegsRepo) ListAll(_ context.Context) ([]model.Registration, error) {
	return nil, nil
}

type captureAuditRepo struct {
	events []model.AuditEvent
}

func (c *captureAuditRepo) InsertEvent(_ context.Context, ev model.AuditEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func (c *captureAuditRepo) withAction(a model.AuditAction) []model.AuditEvent {
	var out []model.AuditEvent
	for _, ev := range c.events {
		if ev.Action == a {
			out = append(out, ev)
		}
	}
	return out
}

func newTestService(repo *fakeRegsRepo, limiter Allower, auditRepo *captureAuditRepo) *Service {
	return New(validate.New("ufl.edu"), limiter, repo, audit.NewRecorder(auditRepo))
}

func validInput() SubmitInput {
	return SubmitInput{
		Payload: model.Submission{
			Name:       "Ann Lee",
			Email:      "ANN@ufl.edu",
			Year:       "senior",
			Major:      "CS",
			Experience: "advanced",
		},
		IP:        "203.0.113.9",
		UserAgent: "Mozilla/5.0",
	}
}

func TestSubmit_Success(t *testing.T) {
	repo := newFakeRegsRepo()
	auditRepo := &captureAuditRepo{}
	svc := newTestService(repo, &countingLimiter{limit: 3}, auditRepo)

	id, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// email stored normalized
	stored, ok := repo.byEmail["ann@ufl.edu"]
	require.True(t, ok)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "ann@ufl.edu", stored.Email)
	assert.False(t, stored.SubmittedAt.IsZero())

	// exactly one audit event, and it is the success one
	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, model.AuditRegistrationSuccess, auditRepo.events[0].Action)
}

func TestSubmit_RateLimitThirdAllowedFourthDenied(t *testing.T) {
	limiter := &countingLimiter{limit: 3}
	auditRepo := &captureAuditRepo{}

	for i := 0; i < 3; i++ {
		repo := newFakeRegsRepo() // fresh store so the email is never a duplicate
		svc := newTestService(repo, limiter, auditRepo)
		_, err := svc.Submit(context.Background(), validInput())
		require.NoError(t, err, "attempt %d should pass the limiter", i+1)
	}

	svc := newTestService(newFakeRegsRepo(), limiter, auditRepo)
	_, err := svc.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrRateLimited)

	assert.Len(t, auditRepo.withAction(model.AuditRateLimited), 1)
	assert.Len(t, auditRepo.withAction(model.AuditRegistrationSuccess), 3)
}

func TestSubmit_LimiterErrorFailsOpen(t *testing.T) {
	repo := newFakeRegsRepo()
	auditRepo := &captureAuditRepo{}
	svc := newTestService(repo, &countingLimiter{err: errors.New("redis down")}, auditRepo)

	id, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, auditRepo.withAction(model.AuditRegistrationSuccess), 1)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	auditRepo := &captureAuditRepo{}
	svc := newTestService(newFakeRegsRepo(), &countingLimiter{limit: 3}, auditRepo)

	in := validInput()
	in.Payload.Email = "ann@gmail.com"
	_, err := svc.Submit(context.Background(), in)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Please use a valid @ufl.edu email address", ve.Reason)

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, model.AuditValidationFailed, auditRepo.events[0].Action)
}

func TestSubmit_DuplicateEmail(t *testing.T) {
	repo := newFakeRegsRepo()
	auditRepo := &captureAuditRepo{}
	svc := newTestService(repo, &countingLimiter{limit: 10}, auditRepo)

	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	// second submission with a case variant of the same email
	in := validInput()
	in.Payload.Email = "  Ann@UFL.edu "
	_, err = svc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	assert.Len(t, auditRepo.withAction(model.AuditDuplicateEmail), 1)
	assert.Len(t, repo.byEmail, 1)
}

func TestSubmit_InsertRaceLoserReportsDuplicate(t *testing.T) {
	repo := newFakeRegsRepo()
	auditRepo := &captureAuditRepo{}
	svc := newTestService(repo, &countingLimiter{limit: 10}, auditRepo)

	// simulate the race: the row appears after the existence check would
	// have passed, so Insert hits the unique index
	repo.insertErr = repository.ErrDuplicateEmail

	_, err := svc.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Len(t, auditRepo.withAction(model.AuditDuplicateEmail), 1)
}

func TestSubmit_InsertFailure(t *testing.T) {
	repo := newFakeRegsRepo()
	repo.insertErr = errors.New("mysql gone away")
	auditRepo := &captureAuditRepo{}
	svc := newTestService(repo, &countingLimiter{limit: 10}, auditRepo)

	_, err := svc.Submit(context.Background(), validInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.NotErrorIs(t, err, ErrRateLimited)

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, model.AuditInsertFailed, auditRepo.events[0].Action)
}

func TestSubmit_ExistsCheckFailure(t *testing.T) {
	repo := newFakeRegsRepo()
	repo.existsErr = errors.New("mysql gone away")
	auditRepo := &captureAuditRepo{}
	svc := newTestService(repo, &countingLimiter{limit: 10}, auditRepo)

	_, err := svc.Submit(context.Background(), validInput())
	require.Error(t, err)
	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, model.AuditInsertFailed, auditRepo.events[0].Action)
}
