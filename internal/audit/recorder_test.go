package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufosc/minihack-registration/internal/model"
)

type captureAuditRepo struct {
	events []model.AuditEvent
	err    error
}

func (f *captureAuditRepo) InsertEvent(_ context.Context, ev model.AuditEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func TestRecorder_Record(t *testing.T) {
	repo := &captureAuditRepo{}
	r := NewRecorder(repo)

	r.Record(context.Background(), model.AuditRegistrationSuccess,
		map[string]any{"registration_id": "r-1", "email": "ann@ufl.edu"},
		"203.0.113.9", "Mozilla/5.0")

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, model.AuditRegistrationSuccess, ev.Action)
	assert.Equal(t, "registrations", ev.TableName)
	assert.Equal(t, "203.0.113.9", ev.IPAddress)
	assert.Equal(t, "Mozilla/5.0", ev.UserAgent)
	assert.False(t, ev.Timestamp.IsZero())

	var details map[string]any
	require.NoError(t, json.Unmarshal([]byte(ev.Details), &details))
	assert.Equal(t, "ann@ufl.edu", details["email"])
}

func TestRecorder_SinkFailureIsSwallowed(t *testing.T) {
	repo := &captureAuditRepo{err: errors.New("clickhouse down")}
	r := NewRecorder(repo)

	// must not panic or surface the error
	r.Record(context.Background(), model.AuditRateLimited, map[string]any{"ip": "203.0.113.9"}, "203.0.113.9", "ua")
	assert.Empty(t, repo.events)
}

func TestRecorder_NilDetails(t *testing.T) {
	repo := &captureAuditRepo{}
	NewRecorder(repo).Record(context.Background(), model.AuditInsertFailed, nil, "ip", "ua")

	require.Len(t, repo.events, 1)
	assert.Equal(t, "{}", repo.events[0].Details)
}
