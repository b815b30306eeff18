package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ufosc/minihack-registration/internal/logger"
	"github.com/ufosc/minihack-registration/internal/model"
	"github.com/ufosc/minihack-registration/internal/repository"
)

const tableRegistrations = "registrations"

// Recorder writes audit events best-effort. A failed write is reported on the
// operational log only and never reaches the caller, so the registration flow
// cannot be blocked by the audit sink being down.
type Recorder struct {
	repo repository.AuditRepository
}

func NewRecorder(repo repository.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends one event. details is marshaled to JSON; a marshal failure
// degrades to an empty payload rather than dropping the event.
func (r *Recorder) Record(ctx context.Context, action model.AuditAction, details map[string]any, ip, userAgent string) {
	if r == nil || r.repo == nil {
		return
	}

	payload := "{}"
	if len(details) > 0 {
		b, err := json.Marshal(details)
		if err != nil {
			logger.Log.Warn("audit: marshal details", zap.Error(err), zap.String("action", action.String()))
		} else {
			payload = string(b)
		}
	}

	ev := model.AuditEvent{
		Action:    action,
		TableName: tableRegistrations,
		IPAddress: ip,
		UserAgent: userAgent,
		Details:   payload,
		Timestamp: time.Now().UTC(),
	}
	if err := r.repo.InsertEvent(ctx, ev); err != nil {
		logger.Log.Error("audit: insert event",
			zap.Error(err),
			zap.String("action", action.String()),
			zap.String("ip", ip),
		)
	}
}
