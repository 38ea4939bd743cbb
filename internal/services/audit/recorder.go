package audit

import (
	"encoding/json"

	"photostudio-backend/internal/logger"
	"photostudio-backend/internal/models"
	"photostudio-backend/internal/repository"

	"go.uber.org/zap"
)

// Recorder writes audit entries best-effort: a failed write is logged at warn
// and never propagated, so bookkeeping operations cannot fail on the trail.
type Recorder struct {
	repo *repository.AuditRepository
}

func NewRecorder(repo *repository.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends an audit entry. details may be nil.
func (r *Recorder) Record(userEmail, action, entityType string, entityID uint, details map[string]interface{}) {
	entry := &models.AuditLog{
		UserEmail:  userEmail,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = raw
		}
	}

	if err := r.repo.Create(entry); err != nil {
		logger.Get().Warn("audit log write failed",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Uint("entity_id", entityID),
			zap.Error(err),
		)
	}
}

// Recent returns the newest audit entries.
func (r *Recorder) Recent(limit int) ([]models.AuditLog, error) {
	return r.repo.Recent(limit)
}
