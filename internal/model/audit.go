package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionImportReport  = "IMPORT_REPORT"
	ActionReplaceReport = "REPLACE_REPORT"
	ActionDeleteReport  = "DELETE_REPORT"
)

// AuditLog tracks who imported, replaced or deleted a daily report, and when
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(255);index" json:"actor"` // JWT subject, empty for automated imports
	ActorRole  string    `gorm:"type:varchar(50)" json:"actor_role"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`        // report id
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // CODE@YYYY-MM-DD
	Details    string    `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
