package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	AuditCreate  = "create"
	AuditUpdate  = "update"
	AuditDelete  = "delete"
	AuditSetRole = "set_role"
)

// AuditEntry records one privileged mutation performed by an admin.
type AuditEntry struct {
	ID         string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Actor      string         `gorm:"column:actor;type:text;index" json:"actor"`
	Action     string         `gorm:"column:action;type:text" json:"action"`
	Resource   string         `gorm:"column:resource;type:text" json:"resource"`
	ResourceID string         `gorm:"column:resource_id;type:text" json:"resource_id"`
	Fields     pq.StringArray `gorm:"column:fields;type:text[]" json:"fields"`
	Payload    datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt  time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (AuditEntry) TableName() string { return "audit_entries" }
