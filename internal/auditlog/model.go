package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Actions recorded against events and sessions.
const (
	ActionEventCreated     = "EVENT_CREATED"
	ActionEventUpdated     = "EVENT_UPDATED"
	ActionEventDeleted     = "EVENT_DELETED"
	ActionConflictOverride = "EVENT_CONFLICT_OVERRIDE"
	ActionPosterAttached   = "EVENT_POSTER_ATTACHED"
	ActionIndexRepaired    = "DATE_INDEX_REPAIRED"
	ActionIndexReconciled  = "DATE_INDEX_RECONCILED"
	ActionAdminLogin       = "ADMIN_LOGIN"

	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID   *uint          `gorm:"index" json:"admin_id"`                  // nullable (failed login, cron jobs)
	EventID   string         `gorm:"type:varchar(36);index" json:"event_id"` // empty for non-event actions
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogResponse represents the audit log response for API
type AuditLogResponse struct {
	ID         uint           `json:"id"`
	AdminID    *uint          `json:"admin_id"`
	EventID    string         `json:"event_id"`
	Action     string         `json:"action"`
	Details    datatypes.JSON `json:"details"`
	IPAddress  string         `json:"ip_address"`
	Status     string         `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	AdminEmail *string        `json:"admin_email,omitempty"`
	EventName  *string        `json:"event_name,omitempty"`
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	AdminID  *uint      `json:"admin_id"`
	EventID  string     `json:"event_id"`
	Action   string     `json:"action"`
	Status   string     `json:"status"`
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
}

// PaginatedAuditLogs represents paginated audit log response
type PaginatedAuditLogs struct {
	Data       []AuditLogResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
