package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	GetByFilter(ctx context.Context, filter AuditLogFilter) ([]AuditLogResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*AuditLogResponse, error)
}

type repository struct {
	db *gorm.DB
	// eventsTable is set when events live in the same database, so listings
	// can show the event name.
	eventsTable bool
}

// NewRepository stores audit logs in db. Pass eventsTable=false when events
// are kept elsewhere (Firebase) and db has no events table to join.
func NewRepository(db *gorm.DB, eventsTable bool) Repository {
	return &repository{db: db, eventsTable: eventsTable}
}

// Create inserts a new audit log entry
func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) baseQuery(ctx context.Context) *gorm.DB {
	columns := `
			al.id, al.admin_id, al.event_id, al.action,
			al.details, al.ip_address, al.status, al.created_at,
			a.email as admin_email`
	query := r.db.WithContext(ctx).
		Table("audit_logs al").
		Joins("LEFT JOIN admins a ON al.admin_id = a.id")
	if r.eventsTable {
		columns += ", e.name as event_name"
		query = query.Joins("LEFT JOIN events e ON al.event_id = e.id")
	}
	return query.Select(columns)
}

// GetByFilter retrieves audit logs with filtering and pagination
func (r *repository) GetByFilter(ctx context.Context, filter AuditLogFilter) ([]AuditLogResponse, int64, error) {
	var logs []AuditLogResponse
	var total int64

	query := r.baseQuery(ctx)

	if filter.AdminID != nil {
		query = query.Where("al.admin_id = ?", *filter.AdminID)
	}
	if filter.EventID != "" {
		query = query.Where("al.event_id = ?", filter.EventID)
	}
	if filter.Action != "" {
		query = query.Where("al.action ILIKE ?", "%"+filter.Action+"%")
	}
	if filter.Status != "" {
		query = query.Where("al.status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("al.created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("al.created_at <= ?", *filter.ToDate)
	}

	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Order("al.created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// GetByID retrieves a specific audit log by ID
func (r *repository) GetByID(ctx context.Context, id uint) (*AuditLogResponse, error) {
	var log AuditLogResponse
	if err := r.baseQuery(ctx).Where("al.id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}
