package dateindex

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is one membership row of the event_date_index table.
type Row struct {
	DateKey string `gorm:"primaryKey;type:char(8)"`
	EventID string `gorm:"primaryKey;type:varchar(36);index"`
}

func (Row) TableName() string {
	return "event_date_index"
}

// Gorm stores the index as (date_key, event_id) rows. Pass a transaction
// handle via WithTx so index writes commit together with the event row.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// WithTx binds the index to an open transaction.
func (g *Gorm) WithTx(tx *gorm.DB) *Gorm {
	return &Gorm{db: tx}
}

func (g *Gorm) Insert(ctx context.Context, dateKey, eventID string) error {
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Row{DateKey: dateKey, EventID: eventID}).Error
}

// Remove deletes the row; a day with no rows left simply has no entry.
func (g *Gorm) Remove(ctx context.Context, dateKey, eventID string) error {
	return g.db.WithContext(ctx).
		Where("date_key = ? AND event_id = ?", dateKey, eventID).
		Delete(&Row{}).Error
}

func (g *Gorm) EventsOnDay(ctx context.Context, dateKey string) ([]string, error) {
	ids := []string{}
	err := g.db.WithContext(ctx).
		Model(&Row{}).
		Where("date_key = ?", dateKey).
		Order("event_id ASC").
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (g *Gorm) Snapshot(ctx context.Context) (map[string][]string, error) {
	var rows []Row
	if err := g.db.WithContext(ctx).Order("date_key ASC, event_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, r := range rows {
		out[r.DateKey] = append(out[r.DateKey], r.EventID)
	}
	return out, nil
}
