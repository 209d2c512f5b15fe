package event

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/uph-campus/campus-events-backend/internal/dateindex"
)

// GormRepository stores events in the events table and the index in
// event_date_index, both written inside one transaction.
type GormRepository struct {
	DB    *gorm.DB
	index *dateindex.Gorm
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db, index: dateindex.NewGorm(db)}
}

// Models lists the tables this repository needs migrated.
func (r *GormRepository) Models() []interface{} {
	return []interface{}{&Event{}, &dateindex.Row{}}
}

func (r *GormRepository) Index() dateindex.Index {
	return r.index
}

// ===========================
// 🎯 Insert event + index row
func (r *GormRepository) Insert(ctx context.Context, e *Event) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return r.index.WithTx(tx).Insert(ctx, e.DateKey(), e.ID)
	})
}

// ===========================
// 🔍 Lookups
func (r *GormRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormRepository) FindByIDs(ctx context.Context, ids []string) ([]Event, []string, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}
	var events []Event
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, nil, err
	}
	found := make(map[string]struct{}, len(events))
	for _, e := range events {
		found[e.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return events, missing, nil
}

func (r *GormRepository) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.DB.WithContext(ctx).
		Order("date ASC, start_time_minutes ASC").
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Replace event, moving the index row when the day changed
func (r *GormRepository) Replace(ctx context.Context, e *Event, prevDateKey string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Event{}).Where("id = ?", e.ID).Select("*").Updates(e)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		newKey := e.DateKey()
		if newKey == prevDateKey {
			return nil
		}
		idx := r.index.WithTx(tx)
		if err := idx.Remove(ctx, prevDateKey, e.ID); err != nil {
			return err
		}
		return idx.Insert(ctx, newKey, e.ID)
	})
}

// ===========================
// ❌ Remove event + index row
func (r *GormRepository) Remove(ctx context.Context, e *Event) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored Event
		err := tx.Select("id", "date").First(&stored, "id = ?", e.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&Event{}, "id = ?", e.ID).Error; err != nil {
			return err
		}
		return r.index.WithTx(tx).Remove(ctx, stored.DateKey(), e.ID)
	})
}
