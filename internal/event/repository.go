package event

import (
	"context"

	"github.com/uph-campus/campus-events-backend/internal/dateindex"
)

// Repository persists events together with their date index entries. Every
// mutating method writes the record and the index in one atomic step, so a
// failed or cancelled call leaves both untouched.
type Repository interface {
	// Insert stores a new event and adds it to its day.
	Insert(ctx context.Context, e *Event) error
	// FindByID returns ErrNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*Event, error)
	// FindByIDs returns the events that exist and the ids that do not.
	FindByIDs(ctx context.Context, ids []string) ([]Event, []string, error)
	FindAll(ctx context.Context) ([]Event, error)
	// Replace overwrites an existing event. When prevDateKey differs from the
	// new day the index entry moves.
	Replace(ctx context.Context, e *Event, prevDateKey string) error
	// Remove deletes the event and its index entry; ErrNotFound if absent.
	Remove(ctx context.Context, e *Event) error

	// Index exposes the date index for reads and for reconciliation.
	Index() dateindex.Index
}
