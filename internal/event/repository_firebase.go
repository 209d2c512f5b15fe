package event

import (
	"context"
	"errors"
	"path"

	"firebase.google.com/go/v4/db"

	"github.com/uph-campus/campus-events-backend/internal/dateindex"
)

// DefaultFirebaseEventsRoot is the Realtime Database node holding events/{id}.
const DefaultFirebaseEventsRoot = "events"

// FirebaseRepository keeps the Realtime Database layout the admin UI was
// built against: events/{id} and eventsByDate/{YYYYMMDD}/{id}: true. Record
// and index change together through one multi-path update.
type FirebaseRepository struct {
	client *db.Client
	root   string
	index  *dateindex.Firebase
}

func NewFirebaseRepository(client *db.Client) *FirebaseRepository {
	return &FirebaseRepository{
		client: client,
		root:   DefaultFirebaseEventsRoot,
		index:  dateindex.NewFirebase(client, dateindex.DefaultFirebaseRoot),
	}
}

// firebaseRecord tolerates documents written by the old form, which stored
// floor as a string.
type firebaseRecord struct {
	Event
	Floor FlexInt `json:"floor"`
}

func (r *FirebaseRepository) Index() dateindex.Index {
	return r.index
}

func (r *FirebaseRepository) eventPath(id string) string {
	return path.Join(r.root, id)
}

func (r *FirebaseRepository) update(ctx context.Context, paths map[string]interface{}) error {
	return r.client.NewRef("/").Update(ctx, paths)
}

func (r *FirebaseRepository) Insert(ctx context.Context, e *Event) error {
	return r.update(ctx, map[string]interface{}{
		r.eventPath(e.ID):                    e,
		r.index.EntryPath(e.DateKey(), e.ID): true,
	})
}

func (r *FirebaseRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	var rec *firebaseRecord
	if err := r.client.NewRef(r.eventPath(id)).Get(ctx, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	e := rec.toEvent(id)
	return &e, nil
}

func (r *FirebaseRepository) FindByIDs(ctx context.Context, ids []string) ([]Event, []string, error) {
	var found []Event
	var missing []string
	for _, id := range ids {
		e, err := r.FindByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		found = append(found, *e)
	}
	return found, missing, nil
}

func (r *FirebaseRepository) FindAll(ctx context.Context) ([]Event, error) {
	var all map[string]firebaseRecord
	if err := r.client.NewRef(r.root).Get(ctx, &all); err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(all))
	for id, rec := range all {
		out = append(out, rec.toEvent(id))
	}
	return out, nil
}

func (r *FirebaseRepository) Replace(ctx context.Context, e *Event, prevDateKey string) error {
	if _, err := r.FindByID(ctx, e.ID); err != nil {
		return err
	}
	paths := map[string]interface{}{r.eventPath(e.ID): e}
	if newKey := e.DateKey(); newKey != prevDateKey {
		paths[r.index.EntryPath(prevDateKey, e.ID)] = nil
		paths[r.index.EntryPath(newKey, e.ID)] = true
	}
	return r.update(ctx, paths)
}

func (r *FirebaseRepository) Remove(ctx context.Context, e *Event) error {
	stored, err := r.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}
	return r.update(ctx, map[string]interface{}{
		r.eventPath(e.ID):                         nil,
		r.index.EntryPath(stored.DateKey(), e.ID): nil,
	})
}

func (rec firebaseRecord) toEvent(id string) Event {
	e := rec.Event
	e.ID = id
	e.Floor = int(rec.Floor)
	return e
}
