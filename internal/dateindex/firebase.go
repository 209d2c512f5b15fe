package dateindex

import (
	"context"
	"path"
	"sort"

	"firebase.google.com/go/v4/db"
)

// DefaultFirebaseRoot is the Realtime Database node holding the index,
// laid out as eventsByDate/{dateKey}/{eventId}: true.
const DefaultFirebaseRoot = "eventsByDate"

// Firebase reads and writes the index in a Firebase Realtime Database.
// The event repository writes it through multi-path updates built with
// EntryPath so record and index change in one atomic update.
type Firebase struct {
	client *db.Client
	root   string
}

func NewFirebase(client *db.Client, root string) *Firebase {
	if root == "" {
		root = DefaultFirebaseRoot
	}
	return &Firebase{client: client, root: root}
}

// EntryPath is the database path of one membership, relative to the database root.
func (f *Firebase) EntryPath(dateKey, eventID string) string {
	return path.Join(f.root, dateKey, eventID)
}

func (f *Firebase) Insert(ctx context.Context, dateKey, eventID string) error {
	return f.client.NewRef(f.EntryPath(dateKey, eventID)).Set(ctx, true)
}

// Remove deletes the membership. The database drops empty parent nodes itself.
func (f *Firebase) Remove(ctx context.Context, dateKey, eventID string) error {
	return f.client.NewRef(f.EntryPath(dateKey, eventID)).Delete(ctx)
}

func (f *Firebase) EventsOnDay(ctx context.Context, dateKey string) ([]string, error) {
	var set map[string]bool
	if err := f.client.NewRef(path.Join(f.root, dateKey)).Get(ctx, &set); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(set))
	for id, present := range set {
		if present {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *Firebase) Snapshot(ctx context.Context) (map[string][]string, error) {
	var all map[string]map[string]bool
	if err := f.client.NewRef(f.root).Get(ctx, &all); err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(all))
	for key, set := range all {
		for id, present := range set {
			if present {
				out[key] = append(out[key], id)
			}
		}
		sort.Strings(out[key])
	}
	return out, nil
}
