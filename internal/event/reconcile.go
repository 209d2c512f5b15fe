package event

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/uph-campus/campus-events-backend/internal/auditlog"
	"github.com/uph-campus/campus-events-backend/internal/dateindex"
	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// IndexReport compares the date index with the event records.
type IndexReport struct {
	Checked int `json:"checked"`
	// Missing: records with no entry under their own day.
	Missing []dateindex.Entry `json:"missing"`
	// Dangling: entries whose event no longer exists.
	Dangling []dateindex.Entry `json:"dangling"`
	// Misfiled: entries under a day other than the record's.
	Misfiled []dateindex.Entry `json:"misfiled"`
	Applied  bool              `json:"applied"`
}

// Clean reports whether index and records agree.
func (r *IndexReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Dangling) == 0 && len(r.Misfiled) == 0
}

// ===========================
// 🩹 Manual index repair
//
// RepairIndex adds eventID under the day of date. The event must exist and
// actually be booked on that day; the index never points at the wrong day.
func (s *Service) RepairIndex(ctx context.Context, eventID string, date timeutil.DayValue, actor Actor) error {
	verr := &ValidationError{}
	if eventID == "" {
		verr.add("eventId", "is required")
	}
	if date.IsZero() {
		verr.add("dateTimestamp", "is required")
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	err := func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		e, err := s.Repo.FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if e.DateKey() != date.Key() {
			verr.add("dateTimestamp", "event %s is booked on %s, not %s", eventID, e.DateKey(), date.Key())
			return verr
		}
		if err := s.Repo.Index().Insert(ctx, date.Key(), eventID); err != nil {
			return fmt.Errorf("repair date index: %w", err)
		}
		return nil
	}()
	if err != nil {
		return err
	}

	s.audit(ctx, actor, eventID, auditlog.ActionIndexRepaired, map[string]interface{}{
		"date_key": date.Key(),
	}, auditlog.StatusSuccess)
	return nil
}

// ===========================
// 🔁 Full reconciliation
//
// ReconcileIndex rebuilds the expected index from a scan of all records and
// diffs it against the stored one. With apply it rewrites the stored index to
// match.
func (s *Service) ReconcileIndex(ctx context.Context, apply bool, actor Actor) (*IndexReport, error) {
	report, err := s.reconcile(ctx, apply)
	if err != nil || !report.Applied {
		return report, err
	}

	s.audit(ctx, actor, "", auditlog.ActionIndexReconciled, map[string]interface{}{
		"missing":  len(report.Missing),
		"dangling": len(report.Dangling),
		"misfiled": len(report.Misfiled),
	}, auditlog.StatusSuccess)
	log.Printf("✅ date index reconciled")
	return report, nil
}

func (s *Service) reconcile(ctx context.Context, apply bool) (*IndexReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := s.Repo.Index()
	stored, err := idx.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot date index: %w", err)
	}

	recordKey := make(map[string]string, len(all))
	for i := range all {
		recordKey[all[i].ID] = all[i].DateKey()
	}

	report := &IndexReport{Checked: len(all)}
	present := make(map[dateindex.Entry]struct{})
	for key, ids := range stored {
		for _, id := range ids {
			entry := dateindex.Entry{DateKey: key, EventID: id}
			present[entry] = struct{}{}
			want, ok := recordKey[id]
			switch {
			case !ok:
				report.Dangling = append(report.Dangling, entry)
			case want != key:
				report.Misfiled = append(report.Misfiled, entry)
			}
		}
	}
	for id, key := range recordKey {
		entry := dateindex.Entry{DateKey: key, EventID: id}
		if _, ok := present[entry]; !ok {
			report.Missing = append(report.Missing, entry)
		}
	}
	sortEntries(report.Missing)
	sortEntries(report.Dangling)
	sortEntries(report.Misfiled)

	if report.Clean() {
		return report, nil
	}
	log.Printf("⚠️ date index drift: %d missing, %d dangling, %d misfiled",
		len(report.Missing), len(report.Dangling), len(report.Misfiled))
	if !apply {
		return report, nil
	}

	for _, list := range [][]dateindex.Entry{report.Dangling, report.Misfiled} {
		for _, entry := range list {
			if err := idx.Remove(ctx, entry.DateKey, entry.EventID); err != nil {
				return report, fmt.Errorf("remove %s/%s: %w", entry.DateKey, entry.EventID, err)
			}
		}
	}
	for _, entry := range report.Missing {
		if err := idx.Insert(ctx, entry.DateKey, entry.EventID); err != nil {
			return report, fmt.Errorf("insert %s/%s: %w", entry.DateKey, entry.EventID, err)
		}
	}
	report.Applied = true
	return report, nil
}

func sortEntries(entries []dateindex.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DateKey != entries[j].DateKey {
			return entries[i].DateKey < entries[j].DateKey
		}
		return entries[i].EventID < entries[j].EventID
	})
}
