package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uph-campus/campus-events-backend/internal/auditlog"
	"github.com/uph-campus/campus-events-backend/internal/campus"
	"github.com/uph-campus/campus-events-backend/internal/eventfeed"
	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// Service wraps business logic for campus events
type Service struct {
	Repo     Repository
	Catalog  *campus.Catalog
	Policy   StatusPolicy
	AuditSvc auditlog.Service    // optional
	Feed     eventfeed.Publisher // optional

	// Now and NewID are swapped in tests.
	Now   func() time.Time
	NewID func() string

	// mu serialises conflict check + write so two admins cannot book the
	// same slot between check and commit.
	mu sync.Mutex
}

// NewService initializes a new Service with audit logging
func NewService(repo Repository, catalog *campus.Catalog, auditSvc auditlog.Service, feed eventfeed.Publisher, policy StatusPolicy) *Service {
	if feed == nil {
		feed = eventfeed.Nop{}
	}
	return &Service{
		Repo:     repo,
		Catalog:  catalog,
		Policy:   policy,
		AuditSvc: auditSvc,
		Feed:     feed,
		Now:      time.Now,
		NewID:    func() string { return uuid.New().String() },
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ===========================
// 🎯 Create Event
func (s *Service) Create(ctx context.Context, d Draft, actor Actor) (*Event, error) {
	verr := &ValidationError{}
	e := fromDraft(d, verr)
	validateEvent(e, s.Catalog, verr)
	if err := verr.orNil(); err != nil {
		s.audit(ctx, actor, "", auditlog.ActionEventCreated, map[string]interface{}{
			"name":  e.Name,
			"error": err.Error(),
		}, auditlog.StatusFailure)
		return nil, err
	}

	e.CreatedBy = actor.Email
	conflicts, err := s.insertChecked(ctx, e, d.Override)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		s.auditOverride(ctx, actor, e, conflicts)
	}
	s.audit(ctx, actor, e.ID, auditlog.ActionEventCreated, map[string]interface{}{
		"name":     e.Name,
		"room":     e.Room,
		"date_key": e.DateKey(),
		"window":   e.Window(),
	}, auditlog.StatusSuccess)
	s.publish(ctx, eventfeed.TypeCreated, e)

	log.Printf("📅 Event %s booked in %s on %s %s", e.ID, e.Room, e.DateKey(), e.Window())
	return e, nil
}

// insertChecked runs the conflict check and the insert under s.mu. Audit and
// publish happen after it returns so a slow sink never holds the lock.
func (s *Service) insertChecked(ctx context.Context, e *Event, override bool) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conflicts, err := s.FindConflicts(ctx, candidateOf(e), "")
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 && !override {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	nowMs := s.now().UnixMilli()
	e.ID = s.NewID()
	e.CreatedAt = nowMs
	e.UpdatedAt = nowMs

	if err := s.Repo.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return conflicts, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	return s.Repo.FindByID(ctx, id)
}

// ===========================
// 🛠 Update Event
func (s *Service) Update(ctx context.Context, id string, p Patch, actor Actor) (*Event, error) {
	updated, prevKey, conflicts, err := s.replaceChecked(ctx, id, p)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.audit(ctx, actor, id, auditlog.ActionEventUpdated, map[string]interface{}{
				"error": err.Error(),
			}, auditlog.StatusFailure)
		}
		return nil, err
	}

	if len(conflicts) > 0 {
		s.auditOverride(ctx, actor, updated, conflicts)
	}
	details := map[string]interface{}{
		"name":   updated.Name,
		"room":   updated.Room,
		"window": updated.Window(),
	}
	if prevKey != updated.DateKey() {
		details["moved_from"] = prevKey
		details["moved_to"] = updated.DateKey()
	}
	s.audit(ctx, actor, id, auditlog.ActionEventUpdated, details, auditlog.StatusSuccess)
	s.publish(ctx, eventfeed.TypeUpdated, updated)
	return updated, nil
}

// replaceChecked merges p into the stored record and writes it if it is valid
// and free of conflicts, all under s.mu. It returns the record's previous
// date key.
func (s *Service) replaceChecked(ctx context.Context, id string, p Patch) (*Event, string, []Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", nil, err
	}
	prevKey := existing.DateKey()

	verr := &ValidationError{}
	updated := applyPatch(*existing, p, verr)
	validateEvent(updated, s.Catalog, verr)
	if err := verr.orNil(); err != nil {
		return nil, "", nil, err
	}

	conflicts, err := s.FindConflicts(ctx, candidateOf(updated), id)
	if err != nil {
		return nil, "", nil, err
	}
	if len(conflicts) > 0 && !p.Override {
		return nil, "", nil, &ConflictError{Conflicts: conflicts}
	}

	updated.UpdatedAt = s.now().UnixMilli()
	if updated.UpdatedAt < updated.CreatedAt {
		updated.UpdatedAt = updated.CreatedAt
	}

	if err := s.Repo.Replace(ctx, updated, prevKey); err != nil {
		return nil, "", nil, err
	}
	return updated, prevKey, conflicts, nil
}

// ===========================
// ❌ Delete Event
func (s *Service) Delete(ctx context.Context, id string, actor Actor) error {
	existing, err := s.remove(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.audit(ctx, actor, id, auditlog.ActionEventDeleted, map[string]interface{}{
				"error": "event not found",
			}, auditlog.StatusFailure)
		}
		return err
	}

	s.audit(ctx, actor, id, auditlog.ActionEventDeleted, map[string]interface{}{
		"name":     existing.Name,
		"room":     existing.Room,
		"date_key": existing.DateKey(),
	}, auditlog.StatusSuccess)
	s.publish(ctx, eventfeed.TypeDeleted, existing)
	return nil
}

func (s *Service) remove(ctx context.Context, id string) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Remove(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ===========================
// 🖼 Attach poster
func (s *Service) SetPoster(ctx context.Context, id, posterURL string, actor Actor) (*Event, error) {
	posterURL = strings.TrimSpace(posterURL)
	if posterURL != "" {
		u, err := url.Parse(posterURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			verr := &ValidationError{}
			verr.add("posterUrl", "must be an absolute http(s) URL")
			return nil, verr
		}
	}

	e, err := s.replacePoster(ctx, id, posterURL)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, actor, id, auditlog.ActionPosterAttached, map[string]interface{}{
		"poster_url": posterURL,
	}, auditlog.StatusSuccess)
	s.publish(ctx, eventfeed.TypeUpdated, e)
	return e, nil
}

func (s *Service) replacePoster(ctx context.Context, id, posterURL string) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.PosterURL = posterURL
	if now := s.now().UnixMilli(); now > e.UpdatedAt {
		e.UpdatedAt = now
	}
	if err := s.Repo.Replace(ctx, e, e.DateKey()); err != nil {
		return nil, err
	}
	return e, nil
}

func candidateOf(e *Event) Candidate {
	return Candidate{
		Date:         timeutil.DayFromMillis(e.Date),
		Room:         e.Room,
		StartMinutes: e.StartTimeMinutes,
		EndMinutes:   e.EndTimeMinutes,
	}
}

// ===========================
// 📝 Audit + feed helpers

func (s *Service) audit(ctx context.Context, actor Actor, eventID, action string, details map[string]interface{}, status string) {
	if s.AuditSvc == nil {
		return
	}
	if err := s.AuditSvc.LogAction(ctx, actor.AdminID, eventID, action, details, actor.IP, status); err != nil {
		log.Printf("⚠️ audit %s for event %s failed: %v", action, eventID, err)
	}
}

func (s *Service) auditOverride(ctx context.Context, actor Actor, e *Event, conflicts []Event) {
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	log.Printf("⚠️ %s overrode %d conflict(s) in %s on %s", actor.Email, len(conflicts), e.Room, e.DateKey())
	s.audit(ctx, actor, e.ID, auditlog.ActionConflictOverride, map[string]interface{}{
		"room":         e.Room,
		"date_key":     e.DateKey(),
		"window":       e.Window(),
		"conflict_ids": ids,
	}, auditlog.StatusSuccess)
}

// publish runs after commit; a failed publish is logged and the write stands.
func (s *Service) publish(ctx context.Context, changeType string, e *Event) {
	if s.Feed == nil {
		return
	}
	change := eventfeed.Change{
		Type:    changeType,
		EventID: e.ID,
		DateKey: e.DateKey(),
		Event:   e,
		At:      s.now().UTC(),
	}
	if err := s.Feed.Publish(ctx, change); err != nil {
		log.Printf("⚠️ publish %s for event %s failed: %v", changeType, e.ID, err)
	}
}
