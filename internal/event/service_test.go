package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/uph-campus/campus-events-backend/internal/auditlog"
	"github.com/uph-campus/campus-events-backend/internal/eventfeed"
	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

func TestCreate_PersistsRecordAndIndex(t *testing.T) {
	f := newFixture(t)
	e := f.create(t, draft("B508", 5, dayX.Add(13*time.Hour), 840, 900))

	assert.Equal(t, "evt-001", e.ID)
	assert.Equal(t, dayX.UnixMilli(), e.Date, "date is truncated to UTC midnight")
	assert.Equal(t, f.now.UnixMilli(), e.CreatedAt)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Equal(t, admin.Email, e.CreatedBy)
	assert.True(t, e.Published)
	assert.Equal(t, []string{e.ID}, f.dayIDs(t, dayX))

	require.Len(t, f.feed.changes, 1)
	assert.Equal(t, eventfeed.TypeCreated, f.feed.changes[0].Type)
	assert.Equal(t, "20250310", f.feed.changes[0].DateKey)
}

func TestCreate_AcceptsClockStrings(t *testing.T) {
	f := newFixture(t)
	d := draft("C101", 1, dayX, 0, 0)
	d.StartTimeMinutes, d.EndTimeMinutes = nil, nil
	d.StartTime, d.EndTime = "09:30", "11:00"

	e := f.create(t, d)
	assert.Equal(t, 570, e.StartTimeMinutes)
	assert.Equal(t, 660, e.EndTimeMinutes)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"missing name", func(d *Draft) { d.Name = " " }, "name"},
		{"missing organiser", func(d *Draft) { d.HeldBy = "" }, "heldBy"},
		{"missing date", func(d *Draft) { d.Date = timeutil.DayValue{} }, "date"},
		{"end before start", func(d *Draft) { d.EndTimeMinutes = intp(500) }, "endTimeMinutes"},
		{"equal start and end", func(d *Draft) { d.EndTimeMinutes = intp(540) }, "endTimeMinutes"},
		{"minutes out of range", func(d *Draft) { d.EndTimeMinutes = intp(1440) }, "endTimeMinutes"},
		{"malformed clock", func(d *Draft) { d.StartTimeMinutes = nil; d.StartTime = "9am" }, "startTimeMinutes"},
		{"unknown building", func(d *Draft) { d.Building = "Z" }, "building"},
		{"room on wrong floor", func(d *Draft) { d.Floor = 4 }, "room"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			d := draft("B508", 5, dayX, 540, 600)
			tt.mutate(&d)

			_, err := f.svc.Create(context.Background(), d, admin)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.has(tt.field), "fields: %+v", verr.Fields)
			assert.Empty(t, f.dayIDs(t, dayX))
		})
	}
}

func TestCreate_ConflictBlocksWithoutOverride(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, draft("B508", 5, dayX, 840, 900))

	_, err := f.svc.Create(context.Background(), draft("B508", 5, dayX, 850, 870), admin)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Conflicts, 1)
	assert.Equal(t, first.ID, cerr.Conflicts[0].ID)

	assert.Equal(t, []string{first.ID}, f.dayIDs(t, dayX), "nothing persisted")
	all, err := f.repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_OverrideIsAudited(t *testing.T) {
	f := newFixture(t)
	audit := &mockAudit{}
	audit.On("LogAction", mock.Anything, mock.Anything, mock.Anything, auditlog.ActionEventCreated, mock.Anything, admin.IP, auditlog.StatusSuccess).Return(nil)
	f.svc.AuditSvc = audit

	first := f.create(t, draft("B508", 5, dayX, 840, 900))

	audit.On("LogAction", mock.Anything, mock.Anything, "evt-002", auditlog.ActionConflictOverride,
		mock.MatchedBy(func(d map[string]interface{}) bool {
			ids, ok := d["conflict_ids"].([]string)
			return ok && len(ids) == 1 && ids[0] == first.ID
		}), admin.IP, auditlog.StatusSuccess).Return(nil).Once()

	d := draft("B508", 5, dayX, 850, 870)
	d.Override = true
	second := f.create(t, d)

	assert.ElementsMatch(t, []string{first.ID, second.ID}, f.dayIDs(t, dayX))
	audit.AssertExpectations(t)
}

func TestUpdate_MovesIndexEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.create(t, draft("B508", 5, dayX, 540, 600))

	f.now = f.now.Add(time.Hour)
	nextDay := timeutil.DayFromMillis(dayX.AddDate(0, 0, 1).UnixMilli())
	updated, err := f.svc.Update(ctx, e.ID, Patch{Date: &nextDay, Name: strp("Renamed")}, admin)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, f.now.UnixMilli(), updated.UpdatedAt)
	assert.Empty(t, f.dayIDs(t, dayX))
	assert.Equal(t, []string{e.ID}, f.dayIDs(t, dayX.AddDate(0, 0, 1)))

	stored, err := f.svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "20250311", stored.DateKey())
}

func TestUpdate_UpdatedAtNeverBelowCreatedAt(t *testing.T) {
	f := newFixture(t)
	e := f.create(t, draft("B508", 5, dayX, 540, 600))

	f.now = f.now.Add(-time.Hour)
	updated, err := f.svc.Update(context.Background(), e.ID, Patch{HeldBy: strp("Chess Club")}, admin)
	require.NoError(t, err)
	assert.Equal(t, e.CreatedAt, updated.UpdatedAt)
}

func TestUpdate_ConflictExcludesSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, draft("B508", 5, dayX, 540, 600))
	b := f.create(t, draft("B508", 5, dayX, 600, 660))

	// shifting a inside its own slot is fine
	_, err := f.svc.Update(ctx, a.ID, Patch{EndTimeMinutes: intp(590)}, admin)
	require.NoError(t, err)

	// stretching a over b is not
	_, err = f.svc.Update(ctx, a.ID, Patch{EndTimeMinutes: intp(630)}, admin)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, b.ID, cerr.Conflicts[0].ID)

	stored, err := f.svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 590, stored.EndTimeMinutes, "rejected update leaves the record alone")
}

func TestUpdate_UnknownID(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Update(context.Background(), "nope", Patch{Name: strp("x")}, admin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_RemovesIndexEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.create(t, draft("B508", 5, dayX, 540, 600))

	require.NoError(t, f.svc.Delete(ctx, e.ID, admin))
	assert.Empty(t, f.dayIDs(t, dayX))
	_, err := f.svc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, e.ID, admin), ErrNotFound, "second delete")
	assert.Equal(t, eventfeed.TypeDeleted, f.feed.changes[len(f.feed.changes)-1].Type)
}

func TestSetPoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.create(t, draft("B508", 5, dayX, 540, 600))

	got, err := f.svc.SetPoster(ctx, e.ID, "https://cdn.campus.example/p.png", admin)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.campus.example/p.png", got.PosterURL)
	assert.Equal(t, []string{e.ID}, f.dayIDs(t, dayX))

	_, err = f.svc.SetPoster(ctx, e.ID, "ftp://nope", admin)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.now = dayX.Add(10 * time.Hour)

	ongoing := f.create(t, draft("B508", 5, dayX, 540, 660))
	later := draft("C101", 1, dayX.AddDate(0, 0, 3), 540, 600)
	later.Name = "Robotics Demo"
	upcoming := f.create(t, later)
	hidden := draft("D101", 1, dayX.AddDate(0, 0, 40), 540, 600)
	hidden.Published = new(bool)
	draftOnly := f.create(t, hidden)

	all, err := f.svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ongoing.ID, all[0].ID, "sorted by date")

	pub, err := f.svc.List(ctx, ListFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, pub, 2)

	byStatus, err := f.svc.List(ctx, ListFilter{Status: StatusComingSoon})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, draftOnly.ID, byStatus[0].ID)

	byQuery, err := f.svc.List(ctx, ListFilter{Query: "robotics"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, upcoming.ID, byQuery[0].ID)

	from, to, err := ParseRange("2025-03-11", "20250320")
	require.NoError(t, err)
	ranged, err := f.svc.List(ctx, ListFilter{From: from, To: to})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, upcoming.ID, ranged[0].ID)

	byBuilding, err := f.svc.List(ctx, ListFilter{Building: "b"})
	require.NoError(t, err)
	require.Len(t, byBuilding, 1)
	assert.Equal(t, ongoing.ID, byBuilding[0].ID)
}

func TestSummaryAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, draft("B501", 5, dayX.AddDate(0, 0, -3), 540, 600))
	f.create(t, draft("B502", 5, dayX.AddDate(0, 0, -1), 540, 600))
	f.create(t, draft("B503", 5, dayX.AddDate(0, 0, 2), 540, 600))
	f.create(t, draft("B504", 5, dayX.AddDate(0, 0, 60), 540, 600))

	sum, err := f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 4, sum.Published)
	assert.Equal(t, 2, sum.ByStatus[StatusPast])
	assert.Equal(t, 1, sum.ByStatus[StatusUpcoming])
	assert.Equal(t, 1, sum.ByStatus[StatusComingSoon])
	assert.Equal(t, 0, sum.ByStatus[StatusOngoing])

	past, err := f.svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, past, 2)
	assert.Equal(t, "B502", past[0].Room, "newest first")

	limited, err := f.svc.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
