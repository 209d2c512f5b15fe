package event

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/uph-campus/campus-events-backend/internal/auditlog"
	"github.com/uph-campus/campus-events-backend/internal/campus"
	"github.com/uph-campus/campus-events-backend/internal/eventfeed"
	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// dayX is 2025-03-10 UTC midnight.
var dayX = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) LogAction(ctx context.Context, adminID *uint, eventID string, action string, details map[string]interface{}, ip string, status string) error {
	args := m.Called(ctx, adminID, eventID, action, details, ip, status)
	return args.Error(0)
}

func (m *mockAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}

func (m *mockAudit) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

type recordingFeed struct {
	mu      sync.Mutex
	changes []eventfeed.Change
}

func (f *recordingFeed) Publish(_ context.Context, c eventfeed.Change) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, c)
	return nil
}

func (f *recordingFeed) Close() error { return nil }

type fixture struct {
	svc  *Service
	repo *MemoryRepository
	feed *recordingFeed
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo: NewMemoryRepository(),
		feed: &recordingFeed{},
		now:  dayX.Add(8 * time.Hour),
	}
	f.svc = NewService(f.repo, campus.Default(), nil, f.feed, DefaultStatusPolicy())
	f.svc.Now = func() time.Time { return f.now }
	seq := 0
	f.svc.NewID = func() string {
		seq++
		return fmt.Sprintf("evt-%03d", seq)
	}
	return f
}

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

func draft(room string, floor int, day time.Time, start, end int) Draft {
	return Draft{
		Name:             "Talk",
		HeldBy:           "Student Council",
		Building:         room[:1],
		Floor:            FlexInt(floor),
		Room:             room,
		Date:             timeutil.DayFromMillis(day.UnixMilli()),
		StartTimeMinutes: intp(start),
		EndTimeMinutes:   intp(end),
	}
}

var admin = Actor{Email: "admin@campus.example", IP: "10.0.0.1"}

func (f *fixture) create(t *testing.T, d Draft) *Event {
	t.Helper()
	e, err := f.svc.Create(context.Background(), d, admin)
	require.NoError(t, err)
	return e
}

func (f *fixture) dayIDs(t *testing.T, day time.Time) []string {
	t.Helper()
	ids, err := f.repo.Index().EventsOnDay(context.Background(), timeutil.DateKeyFromMillis(day.UnixMilli()))
	require.NoError(t, err)
	return ids
}
