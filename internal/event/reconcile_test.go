package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uph-campus/campus-events-backend/internal/dateindex"
	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

func TestRepairIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.create(t, draft("B508", 5, dayX, 540, 600))
	require.NoError(t, f.repo.index.Remove(ctx, e.DateKey(), e.ID))

	wrongDay := timeutil.DayFromMillis(dayX.AddDate(0, 0, 1).UnixMilli())
	err := f.svc.RepairIndex(ctx, e.ID, wrongDay, admin)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, f.dayIDs(t, dayX.AddDate(0, 0, 1)))

	assert.ErrorIs(t, f.svc.RepairIndex(ctx, "ghost", timeutil.DayFromMillis(dayX.UnixMilli()), admin), ErrNotFound)

	require.NoError(t, f.svc.RepairIndex(ctx, e.ID, timeutil.DayFromMillis(dayX.UnixMilli()+3600_000), admin))
	assert.Equal(t, []string{e.ID}, f.dayIDs(t, dayX))
}

func TestReconcileIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, draft("B508", 5, dayX, 540, 600))
	b := f.create(t, draft("B507", 5, dayX, 540, 600))

	// drift: a is missing, b is also filed a day late, ghost points nowhere
	nextKey := timeutil.DateKeyFromMillis(dayX.AddDate(0, 0, 1).UnixMilli())
	require.NoError(t, f.repo.index.Remove(ctx, a.DateKey(), a.ID))
	require.NoError(t, f.repo.index.Insert(ctx, nextKey, b.ID))
	require.NoError(t, f.repo.index.Insert(ctx, nextKey, "ghost"))

	report, err := f.svc.ReconcileIndex(ctx, false, admin)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.False(t, report.Applied)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, []dateindex.Entry{{DateKey: a.DateKey(), EventID: a.ID}}, report.Missing)
	assert.Equal(t, []dateindex.Entry{{DateKey: nextKey, EventID: "ghost"}}, report.Dangling)
	assert.Equal(t, []dateindex.Entry{{DateKey: nextKey, EventID: b.ID}}, report.Misfiled)

	// dry run changed nothing
	assert.Equal(t, []string{b.ID}, f.dayIDs(t, dayX))

	report, err = f.svc.ReconcileIndex(ctx, true, admin)
	require.NoError(t, err)
	assert.True(t, report.Applied)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, f.dayIDs(t, dayX))
	assert.Empty(t, f.dayIDs(t, dayX.AddDate(0, 0, 1)))

	report, err = f.svc.ReconcileIndex(ctx, false, admin)
	require.NoError(t, err)
	assert.True(t, report.Clean())
}
