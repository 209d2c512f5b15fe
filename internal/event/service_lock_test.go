package event

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uph-campus/campus-events-backend/internal/eventfeed"
)

func TestCreate_ConcurrentSameSlotBooksOnce(t *testing.T) {
	f := newFixture(t)
	const admins = 20

	var (
		wg     sync.WaitGroup
		booked atomic.Int32
		errs   = make(chan error, admins)
	)
	for i := 0; i < admins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), draft("B508", 5, dayX, 600, 660), admin)
			if err != nil {
				errs <- err
				return
			}
			booked.Add(1)
		}()
	}
	wg.Wait()
	close(errs)

	assert.Equal(t, int32(1), booked.Load())
	for err := range errs {
		var cerr *ConflictError
		assert.ErrorAs(t, err, &cerr)
	}
	assert.Len(t, f.dayIDs(t, dayX), 1)
}

// stallingFeed blocks the first publish until release is closed.
type stallingFeed struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (f *stallingFeed) Publish(ctx context.Context, _ eventfeed.Change) error {
	first := false
	f.once.Do(func() { first = true })
	if first {
		close(f.entered)
		select {
		case <-f.release:
		case <-ctx.Done():
		}
	}
	return nil
}

func (f *stallingFeed) Close() error { return nil }

func TestCreate_SlowFeedDoesNotHoldWriteLock(t *testing.T) {
	f := newFixture(t)
	feed := &stallingFeed{entered: make(chan struct{}), release: make(chan struct{})}
	f.svc.Feed = feed

	first := make(chan error, 1)
	go func() {
		_, err := f.svc.Create(context.Background(), draft("B508", 5, dayX, 600, 660), admin)
		first <- err
	}()
	<-feed.entered

	second := make(chan error, 1)
	go func() {
		_, err := f.svc.Create(context.Background(), draft("B507", 5, dayX, 600, 660), admin)
		second <- err
	}()

	select {
	case err := <-second:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		close(feed.release)
		t.Fatal("second booking waited on the first one's publish")
	}

	close(feed.release)
	require.NoError(t, <-first)
	assert.Len(t, f.dayIDs(t, dayX), 2)
}
