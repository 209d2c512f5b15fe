// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/uph-campus/campus-events-backend/internal/event"
)

// IndexReconciler is the part of event.Service the job drives.
type IndexReconciler interface {
	ReconcileIndex(ctx context.Context, apply bool, actor event.Actor) (*event.IndexReport, error)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	logger := cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// AddIndexReconcile registers the date index check. timeout bounds each run.
func (s *Scheduler) AddIndexReconcile(schedule string, r IndexReconciler, apply bool, timeout time.Duration) error {
	if schedule == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	_, err := s.cron.AddFunc(schedule, func() {
		ReconcileOnce(r, apply, timeout)
	})
	if err != nil {
		return fmt.Errorf("schedule index reconcile %q: %w", schedule, err)
	}
	log.Printf("⏰ Date index reconcile scheduled: %s (apply=%v)", schedule, apply)
	return nil
}

// ReconcileOnce runs a single pass and logs the outcome.
func ReconcileOnce(r IndexReconciler, apply bool, timeout time.Duration) *event.IndexReport {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := r.ReconcileIndex(ctx, apply, event.Actor{Email: "cron", IP: "127.0.0.1"})
	if err != nil {
		log.Printf("❌ date index reconcile failed: %v", err)
		return nil
	}
	if report.Clean() {
		log.Printf("✅ date index consistent (%d events)", report.Checked)
	}
	return report
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
