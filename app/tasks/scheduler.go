package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler runs a full refresh on a fixed interval, for serve mode.
type Scheduler struct {
	refresher *Refresher
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewScheduler(refresher *Refresher, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.refreshOnce()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.refreshOnce()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) refreshOnce() {
	report, err := s.refresher.RefreshAll(s.ctx)
	if err != nil {
		slog.Error("Scheduled refresh aborted", "error", err)
		return
	}

	slog.Info("Scheduled refresh completed",
		"feeds", report.FeedsAttempted,
		"entries", report.EntriesIngested,
		"failures", len(report.Failures))
}
