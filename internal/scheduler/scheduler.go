package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"DowntimeIncome/internal/table"
)

// Refresher reloads the income table from its external source.
type Refresher interface {
	Ingest(ctx context.Context) (*table.Table, error)
}

// Scheduler manages the periodic table refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Ctx       context.Context

	// Notify receives a one-line report after each scheduled refresh. Optional.
	Notify func(text string)

	runs     atomic.Int64
	failures atomic.Int64
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r Refresher) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Ctx:       ctx,
	}
}

// RegisterRefresh schedules table refreshes with a six-field cron expression
// or a descriptor such as "@hourly".
func (s *Scheduler) RegisterRefresh(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RefreshNow runs the refresh task immediately.
func (s *Scheduler) RefreshNow() error {
	_, err := s.refresh()
	return err
}

// Stats returns how many refreshes have run and how many failed.
func (s *Scheduler) Stats() (runs, failures int64) {
	return s.runs.Load(), s.failures.Load()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running table refresh")
	t, err := s.refresh()
	if s.Notify == nil {
		return
	}
	if err != nil {
		s.Notify(fmt.Sprintf("Income table refresh failed: %v", err))
		return
	}
	s.Notify(fmt.Sprintf("Income table refreshed from %s (%d rows)", t.Source(), t.Len()))
}

func (s *Scheduler) refresh() (*table.Table, error) {
	s.runs.Add(1)
	t, err := s.Refresher.Ingest(s.Ctx)
	if err != nil {
		s.failures.Add(1)
		log.Printf("[ERROR] table refresh: %v", err)
		return nil, err
	}
	return t, nil
}
