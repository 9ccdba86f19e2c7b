package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/potato-farm-advisor/internal/advisor"
)

// Analyzer runs one analysis pass.
type Analyzer interface {
	Analyze(ctx context.Context, req advisor.Request) (*advisor.Analysis, error)
}

// Scheduler periodically refreshes the analysis for the configured field.
type Scheduler struct {
	scheduler *gocron.Scheduler
	analyzer  Analyzer
	field     advisor.Request
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. timeout bounds each run.
func New(field advisor.Request, interval, timeout time.Duration, analyzer Analyzer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		analyzer:  analyzer,
		field:     field,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// A non-positive interval leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh interval not set; periodic refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("scheduler: refreshing %s every %s", s.field.Coordinate.Key(), s.interval)
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running field refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	a, err := s.analyzer.Analyze(ctx, s.field)
	if err != nil {
		log.Printf("scheduler: refresh failed for %s: %v", s.field.Coordinate.Key(), err)
		return
	}
	log.Printf("scheduler: completed field refresh job (analysis %s)", a.ID)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
