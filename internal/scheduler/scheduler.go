// Package scheduler runs the monthly template sweep on a cron schedule. The
// sweep is idempotent through the generation ledger, so a cron firing that
// overlaps a manual /auto-generate call is harmless.
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/worklens/work-calendar-api/internal/schedule"
	"github.com/worklens/work-calendar-api/internal/services"
)

type Scheduler struct {
	cron      *cron.Cron
	templates *services.TemplateService
	clock     schedule.Clock
}

// New creates a Scheduler that sweeps via the given TemplateService.
func New(templates *services.TemplateService, clock schedule.Clock) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		templates: templates,
		clock:     clock,
	}
}

// Start registers the sweep at the given cron expression and starts the cron
// loop in the background.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runSweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Auto-generation scheduled: %s", spec)
	return nil
}

// Stop halts the cron loop; a running sweep finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	now := s.clock.Now()
	year, month := now.Year(), int(now.Month())

	generated, err := s.templates.GenerateMonthly(year, month)
	if err != nil {
		log.Printf("Scheduled sweep for %04d-%02d failed: %v", year, month, err)
		return
	}
	log.Printf("Scheduled sweep for %04d-%02d generated %d task(s)", year, month, len(generated))
}
